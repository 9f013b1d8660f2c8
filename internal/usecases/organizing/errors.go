package organizing

import "github.com/pkg/errors"

var (
	ErrDuplicateName      = errors.New("name already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)
