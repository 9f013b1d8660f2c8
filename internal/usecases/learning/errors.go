package learning

import "github.com/pkg/errors"

var (
	// ErrAlreadyEnrolled is returned when an enrollment already exists for
	// the (user, course) pair. A caller error, not a store fault.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")

	// ErrEnrollmentNotFound is returned by progress updates for pairs that
	// were never enrolled.
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	ErrUnknownCourse   = errors.New("course id is outside the catalog")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidScore    = errors.New("quiz score must be between 0 and 100")
)
