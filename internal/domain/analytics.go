package domain

import "encoding/json"

// Dashboard is the composite payload behind the admin dashboard. Every field
// is computed from the current store snapshot on each request.
type Dashboard struct {
	TotalEmployees          int                   `json:"totalEmployees"`
	ActiveCourses           int                   `json:"activeCourses"`
	CompletedEmployeesCount int                   `json:"completedEmployeesCount"`
	AvgEngagement           float64               `json:"avgEngagement"`
	Departments             []DepartmentWithTeams `json:"departments"`
	DayEngagement           string                `json:"dayEngagement"`
	MonthlyCompletion       string                `json:"monthlyCompletion"`
	AvgTimePerCourse        []CourseTime          `json:"avgTimePerCourse"`
	EmployeeCourses         []EmployeeCourseRow   `json:"employeeCourses"`
}

type DepartmentWithTeams struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Teams []TeamRef `json:"teams"`
}

type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CourseRating carries the mean feedback rating for one course of the fixed
// catalog. Courses without feedback report 0 (the rating domain is [1,5]).
type CourseRating struct {
	Course        int     `json:"course"`
	AverageRating float64 `json:"averageRating"`
}

type CourseTime struct {
	ID      int     `json:"id"`
	AvgTime float64 `json:"avgTime"`
}

// EmployeeCourseRow is one row of the flattened employee/enrollment join.
// Course is nil for employees with no enrollments; Rating is nil when the
// pair was never rated. Nil is distinct from zero here: 0 is not a valid
// rating, so a numeric sentinel would be ambiguous.
type EmployeeCourseRow struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Department *string `json:"department"`
	Team       *string `json:"team"`
	Course     *int    `json:"course"`
	Rating     *int    `json:"-"`
}

func (r EmployeeCourseRow) MarshalJSON() ([]byte, error) {
	type alias EmployeeCourseRow

	var rating any = "N/A"
	if r.Rating != nil {
		rating = *r.Rating
	}

	return json.Marshal(struct {
		alias
		Rating any `json:"rating"`
	}{alias(r), rating})
}

// BucketCount is a sparse grouped count keyed by a calendar dimension
// (weekday 1..7 with 1 = Sunday, or month 1..12).
type BucketCount struct {
	Key   int
	Count int
}

// CourseAverage is a sparse per-course mean as returned by the store, before
// gap-filling over the fixed catalog.
type CourseAverage struct {
	CourseID int
	Average  float64
}
