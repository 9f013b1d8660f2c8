package domain

import "time"

// The course catalog is fixed: ids 1..12. There is no courses table.
const (
	FirstCourseID = 1
	CourseCount   = 12
)

func ValidCourseID(id int) bool {
	return id >= FirstCourseID && id < FirstCourseID+CourseCount
}

const CompletedProgress = 100

type Enrollment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Engagement keeps one row per (user, course). TimeSpent is bumped by one on
// every engagement ping; CreatedAt stays fixed at the first ping.
type Engagement struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	TimeSpent int       `json:"time_spent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Feedback struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	CourseID     int       `json:"course_id"`
	Rating       int       `json:"rating"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type Quiz struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	QuizScore int       `json:"quiz_score"`
	CreatedAt time.Time `json:"created_at"`
}

type Discussion struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	// Author names, resolved on reads.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
