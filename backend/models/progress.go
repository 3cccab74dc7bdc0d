package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentPaused    EnrollmentStatus = "paused"
)

type Enrollment struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	StudentID        string           `json:"studentId" gorm:"index"`
	CourseID         string           `json:"courseId" gorm:"index"`
	Progress         int              `json:"progress"`
	CompletedLessons []string         `json:"completedLessons" gorm:"serializer:json"`
	CurrentLessonID  string           `json:"currentLessonId,omitempty"`
	Status           EnrollmentStatus `json:"status"`
	EnrolledAt       time.Time        `json:"enrolledAt"`
	LastAccessedAt   time.Time        `json:"lastAccessedAt"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
}

func (e Enrollment) GetID() string { return e.ID }

type Achievement struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	Rarity      string `json:"rarity"`
}

func (a Achievement) GetID() string { return a.ID }

// Certificate keeps the names as they were when it was issued.
type Certificate struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	StudentID      string    `json:"studentId" gorm:"index"`
	CourseID       string    `json:"courseId"`
	EnrollmentID   string    `json:"enrollmentId"`
	StudentName    string    `json:"studentName"`
	CourseTitle    string    `json:"courseTitle"`
	InstructorName string    `json:"instructorName"`
	CredentialID   string    `json:"credentialId"`
	IssuedAt       time.Time `json:"issuedAt"`
}

func (c Certificate) GetID() string { return c.ID }
