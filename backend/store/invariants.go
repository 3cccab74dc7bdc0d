package store

import (
	"fmt"

	"learnhub/backend/models"
)

// Violation is one enrollment that breaks a consistency rule.
type Violation struct {
	EnrollmentID string `json:"enrollmentId"`
	Reason       string `json:"reason"`
}

// CheckEnrollments reports enrollments whose status and progress disagree.
// Nothing enforces the rule on load, so fixture data is checked instead.
func CheckEnrollments(enrollments []models.Enrollment) []Violation {
	var out []Violation
	for _, e := range enrollments {
		switch {
		case e.Progress < 0 || e.Progress > 100:
			out = append(out, Violation{e.ID, fmt.Sprintf("progress %d out of range", e.Progress)})
		case e.Status == models.EnrollmentCompleted && e.Progress != 100:
			out = append(out, Violation{e.ID, fmt.Sprintf("completed with progress %d", e.Progress)})
		case e.Progress == 100 && e.Status != models.EnrollmentCompleted:
			out = append(out, Violation{e.ID, fmt.Sprintf("progress 100 with status %s", e.Status)})
		}
	}
	return out
}
