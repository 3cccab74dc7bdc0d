// Package store holds the entity collections the presenters read from.
//
// The store is read-only. Nothing in this package writes back to a
// collection after it has been loaded; "mutations" are stub actions in the
// presenters package and never reach the store.
package store

import (
	"context"

	"learnhub/backend/models"
)

// Store is the only I/O boundary of the presenters. Every method returns a
// fresh copy of the collection in its default order; callers may modify the
// returned slice without affecting the store.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Levels(ctx context.Context) ([]models.Level, error)
	AgeGroups(ctx context.Context) ([]models.AgeGroup, error)
	Languages(ctx context.Context) ([]models.Language, error)
	PostCategories(ctx context.Context) ([]models.PostCategory, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Lessons(ctx context.Context) ([]models.Lesson, error)
	Instructors(ctx context.Context) ([]models.Instructor, error)
	Students(ctx context.Context) ([]models.Student, error)
	Enrollments(ctx context.Context) ([]models.Enrollment, error)
	Reviews(ctx context.Context) ([]models.Review, error)
	Achievements(ctx context.Context) ([]models.Achievement, error)
	Posts(ctx context.Context) ([]models.Post, error)
	Comments(ctx context.Context) ([]models.Comment, error)
	Certificates(ctx context.Context) ([]models.Certificate, error)
	FAQs(ctx context.Context) ([]models.FAQ, error)
	Accounts(ctx context.Context) ([]models.Account, error)
}

// Dataset is a full snapshot of every collection.
type Dataset struct {
	Categories     []models.Category
	Levels         []models.Level
	AgeGroups      []models.AgeGroup
	Languages      []models.Language
	PostCategories []models.PostCategory
	Courses        []models.Course
	Lessons        []models.Lesson
	Instructors    []models.Instructor
	Students       []models.Student
	Enrollments    []models.Enrollment
	Reviews        []models.Review
	Achievements   []models.Achievement
	Posts          []models.Post
	Comments       []models.Comment
	Certificates   []models.Certificate
	FAQs           []models.FAQ
	Accounts       []models.Account
}

// Identifiable is implemented by every entity.
type Identifiable interface {
	GetID() string
}

// GetByID does a linear scan; collections are small.
func GetByID[T Identifiable](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// GetAllWhere returns a new slice holding the items matching pred.
func GetAllWhere[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
