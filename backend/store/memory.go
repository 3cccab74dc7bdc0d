package store

import (
	"context"
	"slices"

	"learnhub/backend/models"
)

// Memory serves a Dataset loaded once at startup.
type Memory struct {
	data Dataset
}

var _ Store = (*Memory)(nil)

// NewMemory copies data so later changes to it are not visible.
func NewMemory(data Dataset) *Memory {
	return &Memory{data: cloneDataset(data)}
}

func (m *Memory) Categories(ctx context.Context) ([]models.Category, error) {
	return slices.Clone(m.data.Categories), nil
}

func (m *Memory) Levels(ctx context.Context) ([]models.Level, error) {
	return slices.Clone(m.data.Levels), nil
}

func (m *Memory) AgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	return slices.Clone(m.data.AgeGroups), nil
}

func (m *Memory) Languages(ctx context.Context) ([]models.Language, error) {
	return slices.Clone(m.data.Languages), nil
}

func (m *Memory) PostCategories(ctx context.Context) ([]models.PostCategory, error) {
	return slices.Clone(m.data.PostCategories), nil
}

func (m *Memory) Courses(ctx context.Context) ([]models.Course, error) {
	return cloneEach(m.data.Courses, cloneCourse), nil
}

func (m *Memory) Lessons(ctx context.Context) ([]models.Lesson, error) {
	return slices.Clone(m.data.Lessons), nil
}

func (m *Memory) Instructors(ctx context.Context) ([]models.Instructor, error) {
	return cloneEach(m.data.Instructors, cloneInstructor), nil
}

func (m *Memory) Students(ctx context.Context) ([]models.Student, error) {
	return cloneEach(m.data.Students, cloneStudent), nil
}

func (m *Memory) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	return cloneEach(m.data.Enrollments, cloneEnrollment), nil
}

func (m *Memory) Reviews(ctx context.Context) ([]models.Review, error) {
	return slices.Clone(m.data.Reviews), nil
}

func (m *Memory) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return slices.Clone(m.data.Achievements), nil
}

func (m *Memory) Posts(ctx context.Context) ([]models.Post, error) {
	return cloneEach(m.data.Posts, clonePost), nil
}

func (m *Memory) Comments(ctx context.Context) ([]models.Comment, error) {
	return slices.Clone(m.data.Comments), nil
}

func (m *Memory) Certificates(ctx context.Context) ([]models.Certificate, error) {
	return slices.Clone(m.data.Certificates), nil
}

func (m *Memory) FAQs(ctx context.Context) ([]models.FAQ, error) {
	return slices.Clone(m.data.FAQs), nil
}

func (m *Memory) Accounts(ctx context.Context) ([]models.Account, error) {
	return slices.Clone(m.data.Accounts), nil
}

func cloneDataset(d Dataset) Dataset {
	return Dataset{
		Categories:     slices.Clone(d.Categories),
		Levels:         slices.Clone(d.Levels),
		AgeGroups:      slices.Clone(d.AgeGroups),
		Languages:      slices.Clone(d.Languages),
		PostCategories: slices.Clone(d.PostCategories),
		Courses:        cloneEach(d.Courses, cloneCourse),
		Lessons:        slices.Clone(d.Lessons),
		Instructors:    cloneEach(d.Instructors, cloneInstructor),
		Students:       cloneEach(d.Students, cloneStudent),
		Enrollments:    cloneEach(d.Enrollments, cloneEnrollment),
		Reviews:        slices.Clone(d.Reviews),
		Achievements:   slices.Clone(d.Achievements),
		Posts:          cloneEach(d.Posts, clonePost),
		Comments:       slices.Clone(d.Comments),
		Certificates:   slices.Clone(d.Certificates),
		FAQs:           slices.Clone(d.FAQs),
		Accounts:       slices.Clone(d.Accounts),
	}
}

// cloneEach copies the slice and every nested slice or pointer, so callers
// can never reach the backing arrays held by the store.
func cloneEach[T any](items []T, deep func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = deep(item)
	}
	return out
}

func cloneCourse(c models.Course) models.Course {
	c.AgeGroupIDs = slices.Clone(c.AgeGroupIDs)
	c.Tags = slices.Clone(c.Tags)
	if c.Discount != nil {
		d := *c.Discount
		c.Discount = &d
	}
	return c
}

func cloneInstructor(i models.Instructor) models.Instructor {
	i.Expertise = slices.Clone(i.Expertise)
	return i
}

func cloneStudent(s models.Student) models.Student {
	s.EnrolledCourses = slices.Clone(s.EnrolledCourses)
	s.CompletedCourses = slices.Clone(s.CompletedCourses)
	s.Wishlist = slices.Clone(s.Wishlist)
	s.Achievements = slices.Clone(s.Achievements)
	return s
}

func cloneEnrollment(e models.Enrollment) models.Enrollment {
	e.CompletedLessons = slices.Clone(e.CompletedLessons)
	if e.CompletedAt != nil {
		t := *e.CompletedAt
		e.CompletedAt = &t
	}
	return e
}

func clonePost(p models.Post) models.Post {
	p.Tags = slices.Clone(p.Tags)
	return p
}
