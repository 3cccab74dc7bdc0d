package presenters

import (
	"context"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

type MyCoursesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=all active completed paused"`
}

type LessonRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type MyCourse struct {
	EnrollmentID     string                  `json:"enrollmentId"`
	Course           CourseCard              `json:"course"`
	Progress         int                     `json:"progress"`
	Status           models.EnrollmentStatus `json:"status"`
	CompletedLessons int                     `json:"completedLessons"`
	TotalLessons     int                     `json:"totalLessons"`
	CurrentLesson    *LessonRef              `json:"currentLesson,omitempty"`
	EnrolledAt       time.Time               `json:"enrolledAt"`
	LastAccessedAt   time.Time               `json:"lastAccessedAt"`
	CompletedAt      *time.Time              `json:"completedAt,omitempty"`
}

// MyCoursesStats always covers every enrollment of the student, whatever
// status filter the list uses.
type MyCoursesStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Completed       int     `json:"completed"`
	Paused          int     `json:"paused"`
	AverageProgress float64 `json:"averageProgress"`
}

type MyCourses struct {
	Items  []MyCourse     `json:"items"`
	Status string         `json:"status"`
	Stats  MyCoursesStats `json:"stats"`
}

// MyCoursesPresenter lists a student's enrollments.
type MyCoursesPresenter struct {
	base
}

// List returns the student's courses filtered by status. Stats always cover
// every enrollment.
func (p *MyCoursesPresenter) List(ctx context.Context, studentID string, q MyCoursesQuery) (MyCourses, error) {
	if err := validateStruct(q); err != nil {
		return MyCourses{}, err
	}
	if q.Status == "" {
		q.Status = "all"
	}
	if _, err := p.findStudent(ctx, studentID); err != nil {
		return MyCourses{}, err
	}

	enrollments, err := p.store.Enrollments(ctx)
	if err != nil {
		return MyCourses{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return MyCourses{}, err
	}
	lessons, err := p.store.Lessons(ctx)
	if err != nil {
		return MyCourses{}, err
	}
	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return MyCourses{}, err
	}

	own := store.GetAllWhere(enrollments, func(e models.Enrollment) bool { return e.StudentID == studentID })
	stats := enrollmentStats(own)

	status := q.Status
	if status == "all" {
		status = ""
	}
	filtered := query.Filter(own, query.Equal(models.EnrollmentStatus(status), func(e models.Enrollment) models.EnrollmentStatus { return e.Status }))
	filtered = query.SortStable(filtered, newestFirst(func(e models.Enrollment) time.Time { return e.LastAccessedAt }))

	courseByID := query.NewLookup(courses, byID[models.Course], query.DropMissing, models.Course{})
	lessonByID := query.NewLookup(lessons, byID[models.Lesson], query.DropMissing, models.Lesson{})

	items := query.JoinAll(filtered, func(e models.Enrollment) (MyCourse, bool) {
		c, ok := courseByID.Get(e.CourseID)
		if !ok {
			return MyCourse{}, false
		}
		card, ok := joiner.card(c)
		if !ok {
			return MyCourse{}, false
		}
		return MyCourse{
			EnrollmentID:     e.ID,
			Course:           card,
			Progress:         e.Progress,
			Status:           e.Status,
			CompletedLessons: len(e.CompletedLessons),
			TotalLessons:     c.LessonCount,
			CurrentLesson:    lessonRef(lessonByID, e.CurrentLessonID),
			EnrolledAt:       e.EnrolledAt,
			LastAccessedAt:   e.LastAccessedAt,
			CompletedAt:      e.CompletedAt,
		}, true
	})

	return MyCourses{Items: items, Status: q.Status, Stats: stats}, nil
}

func enrollmentStats(enrollments []models.Enrollment) MyCoursesStats {
	stats := MyCoursesStats{Total: len(enrollments)}
	progress := 0
	for _, e := range enrollments {
		progress += e.Progress
		switch e.Status {
		case models.EnrollmentActive:
			stats.Active++
		case models.EnrollmentCompleted:
			stats.Completed++
		case models.EnrollmentPaused:
			stats.Paused++
		}
	}
	if len(enrollments) > 0 {
		stats.AverageProgress = round1(float64(progress) / float64(len(enrollments)))
	}
	return stats
}

// lessonRef is nil when the enrollment names no lesson or the lesson is
// gone.
func lessonRef(lessons *query.Lookup[models.Lesson], id string) *LessonRef {
	if id == "" {
		return nil
	}
	l, ok := lessons.Get(id)
	if !ok {
		return nil
	}
	return &LessonRef{ID: l.ID, Title: l.Title}
}
