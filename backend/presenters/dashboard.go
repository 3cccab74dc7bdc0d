package presenters

import (
	"context"
	"slices"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

const (
	continueLearningCount   = 3
	recommendationCount     = 4
	recentAchievementCount  = 3
	instructorReviewPreview = 5
)

type StudentSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Level  int    `json:"level"`
	Points int    `json:"points"`
	Streak int    `json:"streak"`
}

type StudentStats struct {
	EnrolledCourses  int     `json:"enrolledCourses"`
	CompletedCourses int     `json:"completedCourses"`
	InProgress       int     `json:"inProgress"`
	Certificates     int     `json:"certificates"`
	AverageProgress  float64 `json:"averageProgress"`
	LearningMinutes  int     `json:"learningMinutes"`
}

type ContinueItem struct {
	EnrollmentID       string     `json:"enrollmentId"`
	Course             CourseCard `json:"course"`
	Progress           int        `json:"progress"`
	CurrentLessonTitle string     `json:"currentLessonTitle"`
	LastAccessedAt     time.Time  `json:"lastAccessedAt"`
}

type StudentDashboard struct {
	Student            StudentSummary    `json:"student"`
	Stats              StudentStats      `json:"stats"`
	ContinueLearning   []ContinueItem    `json:"continueLearning"`
	Recommendations    []CourseCard      `json:"recommendations"`
	RecentAchievements []AchievementView `json:"recentAchievements"`
}

// DashboardPresenter builds the student and instructor dashboards.
type DashboardPresenter struct {
	base
}

// Student builds the student home screen. Stats cover all of the student's
// enrollments.
func (p *DashboardPresenter) Student(ctx context.Context, studentID string) (StudentDashboard, error) {
	student, err := p.findStudent(ctx, studentID)
	if err != nil {
		return StudentDashboard{}, err
	}
	enrollments, err := p.store.Enrollments(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	lessons, err := p.store.Lessons(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	certificates, err := p.store.Certificates(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	achievements, err := p.store.Achievements(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}

	own := store.GetAllWhere(enrollments, func(e models.Enrollment) bool { return e.StudentID == studentID })
	courseByID := query.NewLookup(courses, byID[models.Course], query.DropMissing, models.Course{})
	lessonByID := query.NewLookup(lessons, byID[models.Lesson], query.UseDefault, models.Lesson{})

	es := enrollmentStats(own)
	stats := StudentStats{
		EnrolledCourses:  es.Total,
		CompletedCourses: es.Completed,
		InProgress:       es.Active,
		AverageProgress:  es.AverageProgress,
		Certificates:     len(store.GetAllWhere(certificates, func(c models.Certificate) bool { return c.StudentID == studentID })),
	}
	for _, e := range own {
		if c, ok := courseByID.Get(e.CourseID); ok {
			stats.LearningMinutes += c.Duration * e.Progress / 100
		}
	}

	active := query.Filter(own, query.Equal(models.EnrollmentActive, func(e models.Enrollment) models.EnrollmentStatus { return e.Status }))
	active = query.SortStable(active, newestFirst(func(e models.Enrollment) time.Time { return e.LastAccessedAt }))
	continueLearning := query.JoinAll(active, func(e models.Enrollment) (ContinueItem, bool) {
		c, ok := courseByID.Get(e.CourseID)
		if !ok {
			return ContinueItem{}, false
		}
		card, ok := joiner.card(c)
		if !ok {
			return ContinueItem{}, false
		}
		lesson, _ := lessonByID.Get(e.CurrentLessonID)
		return ContinueItem{
			EnrollmentID:       e.ID,
			Course:             card,
			Progress:           e.Progress,
			CurrentLessonTitle: lesson.Title,
			LastAccessedAt:     e.LastAccessedAt,
		}, true
	})

	return StudentDashboard{
		Student: StudentSummary{
			ID: student.ID, Name: student.Name, Avatar: student.Avatar,
			Level: student.Level, Points: student.Points, Streak: student.Streak,
		},
		Stats:              stats,
		ContinueLearning:   firstN(continueLearning, continueLearningCount),
		Recommendations:    joiner.cards(recommend(courses, courseByID, own)),
		RecentAchievements: recentAchievements(achievements, student.Achievements),
	}, nil
}

// recommend prefers published courses the student is not enrolled in from
// categories they already study, then by rating and popularity.
func recommend(courses []models.Course, courseByID *query.Lookup[models.Course], own []models.Enrollment) []models.Course {
	enrolled := make(map[string]bool, len(own))
	studied := make(map[string]bool)
	for _, e := range own {
		enrolled[e.CourseID] = true
		if c, ok := courseByID.Get(e.CourseID); ok {
			studied[c.CategoryID] = true
		}
	}

	candidates := query.Filter(published(courses), func(c models.Course) bool { return !enrolled[c.ID] })
	studiedFirst := query.Desc(query.By(func(c models.Course) int {
		if studied[c.CategoryID] {
			return 1
		}
		return 0
	}))
	sorted := query.SortStable(candidates, query.Then(studiedFirst, courseSortsByCourse[SortRating]))
	return firstN(sorted, recommendationCount)
}

// recentAchievements treats the student's unlock list as chronological and
// returns the latest few, newest first.
func recentAchievements(catalog []models.Achievement, unlocked []string) []AchievementView {
	byAch := query.NewLookup(catalog, byID[models.Achievement], query.DropMissing, models.Achievement{})
	found := byAch.GetAll(unlocked)
	slices.Reverse(found)
	found = firstN(found, recentAchievementCount)

	out := make([]AchievementView, 0, len(found))
	for _, a := range found {
		out = append(out, achievementView(a, true))
	}
	return out
}

type InstructorDashboardQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=all draft published archived"`
}

// InstructorTotals are the lifetime figures stored on the instructor and do
// not follow the course status filter.
type InstructorTotals struct {
	Students int     `json:"students"`
	Courses  int     `json:"courses"`
	Revenue  int     `json:"revenue"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
}

type InstructorCourseRow struct {
	ID           string              `json:"id"`
	Slug         string              `json:"slug"`
	Title        string              `json:"title"`
	Thumbnail    string              `json:"thumbnail"`
	Status       models.CourseStatus `json:"status"`
	StudentCount int                 `json:"studentCount"`
	Rating       float64             `json:"rating"`
	ReviewCount  int                 `json:"reviewCount"`
	Price        int                 `json:"price"`
	FinalPrice   int                 `json:"finalPrice"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type InstructorDashboard struct {
	Instructor    InstructorRef         `json:"instructor"`
	Totals        InstructorTotals      `json:"totals"`
	Status        string                `json:"status"`
	Courses       []InstructorCourseRow `json:"courses"`
	RecentReviews []InstructorReview    `json:"recentReviews"`
}

// Instructor builds the instructor home screen.
func (p *DashboardPresenter) Instructor(ctx context.Context, instructorID string, q InstructorDashboardQuery) (InstructorDashboard, error) {
	if err := validateStruct(q); err != nil {
		return InstructorDashboard{}, err
	}
	if q.Status == "" {
		q.Status = "all"
	}
	inst, err := p.findInstructor(ctx, instructorID)
	if err != nil {
		return InstructorDashboard{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return InstructorDashboard{}, err
	}

	status := q.Status
	if status == "all" {
		status = ""
	}
	own := query.Filter(courses,
		query.Equal(instructorID, func(c models.Course) string { return c.InstructorID }),
		query.Equal(models.CourseStatus(status), func(c models.Course) models.CourseStatus { return c.Status }),
	)
	own = query.SortStable(own, newestFirst(func(c models.Course) time.Time { return c.UpdatedAt }))

	rows := make([]InstructorCourseRow, 0, len(own))
	for _, c := range own {
		rows = append(rows, InstructorCourseRow{
			ID: c.ID, Slug: c.Slug, Title: c.Title, Thumbnail: c.Thumbnail, Status: c.Status,
			StudentCount: c.StudentCount, Rating: c.Rating, ReviewCount: c.ReviewCount,
			Price: c.Price, FinalPrice: c.FinalPrice(), UpdatedAt: c.UpdatedAt,
		})
	}

	reviews, err := instructorReviews(ctx, p.base, instructorID)
	if err != nil {
		return InstructorDashboard{}, err
	}
	reviews = query.SortStable(reviews, newestFirst(func(r InstructorReview) time.Time { return r.CreatedAt }))

	return InstructorDashboard{
		Instructor: InstructorRef{ID: inst.ID, Name: inst.Name, Avatar: inst.Avatar, Title: inst.Title},
		Totals: InstructorTotals{
			Students: inst.StudentCount,
			Courses:  inst.CoursesCount,
			Revenue:  inst.TotalRevenue,
			Rating:   inst.Rating,
			Reviews:  inst.ReviewCount,
		},
		Status:        q.Status,
		Courses:       rows,
		RecentReviews: firstN(reviews, instructorReviewPreview),
	}, nil
}
