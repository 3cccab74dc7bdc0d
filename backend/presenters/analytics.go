package presenters

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/query"
)

type AnalyticsQuery struct {
	CourseID string `query:"courseId"`
}

type CourseAnalytics struct {
	CourseID        string  `json:"courseId"`
	Title           string  `json:"title"`
	Status          string  `json:"status"`
	Enrollments     int     `json:"enrollments"`
	Completed       int     `json:"completed"`
	AverageProgress float64 `json:"averageProgress"`
	Revenue         int     `json:"revenue"`
	AverageRating   float64 `json:"averageRating"`
	Reviews         int     `json:"reviews"`
}

type MonthPoint struct {
	Month       string `json:"month"`
	Enrollments int    `json:"enrollments"`
	Revenue     int    `json:"revenue"`
}

// InstructorAnalytics is recomputed from enrollments and reviews over the
// selected courses. It does not use the totals stored on the instructor.
type InstructorAnalytics struct {
	CourseID         string            `json:"courseId,omitempty"`
	TotalStudents    int               `json:"totalStudents"`
	TotalEnrollments int               `json:"totalEnrollments"`
	AverageProgress  float64           `json:"averageProgress"`
	CompletionRate   float64           `json:"completionRate"`
	EstimatedRevenue int               `json:"estimatedRevenue"`
	AverageRating    float64           `json:"averageRating"`
	Courses          []CourseAnalytics `json:"courses"`
	Trend            []MonthPoint      `json:"trend"`
}

// AnalyticsPresenter recomputes instructor analytics from enrollments and reviews.
type AnalyticsPresenter struct {
	base
}

// Instructor aggregates an instructor's courses, or a single one of them when
// q.CourseID is set. Revenue is estimated as enrollments times the current
// final price.
func (p *AnalyticsPresenter) Instructor(ctx context.Context, instructorID string, q AnalyticsQuery) (InstructorAnalytics, error) {
	if _, err := p.findInstructor(ctx, instructorID); err != nil {
		return InstructorAnalytics{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return InstructorAnalytics{}, err
	}
	enrollments, err := p.store.Enrollments(ctx)
	if err != nil {
		return InstructorAnalytics{}, err
	}
	reviews, err := p.store.Reviews(ctx)
	if err != nil {
		return InstructorAnalytics{}, err
	}

	selected := query.Filter(courses,
		query.Equal(instructorID, func(c models.Course) string { return c.InstructorID }),
		query.Equal(q.CourseID, func(c models.Course) string { return c.ID }),
	)
	if q.CourseID != "" && len(selected) == 0 {
		return InstructorAnalytics{}, notFound("course", q.CourseID)
	}

	perCourse := make([]CourseAnalytics, 0, len(selected))
	courseIndex := make(map[string]int, len(selected))
	price := make(map[string]int, len(selected))
	for i, c := range selected {
		courseIndex[c.ID] = i
		price[c.ID] = c.FinalPrice()
		perCourse = append(perCourse, CourseAnalytics{CourseID: c.ID, Title: c.Title, Status: string(c.Status)})
	}

	out := InstructorAnalytics{CourseID: q.CourseID}
	students := make(map[string]bool)
	progressSum := make([]int, len(selected))
	totalProgress, completed := 0, 0
	months := make([]MonthPoint, 0)
	monthIndex := make(map[string]int)

	for _, e := range enrollments {
		i, ok := courseIndex[e.CourseID]
		if !ok {
			continue
		}
		students[e.StudentID] = true
		out.TotalEnrollments++
		totalProgress += e.Progress
		progressSum[i] += e.Progress

		ca := &perCourse[i]
		ca.Enrollments++
		ca.Revenue += price[e.CourseID]
		if e.Status == models.EnrollmentCompleted {
			ca.Completed++
			completed++
		}

		month := e.EnrolledAt.UTC().Format("2006-01")
		m, ok := monthIndex[month]
		if !ok {
			m = len(months)
			monthIndex[month] = m
			months = append(months, MonthPoint{Month: month})
		}
		months[m].Enrollments++
		months[m].Revenue += price[e.CourseID]
	}

	ratingSum := make([]int, len(selected))
	allRatings := 0
	for _, r := range reviews {
		i, ok := courseIndex[r.CourseID]
		if !ok {
			continue
		}
		ratingSum[i] += r.Rating
		allRatings += r.Rating
		perCourse[i].Reviews++
	}

	reviewCount := 0
	for i := range perCourse {
		ca := &perCourse[i]
		if ca.Enrollments > 0 {
			ca.AverageProgress = round1(float64(progressSum[i]) / float64(ca.Enrollments))
		}
		if ca.Reviews > 0 {
			ca.AverageRating = round1(float64(ratingSum[i]) / float64(ca.Reviews))
		}
		out.EstimatedRevenue += ca.Revenue
		reviewCount += ca.Reviews
	}

	out.TotalStudents = len(students)
	if out.TotalEnrollments > 0 {
		out.AverageProgress = round1(float64(totalProgress) / float64(out.TotalEnrollments))
	}
	out.CompletionRate = percent(completed, out.TotalEnrollments)
	if reviewCount > 0 {
		out.AverageRating = round1(float64(allRatings) / float64(reviewCount))
	}
	out.Courses = query.SortStable(perCourse, query.Desc(query.By(func(c CourseAnalytics) int { return c.Revenue })))
	out.Trend = query.SortStable(months, query.By(func(m MonthPoint) string { return m.Month }))
	return out, nil
}
