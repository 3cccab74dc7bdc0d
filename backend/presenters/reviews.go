package presenters

import (
	"context"
	"strings"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

type CourseRef struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type InstructorReview struct {
	ID        string    `json:"id"`
	Course    CourseRef `json:"course"`
	Student   Author    `json:"student"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r InstructorReview) GetID() string { return r.ID }

type ReviewsQuery struct {
	Rating   int    `query:"rating" validate:"omitempty,min=1,max=5"`
	CourseID string `query:"courseId"`
	Replied  *bool  `query:"replied"`
	Sort     string `query:"sort" validate:"omitempty,oneof=newest oldest highest lowest"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1"`
}

// ReviewSummary covers every review of the instructor, not just the
// filtered page.
type ReviewSummary struct {
	Total        int            `json:"total"`
	Average      float64        `json:"average"`
	Distribution []RatingBucket `json:"distribution"`
	Replied      int            `json:"replied"`
	Pending      int            `json:"pending"`
}

type InstructorReviews struct {
	Items      []InstructorReview `json:"items"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Summary    ReviewSummary      `json:"summary"`
}

var reviewSorts = map[string]query.Comparator[InstructorReview]{
	"newest": newestFirst(func(r InstructorReview) time.Time { return r.CreatedAt }),
	"oldest": oldestFirst(func(r InstructorReview) time.Time { return r.CreatedAt }),
	"highest": query.Then(
		query.Desc(query.By(func(r InstructorReview) int { return r.Rating })),
		newestFirst(func(r InstructorReview) time.Time { return r.CreatedAt }),
	),
	"lowest": query.Then(
		query.By(func(r InstructorReview) int { return r.Rating }),
		newestFirst(func(r InstructorReview) time.Time { return r.CreatedAt }),
	),
}

// ReviewsPresenter lists reviews across an instructor's courses.
type ReviewsPresenter struct {
	base
}

// Instructor filters and sorts the instructor's reviews. The summary covers
// all of them.
func (p *ReviewsPresenter) Instructor(ctx context.Context, instructorID string, q ReviewsQuery) (InstructorReviews, error) {
	if err := validateStruct(q); err != nil {
		return InstructorReviews{}, err
	}
	if q.Sort == "" {
		q.Sort = "newest"
	}
	if _, err := p.findInstructor(ctx, instructorID); err != nil {
		return InstructorReviews{}, err
	}
	all, err := instructorReviews(ctx, p.base, instructorID)
	if err != nil {
		return InstructorReviews{}, err
	}

	var rating *int
	if q.Rating > 0 {
		rating = &q.Rating
	}
	pageReq := p.pageOf(q.Page, q.PageSize, p.opts.ListPageSize)
	page := query.Query[InstructorReview]{
		Where: []query.Predicate[InstructorReview]{
			query.Between(rating, rating, func(r InstructorReview) int { return r.Rating }),
			query.Equal(q.CourseID, func(r InstructorReview) string { return r.Course.ID }),
			query.Is(q.Replied, func(r InstructorReview) bool { return r.Reply != "" }),
		},
		Order: reviewSorts[q.Sort],
		Page:  pageReq,
	}.Run(all)

	return InstructorReviews{
		Items:      page.Items,
		TotalCount: page.TotalCount,
		Page:       pageReq.Page,
		PageSize:   pageReq.PageSize,
		Summary:    summarizeReviews(all),
	}, nil
}

// instructorReviews joins every review of the instructor's courses with its
// course and reviewer. Reviewers that are gone show as Anonymous.
func instructorReviews(ctx context.Context, b base, instructorID string) ([]InstructorReview, error) {
	courses, err := b.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := b.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := b.authorLookup(ctx, anonymous)
	if err != nil {
		return nil, err
	}

	own := store.GetAllWhere(courses, func(c models.Course) bool { return c.InstructorID == instructorID })
	courseByID := query.NewLookup(own, byID[models.Course], query.DropMissing, models.Course{})

	return query.JoinAll(reviews, func(r models.Review) (InstructorReview, bool) {
		c, ok := courseByID.Get(r.CourseID)
		if !ok {
			return InstructorReview{}, false
		}
		student, _ := authors.Get(r.StudentID)
		return InstructorReview{
			ID:        r.ID,
			Course:    CourseRef{ID: c.ID, Slug: c.Slug, Title: c.Title},
			Student:   student,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Reply:     r.Reply,
			CreatedAt: r.CreatedAt,
		}, true
	}), nil
}

func summarizeReviews(reviews []InstructorReview) ReviewSummary {
	raw := make([]models.Review, 0, len(reviews))
	s := ReviewSummary{Total: len(reviews)}
	sum := 0
	for _, r := range reviews {
		raw = append(raw, models.Review{Rating: r.Rating})
		sum += r.Rating
		if r.Reply != "" {
			s.Replied++
		}
	}
	s.Pending = s.Total - s.Replied
	if s.Total > 0 {
		s.Average = round1(float64(sum) / float64(s.Total))
	}
	s.Distribution = ratingBreakdown(raw)
	return s
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,min=2,max=1000"`
}

// Reply acknowledges an instructor's answer to a review of one of their own
// courses. Nothing is stored.
func (p *ReviewsPresenter) Reply(ctx context.Context, instructorID, reviewID string, req ReplyRequest) (ActionResult, error) {
	req.Reply = strings.TrimSpace(req.Reply)
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	if _, err := p.findInstructor(ctx, instructorID); err != nil {
		return ActionResult{}, err
	}
	own, err := instructorReviews(ctx, p.base, instructorID)
	if err != nil {
		return ActionResult{}, err
	}
	if _, ok := store.GetByID(own, reviewID); !ok {
		return ActionResult{}, notFound("review", reviewID)
	}
	return p.stub("review.reply", false, "instructor_id", instructorID, "review_id", reviewID, "length", len(req.Reply)), nil
}
