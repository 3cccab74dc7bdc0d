package presenters

import (
	"context"
	"strings"

	"learnhub/backend/models"
	"learnhub/backend/query"
)

type FAQQuery struct {
	Category string `query:"category"`
	Search   string `query:"search" validate:"max=100"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQGroup struct {
	Category string    `json:"category"`
	Items    []FAQItem `json:"items"`
}

type FAQList struct {
	Groups     []FAQGroup `json:"groups"`
	Total      int        `json:"total"`
	Categories []string   `json:"categories"`
}

type PlatformStats struct {
	Courses       int     `json:"courses"`
	Students      int     `json:"students"`
	Instructors   int     `json:"instructors"`
	Enrollments   int     `json:"enrollments"`
	Certificates  int     `json:"certificates"`
	Categories    int     `json:"categories"`
	AverageRating float64 `json:"averageRating"`
}

type About struct {
	Stats       PlatformStats       `json:"stats"`
	Instructors []InstructorSummary `json:"instructors"`
	Categories  []CategoryOption    `json:"categories"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContentPresenter serves the FAQ, About and Contact pages.
type ContentPresenter struct {
	base
}

// FAQ groups questions by category. Groups keep the order in which their
// category first appears; questions inside a group follow their Order.
func (p *ContentPresenter) FAQ(ctx context.Context, q FAQQuery) (FAQList, error) {
	if err := validateStruct(q); err != nil {
		return FAQList{}, err
	}
	faqs, err := p.store.FAQs(ctx)
	if err != nil {
		return FAQList{}, err
	}

	categories := make([]string, 0)
	seen := make(map[string]bool)
	for _, f := range faqs {
		if !seen[f.Category] {
			seen[f.Category] = true
			categories = append(categories, f.Category)
		}
	}

	matching := query.Filter(faqs,
		query.Equal(q.Category, func(f models.FAQ) string { return f.Category }),
		query.ContainsFold(q.Search,
			func(f models.FAQ) string { return f.Question },
			func(f models.FAQ) string { return f.Answer },
		),
	)

	groups := make([]FAQGroup, 0)
	index := make(map[string]int)
	order := make(map[string]int, len(matching))
	for _, f := range matching {
		order[f.ID] = f.Order
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, FAQGroup{Category: f.Category})
		}
		groups[i].Items = append(groups[i].Items, FAQItem{ID: f.ID, Question: f.Question, Answer: f.Answer})
	}
	byOrder := query.By(func(it FAQItem) int { return order[it.ID] })
	for i := range groups {
		groups[i].Items = query.SortStable(groups[i].Items, byOrder)
	}

	return FAQList{Groups: groups, Total: len(matching), Categories: categories}, nil
}

const aboutInstructorCount = 3

// About reports platform-wide figures. Course figures count published
// courses only.
func (p *ContentPresenter) About(ctx context.Context) (About, error) {
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return About{}, err
	}
	students, err := p.store.Students(ctx)
	if err != nil {
		return About{}, err
	}
	instructors, err := p.store.Instructors(ctx)
	if err != nil {
		return About{}, err
	}
	enrollments, err := p.store.Enrollments(ctx)
	if err != nil {
		return About{}, err
	}
	certificates, err := p.store.Certificates(ctx)
	if err != nil {
		return About{}, err
	}
	categories, err := p.store.Categories(ctx)
	if err != nil {
		return About{}, err
	}

	visible := published(courses)
	ratingSum := 0.0
	perCategory := make(map[string]int)
	for _, c := range visible {
		ratingSum += c.Rating
		perCategory[c.CategoryID]++
	}
	stats := PlatformStats{
		Courses:      len(visible),
		Students:     len(students),
		Instructors:  len(instructors),
		Enrollments:  len(enrollments),
		Certificates: len(certificates),
		Categories:   len(categories),
	}
	if len(visible) > 0 {
		stats.AverageRating = round1(ratingSum / float64(len(visible)))
	}

	top := query.SortStable(instructors, query.Then(
		query.Desc(query.By(func(i models.Instructor) float64 { return i.Rating })),
		query.Desc(query.By(func(i models.Instructor) int { return i.StudentCount })),
	))
	summaries := make([]InstructorSummary, 0, aboutInstructorCount)
	for _, i := range firstN(top, aboutInstructorCount) {
		summaries = append(summaries, InstructorSummary{
			InstructorRef: InstructorRef{ID: i.ID, Name: i.Name, Avatar: i.Avatar, Title: i.Title},
			Bio:           i.Bio,
			Rating:        i.Rating,
			StudentCount:  i.StudentCount,
			CoursesCount:  i.CoursesCount,
		})
	}

	options := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, CategoryOption{
			CategoryRef: CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon},
			CourseCount: perCategory[c.ID],
		})
	}

	return About{Stats: stats, Instructors: summaries, Categories: options}, nil
}

// Contact validates the contact form and hands out a ticket id. No message
// is sent.
func (p *ContentPresenter) Contact(ctx context.Context, req ContactRequest) (ActionResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	return p.stub("contact.submit", true, "subject", req.Subject, "length", len(req.Message)), nil
}
