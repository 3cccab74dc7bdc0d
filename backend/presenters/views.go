package presenters

import (
	"context"
	"math"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

type LevelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InstructorRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Title  string `json:"title"`
}

// CourseCard is the course composite used by every listing.
type CourseCard struct {
	ID                 string              `json:"id"`
	Slug               string              `json:"slug"`
	Title              string              `json:"title"`
	Subtitle           string              `json:"subtitle"`
	Thumbnail          string              `json:"thumbnail"`
	Category           CategoryRef         `json:"category"`
	Level              LevelRef            `json:"level"`
	Instructor         InstructorRef       `json:"instructor"`
	Price              int                 `json:"price"`
	FinalPrice         int                 `json:"finalPrice"`
	DiscountPercentage int                 `json:"discountPercentage"`
	Rating             float64             `json:"rating"`
	StudentCount       int                 `json:"studentCount"`
	ReviewCount        int                 `json:"reviewCount"`
	LessonCount        int                 `json:"lessonCount"`
	Duration           int                 `json:"duration"`
	IsFeatured         bool                `json:"isFeatured"`
	IsPopular          bool                `json:"isPopular"`
	IsNew              bool                `json:"isNew"`
	Tags               []string            `json:"tags"`
	Status             models.CourseStatus `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// Author is a community or review author resolved across students and
// instructors.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

var (
	// courses whose level is missing still list, under this level
	unknownLevel = models.Level{Name: "All Levels"}
	formerMember = Author{Name: "Former member"}
	anonymous    = Author{Name: "Anonymous"}
)

func byID[T store.Identifiable](item T) string { return item.GetID() }

// courseJoiner resolves the references of a course. Instructor and category
// are required (DropMissing); the level falls back to unknownLevel.
type courseJoiner struct {
	categories  *query.Lookup[models.Category]
	levels      *query.Lookup[models.Level]
	instructors *query.Lookup[models.Instructor]
}

func (b base) courseJoiner(ctx context.Context) (*courseJoiner, error) {
	categories, err := b.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := b.store.Levels(ctx)
	if err != nil {
		return nil, err
	}
	instructors, err := b.store.Instructors(ctx)
	if err != nil {
		return nil, err
	}
	return &courseJoiner{
		categories:  query.NewLookup(categories, byID[models.Category], query.DropMissing, models.Category{}),
		levels:      query.NewLookup(levels, byID[models.Level], query.UseDefault, unknownLevel),
		instructors: query.NewLookup(instructors, byID[models.Instructor], query.DropMissing, models.Instructor{}),
	}, nil
}

func (j *courseJoiner) card(c models.Course) (CourseCard, bool) {
	inst, ok := j.instructors.Get(c.InstructorID)
	if !ok {
		return CourseCard{}, false
	}
	cat, ok := j.categories.Get(c.CategoryID)
	if !ok {
		return CourseCard{}, false
	}
	lvl, _ := j.levels.Get(c.LevelID)

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return CourseCard{
		ID:                 c.ID,
		Slug:               c.Slug,
		Title:              c.Title,
		Subtitle:           c.Subtitle,
		Thumbnail:          c.Thumbnail,
		Category:           CategoryRef{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, Icon: cat.Icon},
		Level:              LevelRef{ID: lvl.ID, Name: lvl.Name},
		Instructor:         InstructorRef{ID: inst.ID, Name: inst.Name, Avatar: inst.Avatar, Title: inst.Title},
		Price:              c.Price,
		FinalPrice:         c.FinalPrice(),
		DiscountPercentage: c.DiscountPercentage(),
		Rating:             c.Rating,
		StudentCount:       c.StudentCount,
		ReviewCount:        c.ReviewCount,
		LessonCount:        c.LessonCount,
		Duration:           c.Duration,
		IsFeatured:         c.IsFeatured,
		IsPopular:          c.IsPopular,
		IsNew:              c.IsNew,
		Tags:               tags,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
	}, true
}

func (j *courseJoiner) cards(courses []models.Course) []CourseCard {
	return query.JoinAll(courses, j.card)
}

func published(courses []models.Course) []models.Course {
	return query.Filter(courses, func(c models.Course) bool { return c.IsPublished() })
}

func (b base) findStudent(ctx context.Context, id string) (models.Student, error) {
	students, err := b.store.Students(ctx)
	if err != nil {
		return models.Student{}, err
	}
	st, ok := store.GetByID(students, id)
	if !ok {
		return models.Student{}, notFound("student", id)
	}
	return st, nil
}

func (b base) findInstructor(ctx context.Context, id string) (models.Instructor, error) {
	instructors, err := b.store.Instructors(ctx)
	if err != nil {
		return models.Instructor{}, err
	}
	inst, ok := store.GetByID(instructors, id)
	if !ok {
		return models.Instructor{}, notFound("instructor", id)
	}
	return inst, nil
}

// authorLookup indexes students and instructors together under the given
// fallback.
func (b base) authorLookup(ctx context.Context, fallback Author) (*query.Lookup[Author], error) {
	students, err := b.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	instructors, err := b.store.Instructors(ctx)
	if err != nil {
		return nil, err
	}
	authors := make([]Author, 0, len(students)+len(instructors))
	for _, s := range students {
		authors = append(authors, Author{ID: s.ID, Name: s.Name, Avatar: s.Avatar, Role: string(models.RoleStudent)})
	}
	for _, i := range instructors {
		authors = append(authors, Author{ID: i.ID, Name: i.Name, Avatar: i.Avatar, Role: string(models.RoleInstructor)})
	}
	return query.NewLookup(authors, func(a Author) string { return a.ID }, query.UseDefault, fallback), nil
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// percent is part/whole*100 rounded to one decimal; 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) * 100 / float64(whole))
}

func newestFirst[T any](at func(T) time.Time) query.Comparator[T] {
	return func(a, b T) int { return at(b).Compare(at(a)) }
}

func oldestFirst[T any](at func(T) time.Time) query.Comparator[T] {
	return func(a, b T) int { return at(a).Compare(at(b)) }
}

// pageOf applies defaults and limits to a client page request.
func (b base) pageOf(page, pageSize, defaultSize int) query.PageRequest {
	return query.PageRequest{Page: page, PageSize: pageSize}.Normalize(defaultSize, b.opts.MaxPageSize)
}

// firstN keeps at most n items.
func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
