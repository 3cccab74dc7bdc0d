package presenters

import (
	"context"
	"strings"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortRating    = "rating"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortTitle     = "title"

	// DefaultCourseSort applies when the client names no sort.
	DefaultCourseSort = SortPopular
)

// CatalogQuery is the public course search. Zero values and nil pointers
// place no constraint.
type CatalogQuery struct {
	Search     string   `query:"search" json:"search,omitempty" validate:"max=100"`
	CategoryID string   `query:"categoryId" json:"categoryId,omitempty"`
	LevelID    string   `query:"levelId" json:"levelId,omitempty"`
	AgeGroupID string   `query:"ageGroupId" json:"ageGroupId,omitempty"`
	LanguageID string   `query:"languageId" json:"languageId,omitempty"`
	MinPrice   *int     `query:"minPrice" json:"minPrice,omitempty" validate:"omitempty,min=0"`
	MaxPrice   *int     `query:"maxPrice" json:"maxPrice,omitempty" validate:"omitempty,min=0"`
	MinRating  *float64 `query:"minRating" json:"minRating,omitempty" validate:"omitempty,min=0,max=5"`
	Featured   *bool    `query:"featured" json:"featured,omitempty"`
	Popular    *bool    `query:"popular" json:"popular,omitempty"`
	New        *bool    `query:"new" json:"new,omitempty"`
	Sort       string   `query:"sort" json:"sort" validate:"omitempty,oneof=newest popular rating price-low price-high title"`
	Page       int      `query:"page" json:"-" validate:"omitempty,min=1"`
	PageSize   int      `query:"pageSize" json:"-" validate:"omitempty,min=1"`
}

// CourseList is one page of catalog cards plus the filters that produced it.
type CourseList struct {
	Items          []CourseCard `json:"items"`
	TotalCount     int          `json:"totalCount"`
	Page           int          `json:"page"`
	PageSize       int          `json:"pageSize"`
	TotalPages     int          `json:"totalPages"`
	AppliedFilters CatalogQuery `json:"appliedFilters"`
}

// courseRow keeps the raw record next to its card so filters can read
// fields the card leaves out.
type courseRow struct {
	course models.Course
	card   CourseCard
}

var courseSorts = map[string]query.Comparator[courseRow]{
	SortNewest:    newestFirst(func(r courseRow) time.Time { return r.course.CreatedAt }),
	SortPopular:   query.Desc(query.By(func(r courseRow) int { return r.course.StudentCount })),
	SortRating:    query.Desc(query.By(func(r courseRow) float64 { return r.course.Rating })),
	SortPriceLow:  query.By(func(r courseRow) int { return r.card.FinalPrice }),
	SortPriceHigh: query.Desc(query.By(func(r courseRow) int { return r.card.FinalPrice })),
	SortTitle:     query.By(func(r courseRow) string { return strings.ToLower(r.course.Title) }),
}

// CatalogPresenter builds the public catalog views.
type CatalogPresenter struct {
	base
}

// List returns one page of published courses matching q.
func (p *CatalogPresenter) List(ctx context.Context, q CatalogQuery) (CourseList, error) {
	if err := validateStruct(q); err != nil {
		return CourseList{}, err
	}
	if q.Sort == "" {
		q.Sort = DefaultCourseSort
	}

	courses, err := p.store.Courses(ctx)
	if err != nil {
		return CourseList{}, err
	}
	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return CourseList{}, err
	}

	rows := query.JoinAll(published(courses), func(c models.Course) (courseRow, bool) {
		card, ok := joiner.card(c)
		return courseRow{course: c, card: card}, ok
	})

	pageReq := p.pageOf(q.Page, q.PageSize, p.opts.CatalogPageSize)
	result := query.Query[courseRow]{
		Where: catalogPredicates(q),
		Order: courseSorts[q.Sort],
		Page:  pageReq,
	}.Run(rows)

	items := make([]CourseCard, 0, len(result.Items))
	for _, r := range result.Items {
		items = append(items, r.card)
	}
	return CourseList{
		Items:          items,
		TotalCount:     result.TotalCount,
		Page:           pageReq.Page,
		PageSize:       pageReq.PageSize,
		TotalPages:     query.TotalPages(result.TotalCount, pageReq.PageSize),
		AppliedFilters: q,
	}, nil
}

func catalogPredicates(q CatalogQuery) []query.Predicate[courseRow] {
	return []query.Predicate[courseRow]{
		query.Or(
			query.ContainsFold(q.Search,
				func(r courseRow) string { return r.course.Title },
				func(r courseRow) string { return r.course.Subtitle },
				func(r courseRow) string { return r.course.Description },
				func(r courseRow) string { return r.card.Instructor.Name },
			),
			query.ContainsFoldEach(q.Search, func(r courseRow) []string { return r.course.Tags }),
		),
		query.Equal(q.CategoryID, func(r courseRow) string { return r.course.CategoryID }),
		query.Equal(q.LevelID, func(r courseRow) string { return r.course.LevelID }),
		query.HasAny(q.AgeGroupID, func(r courseRow) []string { return r.course.AgeGroupIDs }),
		query.Equal(q.LanguageID, func(r courseRow) string { return r.course.LanguageID }),
		query.Between(q.MinPrice, q.MaxPrice, func(r courseRow) int { return r.card.FinalPrice }),
		query.Between(q.MinRating, nil, func(r courseRow) float64 { return r.course.Rating }),
		query.Is(q.Featured, func(r courseRow) bool { return r.course.IsFeatured }),
		query.Is(q.Popular, func(r courseRow) bool { return r.course.IsPopular }),
		query.Is(q.New, func(r courseRow) bool { return r.course.IsNew }),
	}
}

type CategoryOption struct {
	CategoryRef
	CourseCount int `json:"courseCount"`
}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CatalogFilters lists what the catalog can be filtered and sorted by.
type CatalogFilters struct {
	Categories  []CategoryOption  `json:"categories"`
	Levels      []models.Level    `json:"levels"`
	AgeGroups   []models.AgeGroup `json:"ageGroups"`
	Languages   []models.Language `json:"languages"`
	PriceRange  PriceRange        `json:"priceRange"`
	SortOptions []SortOption      `json:"sortOptions"`
	DefaultSort string            `json:"defaultSort"`
}

var sortOptions = []SortOption{
	{Value: SortPopular, Label: "Most popular"},
	{Value: SortNewest, Label: "Newest"},
	{Value: SortRating, Label: "Highest rated"},
	{Value: SortPriceLow, Label: "Price: low to high"},
	{Value: SortPriceHigh, Label: "Price: high to low"},
	{Value: SortTitle, Label: "Title"},
}

// Filters lists the options the catalog can be filtered by. Category counts
// cover published courses only.
func (p *CatalogPresenter) Filters(ctx context.Context) (CatalogFilters, error) {
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return CatalogFilters{}, err
	}
	categories, err := p.store.Categories(ctx)
	if err != nil {
		return CatalogFilters{}, err
	}
	levels, err := p.store.Levels(ctx)
	if err != nil {
		return CatalogFilters{}, err
	}
	ageGroups, err := p.store.AgeGroups(ctx)
	if err != nil {
		return CatalogFilters{}, err
	}
	languages, err := p.store.Languages(ctx)
	if err != nil {
		return CatalogFilters{}, err
	}

	visible := published(courses)
	counts := make(map[string]int)
	var prices PriceRange
	for i, c := range visible {
		counts[c.CategoryID]++
		price := c.FinalPrice()
		if i == 0 || price < prices.Min {
			prices.Min = price
		}
		if price > prices.Max {
			prices.Max = price
		}
	}

	options := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, CategoryOption{
			CategoryRef: CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon},
			CourseCount: counts[c.ID],
		})
	}

	return CatalogFilters{
		Categories:  options,
		Levels:      query.SortStable(levels, query.By(func(l models.Level) int { return l.Order })),
		AgeGroups:   ageGroups,
		Languages:   languages,
		PriceRange:  prices,
		SortOptions: sortOptions,
		DefaultSort: DefaultCourseSort,
	}, nil
}

type LessonView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Order     int    `json:"order"`
	IsPreview bool   `json:"isPreview"`
}

type CurriculumSection struct {
	Title    string       `json:"title"`
	Duration int          `json:"duration"`
	Lessons  []LessonView `json:"lessons"`
}

type RatingBucket struct {
	Stars   int     `json:"stars"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ReviewView struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Reply     string    `json:"reply,omitempty"`
	Reviewer  Author    `json:"reviewer"`
	CreatedAt time.Time `json:"createdAt"`
}

type InstructorSummary struct {
	InstructorRef
	Bio          string  `json:"bio"`
	Rating       float64 `json:"rating"`
	StudentCount int     `json:"studentCount"`
	CoursesCount int     `json:"coursesCount"`
}

// CourseDetail is the full public page of one course.
type CourseDetail struct {
	CourseCard
	Description     string              `json:"description"`
	AgeGroups       []models.AgeGroup   `json:"ageGroups"`
	Language        models.Language     `json:"language"`
	Instructor      InstructorSummary   `json:"instructor"`
	Curriculum      []CurriculumSection `json:"curriculum"`
	RatingBreakdown []RatingBucket      `json:"ratingBreakdown"`
	Reviews         []ReviewView        `json:"reviews"`
	Related         []CourseCard        `json:"related"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

const (
	detailReviewCount  = 5
	relatedCourseCount = 4
)

var unknownLanguage = models.Language{Name: "Unknown"}

// Detail resolves a published course by slug.
func (p *CatalogPresenter) Detail(ctx context.Context, slug string) (CourseDetail, error) {
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	var course models.Course
	found := false
	for _, c := range courses {
		if c.Slug == slug && c.IsPublished() {
			course, found = c, true
			break
		}
	}
	if !found {
		return CourseDetail{}, notFound("course", slug)
	}

	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	card, ok := joiner.card(course)
	if !ok {
		return CourseDetail{}, notFound("course", slug)
	}
	inst, _ := joiner.instructors.Get(course.InstructorID)

	ageGroups, err := p.store.AgeGroups(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	languages, err := p.store.Languages(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	lessons, err := p.store.Lessons(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	reviews, err := p.store.Reviews(ctx)
	if err != nil {
		return CourseDetail{}, err
	}
	authors, err := p.authorLookup(ctx, anonymous)
	if err != nil {
		return CourseDetail{}, err
	}

	lang, _ := query.NewLookup(languages, byID[models.Language], query.UseDefault, unknownLanguage).Get(course.LanguageID)
	groups := query.NewLookup(ageGroups, byID[models.AgeGroup], query.DropMissing, models.AgeGroup{}).GetAll(course.AgeGroupIDs)

	courseReviews := store.GetAllWhere(reviews, func(r models.Review) bool { return r.CourseID == course.ID })

	related := query.Filter(published(courses),
		query.Equal(course.CategoryID, func(c models.Course) string { return c.CategoryID }),
		func(c models.Course) bool { return c.ID != course.ID },
	)
	related = query.SortStable(related, query.Desc(query.By(func(c models.Course) int { return c.StudentCount })))

	return CourseDetail{
		CourseCard:  card,
		Description: course.Description,
		AgeGroups:   groups,
		Language:    lang,
		Instructor: InstructorSummary{
			InstructorRef: card.Instructor,
			Bio:           inst.Bio,
			Rating:        inst.Rating,
			StudentCount:  inst.StudentCount,
			CoursesCount:  inst.CoursesCount,
		},
		Curriculum:      curriculum(lessons, course.ID),
		RatingBreakdown: ratingBreakdown(courseReviews),
		Reviews:         latestReviews(courseReviews, authors, detailReviewCount),
		Related:         joiner.cards(firstN(related, relatedCourseCount)),
		UpdatedAt:       course.UpdatedAt,
	}, nil
}

// curriculum orders a course's lessons and groups them by section in the
// order sections first appear.
func curriculum(lessons []models.Lesson, courseID string) []CurriculumSection {
	own := store.GetAllWhere(lessons, func(l models.Lesson) bool { return l.CourseID == courseID })
	own = query.SortStable(own, query.By(func(l models.Lesson) int { return l.Order }))

	sections := make([]CurriculumSection, 0)
	index := make(map[string]int)
	for _, l := range own {
		i, ok := index[l.Section]
		if !ok {
			i = len(sections)
			index[l.Section] = i
			sections = append(sections, CurriculumSection{Title: l.Section, Lessons: []LessonView{}})
		}
		sections[i].Duration += l.Duration
		sections[i].Lessons = append(sections[i].Lessons, LessonView{
			ID: l.ID, Title: l.Title, Duration: l.Duration, Order: l.Order, IsPreview: l.IsPreview,
		})
	}
	return sections
}

// ratingBreakdown always returns five buckets, five stars first.
func ratingBreakdown(reviews []models.Review) []RatingBucket {
	var counts [6]int
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			counts[r.Rating]++
		}
	}
	out := make([]RatingBucket, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		out = append(out, RatingBucket{Stars: stars, Count: counts[stars], Percent: percent(counts[stars], len(reviews))})
	}
	return out
}

func latestReviews(reviews []models.Review, authors *query.Lookup[Author], n int) []ReviewView {
	sorted := query.SortStable(reviews, newestFirst(func(r models.Review) time.Time { return r.CreatedAt }))
	return query.JoinAll(firstN(sorted, n), func(r models.Review) (ReviewView, bool) {
		reviewer, _ := authors.Get(r.StudentID)
		return ReviewView{
			ID: r.ID, Rating: r.Rating, Comment: r.Comment, Reply: r.Reply,
			Reviewer: reviewer, CreatedAt: r.CreatedAt,
		}, true
	})
}

// InstructorProfile is an instructor with their published courses.
type InstructorProfile struct {
	InstructorSummary
	Expertise   []string     `json:"expertise"`
	ReviewCount int          `json:"reviewCount"`
	JoinedAt    time.Time    `json:"joinedAt"`
	Courses     []CourseCard `json:"courses"`
}

// Instructor is the public profile page of an instructor.
func (p *CatalogPresenter) Instructor(ctx context.Context, id string) (InstructorProfile, error) {
	inst, err := p.findInstructor(ctx, id)
	if err != nil {
		return InstructorProfile{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return InstructorProfile{}, err
	}
	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return InstructorProfile{}, err
	}

	own := query.Filter(published(courses), query.Equal(id, func(c models.Course) string { return c.InstructorID }))
	own = query.SortStable(own, courseSortsByCourse[SortPopular])

	expertise := inst.Expertise
	if expertise == nil {
		expertise = []string{}
	}
	return InstructorProfile{
		InstructorSummary: InstructorSummary{
			InstructorRef: InstructorRef{ID: inst.ID, Name: inst.Name, Avatar: inst.Avatar, Title: inst.Title},
			Bio:           inst.Bio,
			Rating:        inst.Rating,
			StudentCount:  inst.StudentCount,
			CoursesCount:  inst.CoursesCount,
		},
		Expertise:   expertise,
		ReviewCount: inst.ReviewCount,
		JoinedAt:    inst.JoinedAt,
		Courses:     joiner.cards(own),
	}, nil
}

// courseSortsByCourse holds the catalog orders for bare course records.
var courseSortsByCourse = map[string]query.Comparator[models.Course]{
	SortPopular: query.Desc(query.By(func(c models.Course) int { return c.StudentCount })),
	SortRating: query.Then(
		query.Desc(query.By(func(c models.Course) float64 { return c.Rating })),
		query.Desc(query.By(func(c models.Course) int { return c.StudentCount })),
	),
}
