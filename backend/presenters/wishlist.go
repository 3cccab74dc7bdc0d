package presenters

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

type WishlistItem struct {
	Course  CourseCard `json:"course"`
	Savings int        `json:"savings"`
}

type Wishlist struct {
	Items        []WishlistItem `json:"items"`
	Count        int            `json:"count"`
	TotalPrice   int            `json:"totalPrice"`
	TotalSavings int            `json:"totalSavings"`
}

// WishlistPresenter shows a student's saved courses.
type WishlistPresenter struct {
	base
}

// Get lists the student's wishlist in the order it was saved. Courses that
// no longer exist or are no longer published are left out.
func (p *WishlistPresenter) Get(ctx context.Context, studentID string) (Wishlist, error) {
	student, err := p.findStudent(ctx, studentID)
	if err != nil {
		return Wishlist{}, err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return Wishlist{}, err
	}
	joiner, err := p.courseJoiner(ctx)
	if err != nil {
		return Wishlist{}, err
	}

	saved := query.NewLookup(published(courses), byID[models.Course], query.DropMissing, models.Course{}).GetAll(student.Wishlist)
	items := query.JoinAll(saved, func(c models.Course) (WishlistItem, bool) {
		card, ok := joiner.card(c)
		return WishlistItem{Course: card, Savings: card.Price - card.FinalPrice}, ok
	})

	w := Wishlist{Items: items, Count: len(items)}
	for _, it := range items {
		w.TotalPrice += it.Course.FinalPrice
		w.TotalSavings += it.Savings
	}
	return w, nil
}

// Add acknowledges a wishlist addition without storing it. Only published
// courses can be added, the same ones Get shows.
func (p *WishlistPresenter) Add(ctx context.Context, studentID, courseID string) (ActionResult, error) {
	if err := p.checkCourse(ctx, studentID, courseID, true); err != nil {
		return ActionResult{}, err
	}
	return p.stub("wishlist.add", false, "student_id", studentID, "course_id", courseID), nil
}

// Remove acknowledges a wishlist removal without storing it. Unpublished
// courses may still be removed.
func (p *WishlistPresenter) Remove(ctx context.Context, studentID, courseID string) (ActionResult, error) {
	if err := p.checkCourse(ctx, studentID, courseID, false); err != nil {
		return ActionResult{}, err
	}
	return p.stub("wishlist.remove", false, "student_id", studentID, "course_id", courseID), nil
}

func (p *WishlistPresenter) checkCourse(ctx context.Context, studentID, courseID string, mustBePublished bool) error {
	if _, err := p.findStudent(ctx, studentID); err != nil {
		return err
	}
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return err
	}
	course, ok := store.GetByID(courses, courseID)
	if !ok || (mustBePublished && !course.IsPublished()) {
		return notFound("course", courseID)
	}
	return nil
}
