package models

import (
	"math"
	"time"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

type Discount struct {
	Percentage int       `json:"percentage"`
	ValidUntil time.Time `json:"validUntil"`
}

type Course struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	Slug         string       `json:"slug" gorm:"uniqueIndex"`
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	CategoryID   string       `json:"categoryId" gorm:"index"`
	LevelID      string       `json:"levelId"`
	AgeGroupIDs  []string     `json:"ageGroupIds" gorm:"serializer:json"`
	LanguageID   string       `json:"languageId"`
	Tags         []string     `json:"tags" gorm:"serializer:json"`
	Price        int          `json:"price"`
	Discount     *Discount    `json:"discount,omitempty" gorm:"serializer:json"`
	Rating       float64      `json:"rating"`
	StudentCount int          `json:"studentCount"`
	ReviewCount  int          `json:"reviewCount"`
	LessonCount  int          `json:"lessonCount"`
	Duration     int          `json:"duration"` // minutes
	IsFeatured   bool         `json:"isFeatured"`
	IsPopular    bool         `json:"isPopular"`
	IsNew        bool         `json:"isNew"`
	Status       CourseStatus `json:"status" gorm:"index"`
	InstructorID string       `json:"instructorId" gorm:"index"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (c Course) GetID() string { return c.ID }

// DiscountPercentage is 0 when the course carries no discount.
func (c Course) DiscountPercentage() int {
	if c.Discount == nil {
		return 0
	}
	return c.Discount.Percentage
}

// FinalPrice is the price shown to students. Filtering, sorting and display
// must all go through it so the rounding happens in exactly one place.
func (c Course) FinalPrice() int {
	return DiscountedPrice(c.Price, c.DiscountPercentage())
}

func (c Course) IsPublished() bool { return c.Status == CoursePublished }

// DiscountedPrice returns round(price * (1 - percentage/100)).
func DiscountedPrice(price, percentage int) int {
	if percentage <= 0 {
		return price
	}
	if percentage >= 100 {
		return 0
	}
	return int(math.Round(float64(price) * (1 - float64(percentage)/100)))
}

type Lesson struct {
	ID        string `json:"id" gorm:"primaryKey"`
	CourseID  string `json:"courseId" gorm:"index"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Order     int    `json:"order"`
	IsPreview bool   `json:"isPreview"`
}

func (l Lesson) GetID() string { return l.ID }
