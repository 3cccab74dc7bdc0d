package models

import "time"

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CourseID  string    `json:"courseId" gorm:"index"`
	StudentID string    `json:"studentId"`
	Rating    int       `json:"rating" gorm:"check:rating>=1 AND rating<=5"`
	Comment   string    `json:"comment"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r Review) GetID() string { return r.ID }

type Post struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	AuthorID   string    `json:"authorId"`
	CategoryID string    `json:"categoryId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags" gorm:"serializer:json"`
	Likes      int       `json:"likes"`
	Views      int       `json:"views"`
	IsPinned   bool      `json:"isPinned"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p Post) GetID() string { return p.ID }

// Comment.ParentID is empty for top-level comments.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"index"`
	AuthorID  string    `json:"authorId"`
	ParentID  string    `json:"parentId,omitempty"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) GetID() string { return c.ID }
