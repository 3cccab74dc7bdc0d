package models

import "time"

type Preferences struct {
	Language           string  `json:"language"`
	PlaybackSpeed      float64 `json:"playbackSpeed"`
	AutoplayNext       bool    `json:"autoplayNext"`
	EmailNotifications bool    `json:"emailNotifications"`
	PushNotifications  bool    `json:"pushNotifications"`
	WeeklyDigest       bool    `json:"weeklyDigest"`
}

type Student struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Avatar           string      `json:"avatar"`
	Bio              string      `json:"bio"`
	JoinedAt         time.Time   `json:"joinedAt"`
	EnrolledCourses  []string    `json:"enrolledCourses" gorm:"serializer:json"`
	CompletedCourses []string    `json:"completedCourses" gorm:"serializer:json"`
	Wishlist         []string    `json:"wishlist" gorm:"serializer:json"`
	Achievements     []string    `json:"achievements" gorm:"serializer:json"`
	Points           int         `json:"points"`
	Level            int         `json:"level"`
	Streak           int         `json:"streak"`
	Preferences      Preferences `json:"preferences" gorm:"serializer:json"`
}

func (s Student) GetID() string { return s.ID }

type Instructor struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Title        string    `json:"title"`
	Bio          string    `json:"bio"`
	Expertise    []string  `json:"expertise" gorm:"serializer:json"`
	StudentCount int       `json:"studentCount"`
	CoursesCount int       `json:"coursesCount"`
	Rating       float64   `json:"rating"`
	TotalRevenue int       `json:"totalRevenue"`
	ReviewCount  int       `json:"reviewCount"`
	JoinedAt     time.Time `json:"joinedAt"`
}

func (i Instructor) GetID() string { return i.ID }

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// Account links login credentials to a student or instructor record.
type Account struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	Role         Role   `json:"role"`
	UserID       string `json:"userId"`
	PasswordHash string `json:"-"`
}

func (a Account) GetID() string { return a.ID }
