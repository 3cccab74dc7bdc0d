package models

type Category struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func (c Category) GetID() string { return c.ID }

type Level struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func (l Level) GetID() string { return l.ID }

type AgeGroup struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name"`
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"` // 0 means no upper bound
}

func (a AgeGroup) GetID() string { return a.ID }

type Language struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (l Language) GetID() string { return l.ID }

type PostCategory struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

func (p PostCategory) GetID() string { return p.ID }

type FAQ struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

func (f FAQ) GetID() string { return f.ID }
