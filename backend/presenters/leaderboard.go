package presenters

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/query"
)

type LeaderboardQuery struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	StudentID     string `json:"studentId"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Points        int    `json:"points"`
	Level         int    `json:"level"`
	Streak        int    `json:"streak"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

type Leaderboard struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser LeaderboardEntry   `json:"currentUser"`
	TotalCount  int                `json:"totalCount"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
}

// LeaderboardPresenter ranks students by points.
type LeaderboardPresenter struct {
	base
}

// Get ranks every student by points. Ties share a rank and the next rank
// skips ahead: a student's rank is 1 + the number of students with strictly
// more points.
func (p *LeaderboardPresenter) Get(ctx context.Context, studentID string, q LeaderboardQuery) (Leaderboard, error) {
	if err := validateStruct(q); err != nil {
		return Leaderboard{}, err
	}
	students, err := p.store.Students(ctx)
	if err != nil {
		return Leaderboard{}, err
	}

	ranked := rankStudents(students, studentID)
	var current LeaderboardEntry
	found := false
	for _, e := range ranked {
		if e.IsCurrentUser {
			current, found = e, true
			break
		}
	}
	if !found {
		return Leaderboard{}, notFound("student", studentID)
	}

	pageReq := p.pageOf(q.Page, q.PageSize, p.opts.ListPageSize)
	page := query.Paginate(ranked, pageReq)
	return Leaderboard{
		Entries:     page.Items,
		CurrentUser: current,
		TotalCount:  page.TotalCount,
		Page:        pageReq.Page,
		PageSize:    pageReq.PageSize,
	}, nil
}

func rankStudents(students []models.Student, currentID string) []LeaderboardEntry {
	sorted := query.SortStable(students, query.Desc(query.By(func(s models.Student) int { return s.Points })))
	out := make([]LeaderboardEntry, 0, len(sorted))
	for i, s := range sorted {
		rank := i + 1
		if i > 0 && sorted[i-1].Points == s.Points {
			rank = out[i-1].Rank
		}
		out = append(out, LeaderboardEntry{
			Rank:          rank,
			StudentID:     s.ID,
			Name:          s.Name,
			Avatar:        s.Avatar,
			Points:        s.Points,
			Level:         s.Level,
			Streak:        s.Streak,
			IsCurrentUser: s.ID == currentID,
		})
	}
	return out
}
