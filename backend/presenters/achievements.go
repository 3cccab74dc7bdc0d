package presenters

import (
	"context"
	"math"

	"learnhub/backend/models"
	"learnhub/backend/query"
)

type AchievementsQuery struct {
	Category string `query:"category"`
}

// AchievementView carries no unlock time: only the fact of unlocking is
// recorded.
type AchievementView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	Rarity      string `json:"rarity"`
	Unlocked    bool   `json:"unlocked"`
}

type AchievementStats struct {
	Unlocked          int `json:"unlocked"`
	Total             int `json:"total"`
	EarnedPoints      int `json:"earnedPoints"`
	TotalPoints       int `json:"totalPoints"`
	CompletionPercent int `json:"completionPercent"`
}

type Achievements struct {
	Unlocked   []AchievementView `json:"unlocked"`
	Locked     []AchievementView `json:"locked"`
	Stats      AchievementStats  `json:"stats"`
	Categories []string          `json:"categories"`
	Category   string            `json:"category,omitempty"`
}

// AchievementsPresenter builds the achievements page.
type AchievementsPresenter struct {
	base
}

// Get splits the achievement catalog into unlocked and locked for one
// student. Stats cover the selected category only. Unlocked ids that are not
// in the catalog are ignored.
func (p *AchievementsPresenter) Get(ctx context.Context, studentID string, q AchievementsQuery) (Achievements, error) {
	student, err := p.findStudent(ctx, studentID)
	if err != nil {
		return Achievements{}, err
	}
	catalog, err := p.store.Achievements(ctx)
	if err != nil {
		return Achievements{}, err
	}

	unlocked := make(map[string]bool, len(student.Achievements))
	for _, id := range student.Achievements {
		unlocked[id] = true
	}

	selected := query.Filter(catalog, query.Equal(q.Category, func(a models.Achievement) string { return a.Category }))
	out := Achievements{
		Unlocked:   []AchievementView{},
		Locked:     []AchievementView{},
		Categories: achievementCategories(catalog),
		Category:   q.Category,
	}
	for _, a := range selected {
		view := achievementView(a, unlocked[a.ID])
		out.Stats.Total++
		out.Stats.TotalPoints += a.Points
		if view.Unlocked {
			out.Stats.Unlocked++
			out.Stats.EarnedPoints += a.Points
			out.Unlocked = append(out.Unlocked, view)
		} else {
			out.Locked = append(out.Locked, view)
		}
	}
	if out.Stats.Total > 0 {
		out.Stats.CompletionPercent = int(math.Round(float64(out.Stats.Unlocked) * 100 / float64(out.Stats.Total)))
	}
	return out, nil
}

func achievementView(a models.Achievement, unlocked bool) AchievementView {
	return AchievementView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Category:    a.Category,
		Points:      a.Points,
		Rarity:      a.Rarity,
		Unlocked:    unlocked,
	}
}

func achievementCategories(catalog []models.Achievement) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, a := range catalog {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}
