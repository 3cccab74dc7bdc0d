package store

import (
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"learnhub/backend/models"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// accountSeed is the on-disk shape of an account; the plaintext password is
// hashed on load and dropped.
type accountSeed struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	UserID   string      `json:"userId"`
	Password string      `json:"password"`
}

// LoadFixtures decodes the embedded demo data.
func LoadFixtures() (Dataset, error) {
	return LoadFixturesWithCost(bcrypt.DefaultCost)
}

// LoadFixturesWithCost is LoadFixtures with an explicit bcrypt cost.
func LoadFixturesWithCost(cost int) (Dataset, error) {
	var d Dataset
	files := []struct {
		name string
		dst  any
	}{
		{"categories.json", &d.Categories},
		{"levels.json", &d.Levels},
		{"age_groups.json", &d.AgeGroups},
		{"languages.json", &d.Languages},
		{"post_categories.json", &d.PostCategories},
		{"courses.json", &d.Courses},
		{"lessons.json", &d.Lessons},
		{"instructors.json", &d.Instructors},
		{"students.json", &d.Students},
		{"enrollments.json", &d.Enrollments},
		{"reviews.json", &d.Reviews},
		{"achievements.json", &d.Achievements},
		{"posts.json", &d.Posts},
		{"comments.json", &d.Comments},
		{"certificates.json", &d.Certificates},
		{"faqs.json", &d.FAQs},
	}
	for _, f := range files {
		if err := decodeFixture(f.name, f.dst); err != nil {
			return Dataset{}, err
		}
	}

	var seeds []accountSeed
	if err := decodeFixture("accounts.json", &seeds); err != nil {
		return Dataset{}, err
	}
	d.Accounts = make([]models.Account, 0, len(seeds))
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return Dataset{}, fmt.Errorf("hash password for %s: %w", s.Email, err)
		}
		d.Accounts = append(d.Accounts, models.Account{
			ID:           s.ID,
			Email:        s.Email,
			Role:         s.Role,
			UserID:       s.UserID,
			PasswordHash: string(hash),
		})
	}

	return d, nil
}

func decodeFixture(name string, dst any) error {
	raw, err := fixtureFS.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
