package presenters

import (
	"context"
	"strings"
	"time"

	"learnhub/backend/models"
)

type Profile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	Bio      string    `json:"bio"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Settings struct {
	Profile     Profile            `json:"profile"`
	Preferences models.Preferences `json:"preferences"`
}

type PreferencesInput struct {
	Language           string  `json:"language" validate:"required,oneof=en es fr"`
	PlaybackSpeed      float64 `json:"playbackSpeed" validate:"gte=0.5,lte=2"`
	AutoplayNext       bool    `json:"autoplayNext"`
	EmailNotifications bool    `json:"emailNotifications"`
	PushNotifications  bool    `json:"pushNotifications"`
	WeeklyDigest       bool    `json:"weeklyDigest"`
}

type SaveSettingsRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=80"`
	Bio         string           `json:"bio" validate:"max=500"`
	Preferences PreferencesInput `json:"preferences"`
}

// SettingsPresenter reads and validates student settings.
type SettingsPresenter struct {
	base
}

// Get returns the student's profile and preferences.
func (p *SettingsPresenter) Get(ctx context.Context, studentID string) (Settings, error) {
	st, err := p.findStudent(ctx, studentID)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Profile: Profile{
			ID: st.ID, Name: st.Name, Email: st.Email,
			Avatar: st.Avatar, Bio: st.Bio, JoinedAt: st.JoinedAt,
		},
		Preferences: st.Preferences,
	}, nil
}

// Save validates the settings form and acknowledges it. A following Get
// still returns the stored values.
func (p *SettingsPresenter) Save(ctx context.Context, studentID string, req SaveSettingsRequest) (ActionResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	if _, err := p.findStudent(ctx, studentID); err != nil {
		return ActionResult{}, err
	}
	return p.stub("settings.save", false,
		"student_id", studentID,
		"language", req.Preferences.Language,
		"playback_speed", req.Preferences.PlaybackSpeed,
	), nil
}
