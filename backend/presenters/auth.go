package presenters

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"learnhub/backend/models"
	"learnhub/backend/utils"
)

type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionUser struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Avatar string      `json:"avatar"`
	Role   models.Role `json:"role"`
}

// LoginResult carries the signed token and who it belongs to.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      SessionUser `json:"user"`
}

// AuthPresenter checks credentials and issues tokens.
type AuthPresenter struct {
	base
	auth AuthOptions
}

// Login checks an account's password and issues a token naming the
// student or instructor behind it. Unknown emails and wrong passwords fail
// the same way.
func (p *AuthPresenter) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return LoginResult{}, err
	}
	accounts, err := p.store.Accounts(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	var account models.Account
	found := false
	for _, a := range accounts {
		if strings.EqualFold(a.Email, req.Email) {
			account, found = a, true
			break
		}
	}
	if !found {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := p.sessionUser(ctx, account)
	if err != nil {
		return LoginResult{}, err
	}

	ttl := p.auth.TokenTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	token, err := utils.GenerateJWTToken(account.UserID, string(account.Role), p.auth.JWTSecret, ttl)
	if err != nil {
		return LoginResult{}, err
	}
	p.log.Info("login", "user", account.UserID, "role", account.Role)
	return LoginResult{Token: token, ExpiresAt: time.Now().Add(ttl).UTC(), User: user}, nil
}

// sessionUser fails with NotFound when the account points at a user that
// does not exist.
func (p *AuthPresenter) sessionUser(ctx context.Context, account models.Account) (SessionUser, error) {
	switch account.Role {
	case models.RoleInstructor:
		inst, err := p.findInstructor(ctx, account.UserID)
		if err != nil {
			return SessionUser{}, err
		}
		return SessionUser{ID: inst.ID, Name: inst.Name, Email: inst.Email, Avatar: inst.Avatar, Role: account.Role}, nil
	default:
		st, err := p.findStudent(ctx, account.UserID)
		if err != nil {
			return SessionUser{}, err
		}
		return SessionUser{ID: st.ID, Name: st.Name, Email: st.Email, Avatar: st.Avatar, Role: models.RoleStudent}, nil
	}
}
