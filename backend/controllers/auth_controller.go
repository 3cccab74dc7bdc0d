package controllers

import (
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthController serves login.
type AuthController struct {
	Auth   *presenters.AuthPresenter
	Logger *utils.Logger
}

// NewAuthController creates an AuthController.
func NewAuthController(p *presenters.Presenters, logger *utils.Logger) *AuthController {
	return &AuthController{Auth: p.Auth, Logger: logger}
}

// Login godoc
// @Summary Log in
// @Description Checks email and password and returns a JWT for the student or instructor
// @Tags auth
// @Accept json
// @Produce json
// @Param request body presenters.LoginRequest true "Login credentials"
// @Success 200 {object} presenters.LoginResult
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req presenters.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, ac.Logger, err)
	}
	res, err := ac.Auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}
	return utils.OK(c, res)
}
