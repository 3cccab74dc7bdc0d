package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserController serves the signed-in student's own pages.
type UserController struct {
	P      *presenters.Presenters
	Logger *utils.Logger
}

// NewUserController creates a UserController.
func NewUserController(p *presenters.Presenters, logger *utils.Logger) *UserController {
	return &UserController{P: p, Logger: logger}
}

// GetDashboard godoc
// @Summary Student dashboard
// @Tags me
// @Produce json
// @Success 200 {object} presenters.StudentDashboard
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/dashboard [get]
func (uc *UserController) GetDashboard(c *fiber.Ctx) error {
	d, err := uc.P.Dashboard.Student(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.OK(c, d)
}

// GetMyCourses godoc
// @Summary Enrolled courses
// @Tags me
// @Produce json
// @Param status query string false "all|active|completed|paused"
// @Success 200 {object} presenters.MyCourses
// @Security ApiKeyAuth
// @Router /me/courses [get]
func (uc *UserController) GetMyCourses(c *fiber.Ctx) error {
	var q presenters.MyCoursesQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, uc.Logger, err)
	}
	mc, err := uc.P.MyCourses.List(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.OK(c, mc)
}

// GetWishlist godoc
// @Summary Wishlist
// @Tags me
// @Produce json
// @Success 200 {object} presenters.Wishlist
// @Security ApiKeyAuth
// @Router /me/wishlist [get]
func (uc *UserController) GetWishlist(c *fiber.Ctx) error {
	w, err := uc.P.Wishlist.Get(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.OK(c, w)
}

// AddToWishlist godoc
// @Summary Save a course to the wishlist
// @Tags me
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 202 {object} presenters.ActionResult
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/wishlist/{courseId} [post]
func (uc *UserController) AddToWishlist(c *fiber.Ctx) error {
	res, err := uc.P.Wishlist.Add(c.UserContext(), middleware.CurrentUserID(c), c.Params("courseId"))
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}

// RemoveFromWishlist godoc
// @Summary Remove a course from the wishlist
// @Tags me
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 202 {object} presenters.ActionResult
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/wishlist/{courseId} [delete]
func (uc *UserController) RemoveFromWishlist(c *fiber.Ctx) error {
	res, err := uc.P.Wishlist.Remove(c.UserContext(), middleware.CurrentUserID(c), c.Params("courseId"))
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}

// GetSettings godoc
// @Summary Profile and preferences
// @Tags me
// @Produce json
// @Success 200 {object} presenters.Settings
// @Security ApiKeyAuth
// @Router /me/settings [get]
func (uc *UserController) GetSettings(c *fiber.Ctx) error {
	s, err := uc.P.Settings.Get(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.OK(c, s)
}

// UpdateSettings godoc
// @Summary Save profile and preferences
// @Tags me
// @Accept json
// @Produce json
// @Param request body presenters.SaveSettingsRequest true "Settings"
// @Success 202 {object} presenters.ActionResult
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/settings [put]
func (uc *UserController) UpdateSettings(c *fiber.Ctx) error {
	var req presenters.SaveSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, uc.Logger, err)
	}
	res, err := uc.P.Settings.Save(c.UserContext(), middleware.CurrentUserID(c), req)
	if err != nil {
		return respondError(c, uc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}
