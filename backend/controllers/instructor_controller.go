package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// InstructorController serves the signed-in instructor's pages.
type InstructorController struct {
	P      *presenters.Presenters
	Logger *utils.Logger
}

// NewInstructorController creates an InstructorController.
func NewInstructorController(p *presenters.Presenters, logger *utils.Logger) *InstructorController {
	return &InstructorController{P: p, Logger: logger}
}

// GetDashboard godoc
// @Summary Instructor dashboard
// @Tags instructor
// @Produce json
// @Param status query string false "all|draft|published|archived"
// @Success 200 {object} presenters.InstructorDashboard
// @Security ApiKeyAuth
// @Router /instructor/dashboard [get]
func (ic *InstructorController) GetDashboard(c *fiber.Ctx) error {
	var q presenters.InstructorDashboardQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, ic.Logger, err)
	}
	d, err := ic.P.Dashboard.Instructor(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, ic.Logger, err)
	}
	return utils.OK(c, d)
}

// GetAnalytics godoc
// @Summary Enrollment, revenue and rating analytics
// @Tags instructor
// @Produce json
// @Param courseId query string false "Limit to one course"
// @Success 200 {object} presenters.InstructorAnalytics
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /instructor/analytics [get]
func (ic *InstructorController) GetAnalytics(c *fiber.Ctx) error {
	var q presenters.AnalyticsQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, ic.Logger, err)
	}
	a, err := ic.P.Analytics.Instructor(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, ic.Logger, err)
	}
	return utils.OK(c, a)
}

// GetReviews godoc
// @Summary Reviews of the instructor's courses
// @Tags instructor
// @Produce json
// @Param rating query int false "Exact star rating"
// @Param courseId query string false "Course ID"
// @Param replied query bool false "Replied or pending"
// @Param sort query string false "newest|oldest|highest|lowest"
// @Success 200 {object} presenters.InstructorReviews
// @Security ApiKeyAuth
// @Router /instructor/reviews [get]
func (ic *InstructorController) GetReviews(c *fiber.Ctx) error {
	var q presenters.ReviewsQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, ic.Logger, err)
	}
	r, err := ic.P.Reviews.Instructor(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, ic.Logger, err)
	}
	return utils.Paginate(c, r, r.TotalCount, r.Page, r.PageSize)
}

// ReplyToReview godoc
// @Summary Reply to a review
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body presenters.ReplyRequest true "Reply"
// @Success 202 {object} presenters.ActionResult
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /instructor/reviews/{id}/reply [post]
func (ic *InstructorController) ReplyToReview(c *fiber.Ctx) error {
	var req presenters.ReplyRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, ic.Logger, err)
	}
	res, err := ic.P.Reviews.Reply(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, ic.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}

// RequestWithdrawal godoc
// @Summary Request a payout
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body presenters.WithdrawalRequest true "Withdrawal"
// @Success 202 {object} presenters.ActionResult
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /instructor/withdrawals [post]
func (ic *InstructorController) RequestWithdrawal(c *fiber.Ctx) error {
	var req presenters.WithdrawalRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, ic.Logger, err)
	}
	res, err := ic.P.Earnings.RequestWithdrawal(c.UserContext(), middleware.CurrentUserID(c), req)
	if err != nil {
		return respondError(c, ic.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}
