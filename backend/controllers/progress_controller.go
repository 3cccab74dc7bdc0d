package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ProgressController serves what a student has earned: achievements,
// certificates and leaderboard standing.
type ProgressController struct {
	P      *presenters.Presenters
	Logger *utils.Logger
}

// NewProgressController creates a ProgressController.
func NewProgressController(p *presenters.Presenters, logger *utils.Logger) *ProgressController {
	return &ProgressController{P: p, Logger: logger}
}

// GetAchievements godoc
// @Summary Achievements, unlocked and locked
// @Tags progress
// @Produce json
// @Param category query string false "Achievement category"
// @Success 200 {object} presenters.Achievements
// @Security ApiKeyAuth
// @Router /me/achievements [get]
func (pc *ProgressController) GetAchievements(c *fiber.Ctx) error {
	var q presenters.AchievementsQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, pc.Logger, err)
	}
	a, err := pc.P.Achievements.Get(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return utils.OK(c, a)
}

// GetCertificates godoc
// @Summary Certificates earned
// @Tags progress
// @Produce json
// @Success 200 {object} presenters.CertificateList
// @Security ApiKeyAuth
// @Router /me/certificates [get]
func (pc *ProgressController) GetCertificates(c *fiber.Ctx) error {
	list, err := pc.P.Certificates.List(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return utils.OK(c, list)
}

// GetCertificate godoc
// @Summary One certificate
// @Tags progress
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} presenters.CertificateView
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/certificates/{id} [get]
func (pc *ProgressController) GetCertificate(c *fiber.Ctx) error {
	cert, err := pc.P.Certificates.Get(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return utils.OK(c, cert)
}

// GetLeaderboard godoc
// @Summary Leaderboard by points
// @Tags progress
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} presenters.Leaderboard
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (pc *ProgressController) GetLeaderboard(c *fiber.Ctx) error {
	var q presenters.LeaderboardQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, pc.Logger, err)
	}
	lb, err := pc.P.Leaderboard.Get(c.UserContext(), middleware.CurrentUserID(c), q)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return utils.Paginate(c, lb, lb.TotalCount, lb.Page, lb.PageSize)
}
