package controllers

import (
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// OverviewController serves the public platform pages.
type OverviewController struct {
	Content *presenters.ContentPresenter
	Logger  *utils.Logger
}

// NewOverviewController creates an OverviewController.
func NewOverviewController(p *presenters.Presenters, logger *utils.Logger) *OverviewController {
	return &OverviewController{Content: p.Content, Logger: logger}
}

// GetFAQ godoc
// @Summary Frequently asked questions
// @Tags overview
// @Produce json
// @Param category query string false "FAQ category"
// @Param search query string false "Search questions and answers"
// @Success 200 {object} presenters.FAQList
// @Router /faq [get]
func (oc *OverviewController) GetFAQ(c *fiber.Ctx) error {
	var q presenters.FAQQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, oc.Logger, err)
	}
	faq, err := oc.Content.FAQ(c.UserContext(), q)
	if err != nil {
		return respondError(c, oc.Logger, err)
	}
	return utils.OK(c, faq)
}

// GetAbout godoc
// @Summary Platform figures and featured instructors
// @Tags overview
// @Produce json
// @Success 200 {object} presenters.About
// @Router /about [get]
func (oc *OverviewController) GetAbout(c *fiber.Ctx) error {
	about, err := oc.Content.About(c.UserContext())
	if err != nil {
		return respondError(c, oc.Logger, err)
	}
	return utils.OK(c, about)
}

// Contact godoc
// @Summary Contact form
// @Tags overview
// @Accept json
// @Produce json
// @Param request body presenters.ContactRequest true "Message"
// @Success 202 {object} presenters.ActionResult
// @Failure 422 {object} utils.ErrorResponse
// @Router /contact [post]
func (oc *OverviewController) Contact(c *fiber.Ctx) error {
	var req presenters.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, oc.Logger, err)
	}
	res, err := oc.Content.Contact(c.UserContext(), req)
	if err != nil {
		return respondError(c, oc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}
