package controllers

import (
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CoursesController serves the public catalog.
type CoursesController struct {
	Catalog *presenters.CatalogPresenter
	Logger  *utils.Logger
}

// NewCoursesController creates a CoursesController.
func NewCoursesController(p *presenters.Presenters, logger *utils.Logger) *CoursesController {
	return &CoursesController{Catalog: p.Catalog, Logger: logger}
}

// ListCourses godoc
// @Summary Browse the catalog
// @Description Published courses filtered by search, category, level, age group, language, price, rating and flags
// @Tags courses
// @Produce json
// @Param search query string false "Free-text search"
// @Param sort query string false "newest|popular|rating|price-low|price-high|title"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} presenters.CourseList
// @Failure 422 {object} utils.ErrorResponse
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var q presenters.CatalogQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, cc.Logger, err)
	}
	list, err := cc.Catalog.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Paginate(c, list, list.TotalCount, list.Page, list.PageSize)
}

// GetFilters godoc
// @Summary Catalog filter options
// @Tags courses
// @Produce json
// @Success 200 {object} presenters.CatalogFilters
// @Router /courses/filters [get]
func (cc *CoursesController) GetFilters(c *fiber.Ctx) error {
	filters, err := cc.Catalog.Filters(c.UserContext())
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.OK(c, filters)
}

// GetCourseDetails godoc
// @Summary Course page
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} presenters.CourseDetail
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{slug} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	detail, err := cc.Catalog.Detail(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.OK(c, detail)
}

// GetInstructor godoc
// @Summary Public instructor profile
// @Tags courses
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} presenters.InstructorProfile
// @Failure 404 {object} utils.ErrorResponse
// @Router /instructors/{id} [get]
func (cc *CoursesController) GetInstructor(c *fiber.Ctx) error {
	profile, err := cc.Catalog.Instructor(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.OK(c, profile)
}
