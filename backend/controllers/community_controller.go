package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CommunityController serves the community feed and its actions.
type CommunityController struct {
	Community *presenters.CommunityPresenter
	Logger    *utils.Logger
}

// NewCommunityController creates a CommunityController.
func NewCommunityController(p *presenters.Presenters, logger *utils.Logger) *CommunityController {
	return &CommunityController{Community: p.Community, Logger: logger}
}

// GetFeed godoc
// @Summary Community feed
// @Tags community
// @Produce json
// @Param categoryId query string false "Post category"
// @Param tag query string false "Tag"
// @Param search query string false "Search title and content"
// @Param sort query string false "latest|popular|discussed"
// @Success 200 {object} presenters.Feed
// @Router /community/posts [get]
func (cc *CommunityController) GetFeed(c *fiber.Ctx) error {
	var q presenters.FeedQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, cc.Logger, err)
	}
	feed, err := cc.Community.Feed(c.UserContext(), q)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Paginate(c, feed, feed.TotalCount, feed.Page, feed.PageSize)
}

// GetPost godoc
// @Summary Post with its comment tree
// @Tags community
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} presenters.PostDetail
// @Failure 404 {object} utils.ErrorResponse
// @Router /community/posts/{id} [get]
func (cc *CommunityController) GetPost(c *fiber.Ctx) error {
	post, err := cc.Community.Post(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.OK(c, post)
}

// CreatePost godoc
// @Summary Start a discussion
// @Tags community
// @Accept json
// @Produce json
// @Param request body presenters.CreatePostRequest true "Post"
// @Success 202 {object} presenters.ActionResult
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /community/posts [post]
func (cc *CommunityController) CreatePost(c *fiber.Ctx) error {
	var req presenters.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, cc.Logger, err)
	}
	res, err := cc.Community.CreatePost(c.UserContext(), middleware.CurrentUserID(c), req)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}

// LikePost godoc
// @Summary Like a post
// @Tags community
// @Produce json
// @Param id path string true "Post ID"
// @Success 202 {object} presenters.ActionResult
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /community/posts/{id}/like [post]
func (cc *CommunityController) LikePost(c *fiber.Ctx) error {
	res, err := cc.Community.LikePost(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}

// AddComment godoc
// @Summary Comment on a post or reply to a comment
// @Tags community
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body presenters.AddCommentRequest true "Comment"
// @Success 202 {object} presenters.ActionResult
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /community/posts/{id}/comments [post]
func (cc *CommunityController) AddComment(c *fiber.Ctx) error {
	var req presenters.AddCommentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, cc.Logger, err)
	}
	res, err := cc.Community.AddComment(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Accepted(c, stubMessage, res)
}
