package controllers

import (
	"errors"

	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const stubMessage = "Accepted, not persisted"

var (
	errBadQuery = errors.New("Invalid query parameters")
	errBadJSON  = errors.New("Cannot parse JSON")
)

// respondError maps presenter errors onto the JSON error envelope.
func respondError(c *fiber.Ctx, logger *utils.Logger, err error) error {
	var notFound *presenters.NotFoundError
	var invalid *presenters.ValidationError
	switch {
	case errors.Is(err, errBadQuery), errors.Is(err, errBadJSON):
		return utils.BadRequest(c, err.Error())
	case errors.As(err, &invalid):
		return utils.ValidationError(c, invalid.Fields)
	case errors.As(err, &notFound):
		return utils.NotFound(c, notFound.Error())
	case errors.Is(err, presenters.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, presenters.ErrInvalidCredentials):
		return utils.Unauthorized(c, err.Error())
	default:
		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return utils.InternalServerError(c, "Internal server error")
	}
}

func parseQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return errBadQuery
	}
	return nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errBadJSON
	}
	return nil
}
