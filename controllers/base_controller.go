package controllers

import (
	"wfm-tools-backend/middleware"
	"wfm-tools-backend/models"
	apimodels "wfm-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return models.NewDomainError("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("space_id", middleware.GetUserSpace(ctx)).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path())
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", models.NewDomainError("record id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", models.NewDomainError("record id must be a valid uuid")
	}
	return id, nil
}

// SendError maps domain errors to http statuses: broken input gets 400 with
// the full violation list, a period conflict gets 409, anything else is a 500
// with a generic message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.Response{
			Status:  "fail",
			Message: validationErr.Error(),
			Data:    validationErr.Violations,
		})
	}
	var duplicateErr *models.DuplicatePeriodError
	if errors.As(err, &duplicateErr) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(duplicateErr.Error()))
	}
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(domainErr.Error()))
	}
	c.GetLogger(ctx).WithError(err).Error("request failed")
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(apimodels.NewError("something went wrong, please try again later"))
}

func (c *BaseAPIController) SendData(ctx *fiber.Ctx, data interface{}) error {
	return ctx.JSON(apimodels.NewResponse(data))
}

func (c *BaseAPIController) SendList(ctx *fiber.Ctx, data interface{}, rowCount int64) error {
	return ctx.JSON(apimodels.NewScrollerResponse(data, rowCount))
}

func (c *BaseAPIController) SendOk(ctx *fiber.Ctx) error {
	return ctx.JSON(apimodels.Response{Status: "success"})
}
