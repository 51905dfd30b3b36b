package apiv1

import (
	"wfm-tools-backend/controllers"
	spacehandler "wfm-tools-backend/lib/space/handler"
	"wfm-tools-backend/middleware"
	spaceapimodels "wfm-tools-backend/models/api/space"

	"github.com/gofiber/fiber/v2"
)

type orgApiController struct {
	controllers.BaseAPIController
}

func InitOrgApiRouters(app *fiber.App) {
	controller := orgApiController{}
	app.Route("org", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.get)
		router.Put("", middleware.SpaceAdminRequired(), controller.update)
	})
}

// @Summary Get the organization profile
// @Tags Organization
// @Description Get the organization profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=spaceapimodels.SpaceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/org [get]
func (c *orgApiController) get(ctx *fiber.Ctx) error {
	view, err := spacehandler.Instance.GetByID(middleware.GetUserSpace(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Update the organization profile
// @Tags Organization
// @Description Update the organization profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.SpaceData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/org [put]
func (c *orgApiController) update(ctx *fiber.Ctx) error {
	var payload spaceapimodels.SpaceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	if err := spacehandler.Instance.Update(middleware.GetUserSpace(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}
