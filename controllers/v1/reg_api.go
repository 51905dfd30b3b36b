package apiv1

import (
	"wfm-tools-backend/controllers"
	spacehandler "wfm-tools-backend/lib/space/handler"
	apimodels "wfm-tools-backend/models/api"
	spaceapimodels "wfm-tools-backend/models/api/space"

	"github.com/gofiber/fiber/v2"
)

type regApiController struct {
	controllers.BaseAPIController
}

func InitRegApiRouters(app *fiber.App) {
	controller := regApiController{}
	app.Route("reg", func(router fiber.Router) {
		router.Post("", controller.register)
	})
}

// @Summary Register an organization with its first admin
// @Tags Registration
// @Description Register an organization with its first admin
// @Param	body				body		spaceapimodels.RegistrationData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/reg [post]
func (c *regApiController) register(ctx *fiber.Ctx) error {
	var payload spaceapimodels.RegistrationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	spaceID, err := spacehandler.Instance.Register(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(spaceID))
}
