package apiv1

import (
	clienthandler "wfm-tools-backend/lib/client"
	"wfm-tools-backend/controllers"
	"wfm-tools-backend/middleware"
	apimodels "wfm-tools-backend/models/api"
	clientapimodels "wfm-tools-backend/models/api/client"

	"github.com/gofiber/fiber/v2"
)

type clientApiController struct {
	controllers.BaseAPIController
}

func InitClientApiRouters(app *fiber.App) {
	controller := clientApiController{}
	app.Route("clients", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ReviewerRequired())
		router.Post("", controller.Create)
		router.Get("", controller.List)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.GetByID)
			idRoute.Put("", controller.Update)
			idRoute.Delete("", controller.Deactivate)
		})
	})
}

// @Summary Create a client
// @Tags Clients
// @Description Create a client
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		clientapimodels.ClientData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/clients [post]
func (c *clientApiController) Create(ctx *fiber.Ctx) error {
	var payload clientapimodels.ClientData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	id, err := clienthandler.Instance.Create(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List clients
// @Tags Clients
// @Description List clients
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	active_only 	query 		bool  false 	"active clients only"
// @Success 200 {object} apimodels.Response{data=[]clientapimodels.ClientView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/clients [get]
func (c *clientApiController) List(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active_only")
	list, err := clienthandler.Instance.List(middleware.GetUserSpace(ctx), activeOnly)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, list)
}

// @Summary Get a client
// @Tags Clients
// @Description Get a client
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"client ID"
// @Success 200 {object} apimodels.Response{data=clientapimodels.ClientView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/clients/{id} [get]
func (c *clientApiController) GetByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := clienthandler.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Update a client
// @Tags Clients
// @Description Update a client
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"client ID"
// @Param	body				body		clientapimodels.ClientData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/clients/{id} [put]
func (c *clientApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	var payload clientapimodels.ClientData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	if err := clienthandler.Instance.Update(middleware.GetUserSpace(ctx), id, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Deactivate a client
// @Tags Clients
// @Description Deactivate a client
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"client ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/clients/{id} [delete]
func (c *clientApiController) Deactivate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err := clienthandler.Instance.Deactivate(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}
