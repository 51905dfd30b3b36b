package apiv1

import (
	"wfm-tools-backend/controllers"
	spaceusershander "wfm-tools-backend/lib/space/users/hander"
	"wfm-tools-backend/middleware"
	apimodels "wfm-tools-backend/models/api"
	spaceapimodels "wfm-tools-backend/models/api/space"

	"github.com/gofiber/fiber/v2"
)

type spaceUserController struct {
	controllers.BaseAPIController
}

func InitSpaceUserRouters(app *fiber.App) {
	controller := spaceUserController{}
	app.Route("users", func(usersRootRoute fiber.Router) {
		usersRootRoute.Use(middleware.AuthorizationRequired())
		usersRootRoute.Get("", controller.ListUsers)
		usersRootRoute.Use(middleware.SpaceAdminRequired())
		usersRootRoute.Post("", controller.CreateUser)
		usersRootRoute.Route(":id", func(usersIDRoute fiber.Router) {
			usersIDRoute.Get("", controller.GetUserByID)
			usersIDRoute.Put("", controller.UpdateUser)
			usersIDRoute.Delete("", controller.DeactivateUser)
		})
	})
}

// @Summary Create an employee
// @Tags Space users
// @Description Create an employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.SpaceUserData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/users [post]
func (c *spaceUserController) CreateUser(ctx *fiber.Ctx) error {
	var payload spaceapimodels.SpaceUserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	id, err := spaceusershander.Instance.Create(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List employees
// @Tags Space users
// @Description List employees
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]spaceapimodels.SpaceUser}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/users [get]
func (c *spaceUserController) ListUsers(ctx *fiber.Ctx) error {
	list, err := spaceusershander.Instance.List(middleware.GetUserSpace(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, list)
}

// @Summary Get an employee
// @Tags Space users
// @Description Get an employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Success 200 {object} apimodels.Response{data=spaceapimodels.SpaceUser}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/users/{id} [get]
func (c *spaceUserController) GetUserByID(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := spaceusershander.Instance.GetByID(middleware.GetUserSpace(ctx), userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Update an employee
// @Tags Space users
// @Description Update an employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Param	body				body		spaceapimodels.SpaceUserData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/users/{id} [put]
func (c *spaceUserController) UpdateUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	var payload spaceapimodels.SpaceUserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	if err := spaceusershander.Instance.Update(middleware.GetUserSpace(ctx), userID, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Deactivate an employee
// @Tags Space users
// @Description Deactivate an employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/users/{id} [delete]
func (c *spaceUserController) DeactivateUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err := spaceusershander.Instance.Deactivate(middleware.GetUserSpace(ctx), userID); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}
