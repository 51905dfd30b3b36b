package apiv1

import (
	"wfm-tools-backend/controllers"
	invoicehandler "wfm-tools-backend/lib/invoice"
	"wfm-tools-backend/middleware"
	apimodels "wfm-tools-backend/models/api"
	invoiceapimodels "wfm-tools-backend/models/api/invoice"

	"github.com/gofiber/fiber/v2"
)

type invoiceApiController struct {
	controllers.BaseAPIController
}

func InitInvoiceApiRouters(app *fiber.App) {
	controller := invoiceApiController{}
	app.Route("invoices", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ReviewerRequired())
		router.Post("", controller.Create)
		router.Post("list", controller.List)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.GetByID)
			idRoute.Put("", controller.Update)
			idRoute.Delete("", controller.Delete)
			idRoute.Post("send", controller.Send)
			idRoute.Post("mark-paid", controller.MarkPaid)
			idRoute.Get("pdf", controller.Pdf)
		})
	})
}

// @Summary Create an invoice
// @Tags Invoices
// @Description Create an invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		invoiceapimodels.InvoiceData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices [post]
func (c *invoiceApiController) Create(ctx *fiber.Ctx) error {
	var payload invoiceapimodels.InvoiceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	id, err := invoicehandler.Instance.Create(middleware.GetUserSpace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List invoices
// @Tags Invoices
// @Description List invoices
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		invoiceapimodels.InvFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]invoiceapimodels.InvoiceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/list [post]
func (c *invoiceApiController) List(ctx *fiber.Ctx) error {
	var filter invoiceapimodels.InvFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := invoicehandler.Instance.List(middleware.GetUserSpace(ctx), filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendList(ctx, list, rowCount)
}

// @Summary Get an invoice
// @Tags Invoices
// @Description Get an invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Success 200 {object} apimodels.Response{data=invoiceapimodels.InvoiceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id} [get]
func (c *invoiceApiController) GetByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := invoicehandler.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Update a draft invoice
// @Tags Invoices
// @Description Update a draft invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Param	body				body		invoiceapimodels.InvoiceData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id} [put]
func (c *invoiceApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	var payload invoiceapimodels.InvoiceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	if err := invoicehandler.Instance.Update(middleware.GetUserSpace(ctx), id, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Delete a draft invoice
// @Tags Invoices
// @Description Delete a draft invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id} [delete]
func (c *invoiceApiController) Delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err := invoicehandler.Instance.Delete(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Send an invoice to the client
// @Tags Invoices
// @Description Send an invoice to the client
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id}/send [post]
func (c *invoiceApiController) Send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err := invoicehandler.Instance.Send(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Mark an invoice as paid
// @Tags Invoices
// @Description Mark an invoice as paid
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id}/mark-paid [post]
func (c *invoiceApiController) MarkPaid(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err := invoicehandler.Instance.MarkPaid(middleware.GetUserSpace(ctx), id); err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Download an invoice as PDF
// @Tags Invoices
// @Description Download an invoice as PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"invoice ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/invoices/{id}/pdf [get]
func (c *invoiceApiController) Pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	pdfFile, fileName, err := invoicehandler.Instance.Pdf(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(pdfFile)
}
