package apiv1

import (
	"io"
	"time"
	"wfm-tools-backend/controllers"
	filestorage "wfm-tools-backend/lib/file-storage"
	timesheethandler "wfm-tools-backend/lib/timesheet"
	"wfm-tools-backend/middleware"
	"wfm-tools-backend/models"
	apimodels "wfm-tools-backend/models/api"
	timesheetapimodels "wfm-tools-backend/models/api/timesheet"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type timesheetApiController struct {
	controllers.BaseAPIController
}

func InitTimesheetApiRouters(app *fiber.App) {
	controller := timesheetApiController{}
	app.Route("timesheets", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.Create)
		router.Post("list", controller.List)
		router.Get("summary", controller.MonthlySummary)
		router.Get("dashboard", controller.Dashboard)
		router.Get("export", middleware.ReviewerRequired(), controller.Export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.GetByID)
			idRoute.Put("", controller.Update)
			idRoute.Delete("", controller.Delete)
			idRoute.Post("submit", controller.Submit)
			idRoute.Post("approve", middleware.ReviewerRequired(), controller.Approve)
			idRoute.Post("reject", middleware.ReviewerRequired(), controller.Reject)
			idRoute.Post("documents", controller.UploadDocument)
			idRoute.Get("documents", controller.ListDocuments)
		})
		router.Get("documents/:id", controller.DownloadDocument)
	})
}

// @Summary Create a timesheet
// @Tags Timesheets
// @Description Create a timesheet, as a draft or submitted right away
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	submit 			query 		bool  false 	"submit immediately"
// @Param	body				body		timesheetapimodels.TimesheetData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/timesheets [post]
func (c *timesheetApiController) Create(ctx *fiber.Ctx) error {
	var payload timesheetapimodels.TimesheetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	submit := ctx.QueryBool("submit")
	id, err := timesheethandler.Instance.Create(middleware.GetUserSpace(ctx), middleware.GetUserID(ctx), payload, submit)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List timesheets
// @Tags Timesheets
// @Description List timesheets. Employees only see their own records
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		timesheetapimodels.TsFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]timesheetapimodels.TimesheetView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/list [post]
func (c *timesheetApiController) List(ctx *fiber.Ctx) error {
	var filter timesheetapimodels.TsFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return c.SendError(ctx, err)
	}
	if !middleware.GetSpaceRole(ctx).CanReview() {
		filter.EmployeeID = middleware.GetUserID(ctx)
	}
	list, rowCount, err := timesheethandler.Instance.List(middleware.GetUserSpace(ctx), filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendList(ctx, list, rowCount)
}

// @Summary Get a timesheet
// @Tags Timesheets
// @Description Get a timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Success 200 {object} apimodels.Response{data=timesheetapimodels.TimesheetView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/{id} [get]
func (c *timesheetApiController) GetByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := timesheethandler.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if view.EmployeeID != middleware.GetUserID(ctx) && !middleware.GetSpaceRole(ctx).CanReview() {
		return ctx.SendStatus(fiber.StatusForbidden)
	}
	return c.SendData(ctx, view)
}

// @Summary Update a timesheet
// @Tags Timesheets
// @Description Update a draft or rejected timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Param	body				body		timesheetapimodels.TimesheetData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/timesheets/{id} [put]
func (c *timesheetApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	var payload timesheetapimodels.TimesheetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	err = timesheethandler.Instance.Update(middleware.GetUserSpace(ctx), middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Delete a draft timesheet
// @Tags Timesheets
// @Description Delete a draft timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/{id} [delete]
func (c *timesheetApiController) Delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	err = timesheethandler.Instance.Delete(middleware.GetUserSpace(ctx), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Submit a timesheet for review
// @Tags Timesheets
// @Description Submit a timesheet for review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/{id}/submit [post]
func (c *timesheetApiController) Submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	err = timesheethandler.Instance.Submit(middleware.GetUserSpace(ctx), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Approve a submitted timesheet
// @Tags Timesheets
// @Description Approve a submitted timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/timesheets/{id}/approve [post]
func (c *timesheetApiController) Approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	err = timesheethandler.Instance.Approve(middleware.GetUserSpace(ctx), id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Reject a submitted timesheet
// @Tags Timesheets
// @Description Reject a submitted timesheet, the reason is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Param	body				body		timesheetapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/timesheets/{id}/reject [post]
func (c *timesheetApiController) Reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	var payload timesheetapimodels.RejectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, err)
	}
	err = timesheethandler.Instance.Reject(middleware.GetUserSpace(ctx), id, middleware.GetUserID(ctx), payload.Reason)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendOk(ctx)
}

// @Summary Monthly summary
// @Tags Timesheets
// @Description Per-week buckets for one month with expected hours
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	month 			query 		string  false 	"month, format 2006-01, defaults to the current month"
// @Success 200 {object} apimodels.Response{data=timesheetapimodels.MonthlySummaryView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/summary [get]
func (c *timesheetApiController) MonthlySummary(ctx *fiber.Ctx) error {
	month, err := parseMonth(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := timesheethandler.Instance.MonthlySummary(middleware.GetUserSpace(ctx), middleware.GetUserID(ctx), month)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Monthly dashboard
// @Tags Timesheets
// @Description Aggregated hours and counters for one month
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	month 			query 		string  false 	"month, format 2006-01, defaults to the current month"
// @Success 200 {object} apimodels.Response{data=timesheetapimodels.DashboardView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/dashboard [get]
func (c *timesheetApiController) Dashboard(ctx *fiber.Ctx) error {
	month, err := parseMonth(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	employeeID := middleware.GetUserID(ctx)
	if middleware.GetSpaceRole(ctx).CanReview() && ctx.Query("employee_id") != "" {
		employeeID = ctx.Query("employee_id")
	}
	view, err := timesheethandler.Instance.Dashboard(middleware.GetUserSpace(ctx), employeeID, month)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, view)
}

// @Summary Export timesheets to xlsx
// @Tags Timesheets
// @Description Export one month of timesheets to a spreadsheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	month 			query 		string  false 	"month, format 2006-01, defaults to the current month"
// @Param 	employee_id 	query 		string  false 	"limit to one employee"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/timesheets/export [get]
func (c *timesheetApiController) Export(ctx *fiber.Ctx) error {
	month, err := parseMonth(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	file, fileName, err := timesheethandler.Instance.Export(middleware.GetUserSpace(ctx), ctx.Query("employee_id"), month)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(file)
}

// @Summary Attach a document to a timesheet
// @Tags Timesheets
// @Description Attach a supporting document to a timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Param 	file 			formData 	file  true 	"document"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/{id}/documents [post]
func (c *timesheetApiController) UploadDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	// ownership check
	view, err := timesheethandler.Instance.GetByID(middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if view.EmployeeID != middleware.GetUserID(ctx) && !middleware.GetSpaceRole(ctx).CanReview() {
		return ctx.SendStatus(fiber.StatusForbidden)
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the file"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the file"))
	}
	info := dbmodels.UploadFileInfo{
		SpaceID:     middleware.GetUserSpace(ctx),
		TimesheetID: id,
		FileName:    fileHeader.Filename,
		FileType:    dbmodels.TimesheetDocument,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
	}
	fileID, err := filestorage.Instance.UploadTimesheetDoc(ctx.Context(), info, body)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(fileID))
}

// @Summary List timesheet documents
// @Tags Timesheets
// @Description List supporting documents of a timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"timesheet ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/{id}/documents [get]
func (c *timesheetApiController) ListDocuments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, err := filestorage.Instance.GetTimesheetDocList(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendData(ctx, list)
}

// @Summary Download a timesheet document
// @Tags Timesheets
// @Description Download a supporting document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"file ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @router /api/v1/timesheets/documents/{id} [get]
func (c *timesheetApiController) DownloadDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	body, rec, err := filestorage.Instance.GetFile(ctx.Context(), middleware.GetUserSpace(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if rec.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, rec.ContentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Send(body)
}

func parseMonth(ctx *fiber.Ctx) (time.Time, error) {
	value := ctx.Query("month")
	if value == "" {
		return time.Now().UTC(), nil
	}
	month, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, models.NewDomainError("month must be in 2006-01 format")
	}
	return month, nil
}
