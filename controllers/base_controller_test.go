package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"wfm-tools-backend/models"
	apimodels "wfm-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func sendErrorStatus(t *testing.T, err error) (int, apimodels.Response) {
	t.Helper()
	controller := BaseAPIController{}
	app := fiber.New()
	app.Get("/t", func(ctx *fiber.Ctx) error {
		return controller.SendError(ctx, err)
	})
	resp, testErr := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()
	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var body apimodels.Response
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSendError(t *testing.T) {
	t.Run(`validation error is 400 with the violation list`, func(t *testing.T) {
		status, body := sendErrorStatus(t, models.NewValidationError("description is required", "at least one day must have hours"))
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "fail", body.Status)
		violations, ok := body.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, violations, 2)
	})

	t.Run(`duplicate period is 409`, func(t *testing.T) {
		status, body := sendErrorStatus(t, &models.DuplicatePeriodError{EmployeeID: "emp-1", WeekEnding: "2024-03-10"})
		require.Equal(t, fiber.StatusConflict, status)
		require.Contains(t, body.Message, "2024-03-10")
	})

	t.Run(`domain error is 400 with its own message`, func(t *testing.T) {
		status, body := sendErrorStatus(t, models.NewDomainError("only draft timesheets can be deleted"))
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "only draft timesheets can be deleted", body.Message)
	})

	t.Run(`wrapped domain error keeps its status`, func(t *testing.T) {
		status, _ := sendErrorStatus(t, errors.Wrap(models.NewDomainError("invoice not found"), "get invoice"))
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run(`internal error is 500 with a generic message`, func(t *testing.T) {
		status, body := sendErrorStatus(t, errors.Wrap(errors.New("pq: connection refused"), "failed to save timesheet"))
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Equal(t, "fail", body.Status)
		require.NotContains(t, body.Message, "pq:")
		require.NotContains(t, body.Message, "failed to save timesheet")
		require.True(t, strings.Contains(body.Message, "try again"))
	})
}
