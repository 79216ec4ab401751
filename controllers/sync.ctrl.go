package controllers

import (
	"net/http"

	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// SyncController : advance request / transaction reconciliation
type SyncController struct {
	svc *service.ZalamaService
}

func NewSyncController(svc *service.ZalamaService) *SyncController {
	return &SyncController{svc: svc}
}

type SyncRequestBody struct {
	RequestID string `json:"requestId" validate:"omitempty,uuid"`
}

type SyncResponseBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *service.SyncResult `json:"data"`
}

// SyncPaymentStatus godoc
// @Summary      Synchronise payment status
// @Description  Validates the advance requests of completed transactions and ensures their reimbursement exists
// @Accept       json
// @Produce      json
// @Tags         Sync
// @Param        SyncRequestBody  body      SyncRequestBody  False  "Optional request scope"
// @Success      200              {object}  SyncResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /payments/sync-payment-status [post]
// @Security     OAuth2Password
func (controller *SyncController) SyncPaymentStatus(c echo.Context) error {
	var body SyncRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	result, err := controller.svc.SyncPaymentStatus(c.Request().Context(), body.RequestID)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &SyncResponseBody{
		Success: true,
		Message: "Synchronisation terminée",
		Data:    result,
	})
}
