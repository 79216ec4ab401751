package controllers

import (
	"net/http"

	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// LengoCallbackController : Lengo Pay payment notifications
type LengoCallbackController struct {
	svc *service.ZalamaService
}

func NewLengoCallbackController(svc *service.ZalamaService) *LengoCallbackController {
	return &LengoCallbackController{svc: svc}
}

type LengoCallbackResponseBody struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *service.CallbackResult `json:"data"`
}

type ProbeResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Probe godoc
// @Summary      Callback liveness probe
// @Produce      json
// @Tags         Lengo
// @Success      200  {object}  ProbeResponseBody
// @Router       /remboursements/lengo-callback [get]
func (controller *LengoCallbackController) Probe(c echo.Context) error {
	return c.JSON(http.StatusOK, &ProbeResponseBody{
		Success: true,
		Message: "Endpoint de callback Lengo Pay actif",
	})
}

// Callback godoc
// @Summary      Lengo Pay callback
// @Description  Applies the gateway status to the reimbursements linked to pay_id. Signed with X-Lengo-Signature when a secret is configured.
// @Accept       json
// @Produce      json
// @Tags         Lengo
// @Param        Callback  body      lengo.Callback  True  "Gateway notification"
// @Success      200       {object}  LengoCallbackResponseBody
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      401       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /remboursements/lengo-callback [post]
func (controller *LengoCallbackController) Callback(c echo.Context) error {
	var body lengo.Callback
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load lengo callback body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	result, err := controller.svc.ReconcileLengoCallback(c.Request().Context(), &body)
	if err != nil {
		return renderServiceError(c, err)
	}

	message := "Callback traité"
	if result.AlreadyProcessed {
		message = "Paiement déjà traité"
	}
	return c.JSON(http.StatusOK, &LengoCallbackResponseBody{
		Success: true,
		Message: message,
		Data:    result,
	})
}
