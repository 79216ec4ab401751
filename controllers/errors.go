package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Morymirco/admin.zalama/lib"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// serviceErrors maps the business sentinels to their response.
var serviceErrors = []struct {
	err  error
	resp responses.ErrorResponse
}{
	{service.ErrTransactionNotFound, responses.TransactionNotFoundError},
	{service.ErrRemboursementNotFound, responses.RemboursementNotFoundError},
	{service.ErrPartnerNotFound, responses.PartnerNotFoundError},
	{service.ErrUnknownPayID, responses.UnknownPayIDError},
	{service.ErrRemboursementExists, responses.RemboursementExistsError},
	{service.ErrNotPayable, responses.NotPayableError},
	{service.ErrAlreadyProcessed, responses.AlreadyProcessedError},
	{service.ErrUnknownRemboursements, responses.UnknownRemboursementsError},
	{service.ErrNothingToPay, responses.NothingToPayError},
	{service.ErrInvalidMethode, responses.BadArgumentsError.WithMessage("methode_paiement invalide")},
	{service.ErrInvalidCallback, responses.BadArgumentsError.WithMessage("pay_id et status sont requis")},
}

// renderServiceError writes the client error matching err. Anything unknown goes to the
// echo error handler, which logs it and answers with a generic 500.
func renderServiceError(c echo.Context, err error) error {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			return c.JSON(se.resp.HttpStatusCode, se.resp)
		}
	}
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusInternalServerError, responses.PermissionDeniedError).SetInternal(err)
	case errors.Is(err, service.ErrGatewayUnavailable):
		return echo.NewHTTPError(http.StatusInternalServerError, responses.GatewayError).SetInternal(err)
	}
	return err
}

// badArguments answers 400 naming the invalid fields when there are any.
func badArguments(c echo.Context, err error) error {
	resp := responses.BadArgumentsError
	if fields := lib.InvalidFields(err); len(fields) > 0 {
		resp = resp.WithMessage("Champs invalides: %s", strings.Join(fields, ", "))
	}
	return c.JSON(http.StatusBadRequest, resp)
}

func adminID(c echo.Context) string {
	id, _ := c.Get("AdminID").(string)
	return id
}
