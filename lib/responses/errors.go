package responses

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	Code           int    `json:"code"`
	HttpStatusCode int    `json:"-"`
}

// WithMessage returns a copy of the response carrying a more specific message.
func (e ErrorResponse) WithMessage(format string, args ...interface{}) ErrorResponse {
	e.Error = fmt.Sprintf(format, args...)
	return e
}

var BadAuthError = ErrorResponse{
	Success:        false,
	Code:           1,
	Error:          "bad auth",
	HttpStatusCode: http.StatusUnauthorized,
}

var BadArgumentsError = ErrorResponse{
	Success:        false,
	Code:           2,
	Error:          "Bad arguments",
	HttpStatusCode: http.StatusBadRequest,
}

var InvalidSignatureError = ErrorResponse{
	Success:        false,
	Code:           1,
	Error:          "invalid signature",
	HttpStatusCode: http.StatusUnauthorized,
}

var TransactionNotFoundError = ErrorResponse{
	Success:        false,
	Code:           3,
	Error:          "Transaction non trouvée ou non effectuée",
	HttpStatusCode: http.StatusNotFound,
}

var RemboursementNotFoundError = ErrorResponse{
	Success:        false,
	Code:           3,
	Error:          "Remboursement non trouvé",
	HttpStatusCode: http.StatusNotFound,
}

var PartnerNotFoundError = ErrorResponse{
	Success:        false,
	Code:           3,
	Error:          "Partenaire non trouvé",
	HttpStatusCode: http.StatusNotFound,
}

var UnknownPayIDError = ErrorResponse{
	Success:        false,
	Code:           3,
	Error:          "Aucun remboursement trouvé pour ce pay_id",
	HttpStatusCode: http.StatusNotFound,
}

var RemboursementExistsError = ErrorResponse{
	Success:        false,
	Code:           4,
	Error:          "Un remboursement existe déjà pour cette transaction",
	HttpStatusCode: http.StatusConflict,
}

var NotPayableError = ErrorResponse{
	Success:        false,
	Code:           4,
	Error:          "Ce remboursement n'est pas en attente de paiement",
	HttpStatusCode: http.StatusConflict,
}

var AlreadyProcessedError = ErrorResponse{
	Success:        false,
	Code:           4,
	Error:          "Ce remboursement a déjà été traité",
	HttpStatusCode: http.StatusConflict,
}

var UnknownRemboursementsError = ErrorResponse{
	Success:        false,
	Code:           2,
	Error:          "Certains remboursements n'existent pas",
	HttpStatusCode: http.StatusBadRequest,
}

var NothingToPayError = ErrorResponse{
	Success:        false,
	Code:           2,
	Error:          "Aucun remboursement en attente à payer",
	HttpStatusCode: http.StatusBadRequest,
}

var PermissionDeniedError = ErrorResponse{
	Success:        false,
	Code:           5,
	Error:          "Permission refusée par la base de données",
	HttpStatusCode: http.StatusInternalServerError,
}

var GatewayError = ErrorResponse{
	Success:        false,
	Code:           5,
	Error:          "La passerelle de paiement est indisponible",
	HttpStatusCode: http.StatusInternalServerError,
}

var GeneralServerError = ErrorResponse{
	Success:        false,
	Code:           6,
	Error:          "Something went wrong. Please try again later",
	HttpStatusCode: http.StatusInternalServerError,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("AdminID", c.Get("AdminID"))
			hub.CaptureException(err)
		})
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		c.JSON(GeneralServerError.HttpStatusCode, GeneralServerError)
		return
	}
	switch msg := he.Message.(type) {
	case ErrorResponse:
		c.JSON(he.Code, msg)
	case string:
		c.JSON(he.Code, ErrorResponse{Success: false, Code: he.Code, Error: msg, HttpStatusCode: he.Code})
	default:
		c.JSON(he.Code, ErrorResponse{Success: false, Code: he.Code, Error: http.StatusText(he.Code), HttpStatusCode: he.Code})
	}
}

func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	if he.Code == http.StatusUnauthorized || he.Code == http.StatusNotFound {
		return false
	}
	if resp, ok := he.Message.(ErrorResponse); ok && resp.Code == BadAuthError.Code {
		return false
	}
	return true
}
