package controllers

import (
	"net/http"
	"time"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// PaiementController : reimbursement payments, manual or through Lengo Pay
type PaiementController struct {
	svc *service.ZalamaService
}

func NewPaiementController(svc *service.ZalamaService) *PaiementController {
	return &PaiementController{svc: svc}
}

type PaiementRequestBody struct {
	RemboursementID   string `json:"remboursement_id" validate:"required,uuid"`
	MethodePaiement   string `json:"methode_paiement" validate:"required,oneof=VIREMENT_BANCAIRE MOBILE_MONEY ESPECES CHEQUE PRELEVEMENT_SALAIRE COMPENSATION_AVANCE"`
	NumeroTransaction string `json:"numero_transaction" validate:"required"`
	NumeroReception   string `json:"numero_reception"`
	ReferencePaiement string `json:"reference_paiement"`
	Commentaire       string `json:"commentaire"`
}

type PaiementLotRequestBody struct {
	RemboursementIDs  []string `json:"remboursement_ids" validate:"required,min=1,dive,uuid"`
	MethodePaiement   string   `json:"methode_paiement" validate:"required,oneof=VIREMENT_BANCAIRE MOBILE_MONEY ESPECES CHEQUE PRELEVEMENT_SALAIRE COMPENSATION_AVANCE"`
	NumeroTransaction string   `json:"numero_transaction" validate:"required"`
	Commentaire       string   `json:"commentaire"`
}

type PaiementPartenaireRequestBody struct {
	PartenaireID      string `json:"partenaire_id" validate:"required,uuid"`
	MethodePaiement   string `json:"methode_paiement" validate:"required,oneof=VIREMENT_BANCAIRE MOBILE_MONEY ESPECES CHEQUE PRELEVEMENT_SALAIRE COMPENSATION_AVANCE"`
	NumeroTransaction string `json:"numero_transaction" validate:"required"`
	Commentaire       string `json:"commentaire"`
}

type PaiementLengoRequestBody struct {
	RemboursementIDs []string `json:"remboursement_ids" validate:"required_without=PartenaireID,omitempty,min=1,dive,uuid"`
	PartenaireID     string   `json:"partenaire_id" validate:"required_without=RemboursementIDs,omitempty,uuid"`
	// Account is the payer's mobile money number
	Account string `json:"account"`
}

type PaiementInfo struct {
	MethodePaiement   string    `json:"methode_paiement"`
	NumeroTransaction string    `json:"numero_transaction"`
	NumeroReception   string    `json:"numero_reception,omitempty"`
	ReferencePaiement string    `json:"reference_paiement,omitempty"`
	DatePaiement      time.Time `json:"date_paiement"`
}

type PaiementResponseBody struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Data     *models.Remboursement `json:"data"`
	Paiement PaiementInfo          `json:"paiement"`
}

type PaiementLotData struct {
	NombreRembourses int                    `json:"nombre_rembourses"`
	MontantTotal     int64                  `json:"montant_total"`
	Partenaire       string                 `json:"partenaire,omitempty"`
	Remboursements   []models.Remboursement `json:"remboursements"`
	Paiement         PaiementInfo           `json:"paiement"`
}

type PaiementLotResponseBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    PaiementLotData `json:"data"`
}

type PaiementLengoResponseBody struct {
	Success bool                        `json:"success"`
	Message string                      `json:"message"`
	Data    *service.LengoPaymentResult `json:"data"`
}

// PayRemboursement godoc
// @Summary      Pay one reimbursement
// @Description  Moves a pending or overdue reimbursement to PAYE
// @Accept       json
// @Produce      json
// @Tags         Paiement
// @Param        PaiementRequestBody  body      PaiementRequestBody  True  "Payment"
// @Success      200                  {object}  PaiementResponseBody
// @Failure      400                  {object}  responses.ErrorResponse
// @Failure      404                  {object}  responses.ErrorResponse
// @Failure      409                  {object}  responses.ErrorResponse
// @Failure      500                  {object}  responses.ErrorResponse
// @Router       /remboursements/paiement [post]
// @Security     OAuth2Password
func (controller *PaiementController) PayRemboursement(c echo.Context) error {
	var body PaiementRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load paiement request body: admin_id:%v error: %v", c.Get("AdminID"), err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	r, err := controller.svc.PayRemboursement(c.Request().Context(), body.RemboursementID, service.PaymentDetails{
		Methode:           body.MethodePaiement,
		NumeroTransaction: body.NumeroTransaction,
		NumeroReception:   body.NumeroReception,
		ReferencePaiement: body.ReferencePaiement,
		Commentaire:       body.Commentaire,
		AdminID:           adminID(c),
	})
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &PaiementResponseBody{
		Success: true,
		Message: "Remboursement payé avec succès",
		Data:    r,
		Paiement: PaiementInfo{
			MethodePaiement:   body.MethodePaiement,
			NumeroTransaction: body.NumeroTransaction,
			NumeroReception:   body.NumeroReception,
			ReferencePaiement: body.ReferencePaiement,
			DatePaiement:      r.DateRemboursementEffectue.Time,
		},
	})
}

// PayRemboursementsLot godoc
// @Summary      Pay a batch of reimbursements
// @Description  Rejected as a whole when an id does not exist
// @Accept       json
// @Produce      json
// @Tags         Paiement
// @Param        PaiementLotRequestBody  body      PaiementLotRequestBody  True  "Batch payment"
// @Success      200                     {object}  PaiementLotResponseBody
// @Failure      400                     {object}  responses.ErrorResponse
// @Failure      409                     {object}  responses.ErrorResponse
// @Failure      500                     {object}  responses.ErrorResponse
// @Router       /remboursements/paiement-lot [post]
// @Security     OAuth2Password
func (controller *PaiementController) PayRemboursementsLot(c echo.Context) error {
	var body PaiementLotRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load paiement-lot request body: admin_id:%v error: %v", c.Get("AdminID"), err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	result, err := controller.svc.PayRemboursementsBatch(c.Request().Context(), body.RemboursementIDs, service.PaymentDetails{
		Methode:           body.MethodePaiement,
		NumeroTransaction: body.NumeroTransaction,
		Commentaire:       body.Commentaire,
		AdminID:           adminID(c),
	})
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &PaiementLotResponseBody{
		Success: true,
		Message: "Remboursements payés avec succès",
		Data:    lotData(result, body.MethodePaiement, body.NumeroTransaction),
	})
}

// PayPartenaire godoc
// @Summary      Pay every open reimbursement of a partner
// @Accept       json
// @Produce      json
// @Tags         Paiement
// @Param        PaiementPartenaireRequestBody  body      PaiementPartenaireRequestBody  True  "Partner payment"
// @Success      200                            {object}  PaiementLotResponseBody
// @Failure      400                            {object}  responses.ErrorResponse
// @Failure      404                            {object}  responses.ErrorResponse
// @Failure      409                            {object}  responses.ErrorResponse
// @Failure      500                            {object}  responses.ErrorResponse
// @Router       /remboursements/paiement-partenaire [post]
// @Security     OAuth2Password
func (controller *PaiementController) PayPartenaire(c echo.Context) error {
	var body PaiementPartenaireRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load paiement-partenaire request body: admin_id:%v error: %v", c.Get("AdminID"), err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	result, err := controller.svc.PayPartner(c.Request().Context(), body.PartenaireID, service.PaymentDetails{
		Methode:           body.MethodePaiement,
		NumeroTransaction: body.NumeroTransaction,
		Commentaire:       body.Commentaire,
		AdminID:           adminID(c),
	})
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &PaiementLotResponseBody{
		Success: true,
		Message: "Remboursements du partenaire payés avec succès",
		Data:    lotData(result, body.MethodePaiement, body.NumeroTransaction),
	})
}

// PayLengo godoc
// @Summary      Start a Lengo Pay payment
// @Description  Requests a mobile money payment for the selected reimbursements, settled by the gateway callback
// @Accept       json
// @Produce      json
// @Tags         Paiement
// @Param        PaiementLengoRequestBody  body      PaiementLengoRequestBody  True  "Selection"
// @Success      200                       {object}  PaiementLengoResponseBody
// @Failure      400                       {object}  responses.ErrorResponse
// @Failure      404                       {object}  responses.ErrorResponse
// @Failure      500                       {object}  responses.ErrorResponse
// @Router       /remboursements/paiement-lengo [post]
// @Security     OAuth2Password
func (controller *PaiementController) PayLengo(c echo.Context) error {
	var body PaiementLengoRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	result, err := controller.svc.InitierPaiementLengo(c.Request().Context(), service.Selector{
		IDs:          body.RemboursementIDs,
		PartenaireID: body.PartenaireID,
	}, body.Account)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &PaiementLengoResponseBody{
		Success: true,
		Message: "Paiement Lengo Pay initié",
		Data:    result,
	})
}

func lotData(result *service.PaymentResult, methode, numeroTransaction string) PaiementLotData {
	data := PaiementLotData{
		NombreRembourses: result.Count,
		MontantTotal:     result.MontantTotal,
		Remboursements:   result.Remboursements,
		Paiement: PaiementInfo{
			MethodePaiement:   methode,
			NumeroTransaction: numeroTransaction,
			DatePaiement:      result.PaidAt,
		},
	}
	if result.Partenaire != nil {
		data.Partenaire = result.Partenaire.Nom
	}
	return data
}
