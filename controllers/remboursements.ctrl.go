package controllers

import (
	"net/http"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// RemboursementController : reimbursement listing, creation and history
type RemboursementController struct {
	svc *service.ZalamaService
}

func NewRemboursementController(svc *service.ZalamaService) *RemboursementController {
	return &RemboursementController{svc: svc}
}

type ListRemboursementsQuery struct {
	PartenaireID string `query:"partenaire_id" validate:"omitempty,uuid"`
	Statut       string `query:"statut" validate:"omitempty,oneof=EN_ATTENTE PAYE ANNULE EN_RETARD"`
	Limit        int    `query:"limit" validate:"gte=0"`
	Offset       int    `query:"offset" validate:"gte=0"`
}

type ListRemboursementsResponseBody struct {
	Success bool                   `json:"success"`
	Data    []models.Remboursement `json:"data"`
	Count   int                    `json:"count"`
}

type CreateRemboursementRequestBody struct {
	TransactionID    string `json:"transaction_id" validate:"required,uuid"`
	CommentaireAdmin string `json:"commentaire_admin"`
}

type CreateRemboursementResponseBody struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *models.Remboursement `json:"data"`
	Frais   *service.Frais        `json:"frais"`
}

type PartnerRemboursementsQuery struct {
	PartenaireID string `param:"partenaireId" validate:"required,uuid"`
	Statut       string `query:"statut" validate:"omitempty,oneof=EN_ATTENTE PAYE ANNULE EN_RETARD"`
	EmployeID    string `query:"employe_id" validate:"omitempty,uuid"`
	DateDebut    string `query:"date_debut" validate:"omitempty,datetime=2006-01-02"`
	DateFin      string `query:"date_fin" validate:"omitempty,datetime=2006-01-02"`
	Limit        int    `query:"limit" validate:"gte=0"`
	Offset       int    `query:"offset" validate:"gte=0"`
}

type PartnerRemboursementsResponseBody struct {
	Success      bool                              `json:"success"`
	Data         []service.RemboursementAvecRetard `json:"data"`
	Count        int                               `json:"count"`
	Statistiques *service.PartnerStats             `json:"statistiques"`
}

type RemboursementParams struct {
	ID string `param:"id" validate:"required,uuid"`
}

type HistoriqueResponseBody struct {
	Success bool                             `json:"success"`
	Data    []models.HistoriqueRemboursement `json:"data"`
}

type MethodesPaiementResponseBody struct {
	Success bool     `json:"success"`
	Methods []string `json:"methodes_paiement"`
	Statuts []string `json:"statuts"`
}

type MarquerEnRetardResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ListRemboursements godoc
// @Summary      List reimbursements
// @Description  Newest first, optionally filtered by partner and status
// @Produce      json
// @Tags         Remboursement
// @Param        partenaire_id  query     string  false  "Partner id"
// @Param        statut         query     string  false  "Status"
// @Param        limit          query     int     false  "Page size (default 50, max 500)"
// @Param        offset         query     int     false  "Offset"
// @Success      200            {object}  ListRemboursementsResponseBody
// @Failure      400            {object}  responses.ErrorResponse
// @Failure      500            {object}  responses.ErrorResponse
// @Router       /remboursements [get]
// @Security     OAuth2Password
func (controller *RemboursementController) ListRemboursements(c echo.Context) error {
	var query ListRemboursementsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&query); err != nil {
		return badArguments(c, err)
	}

	rows, count, err := controller.svc.ListRemboursements(c.Request().Context(), service.RemboursementFilter{
		PartenaireID: query.PartenaireID,
		Statut:       query.Statut,
		Pagination:   service.Pagination{Limit: query.Limit, Offset: query.Offset},
	})
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &ListRemboursementsResponseBody{
		Success: true,
		Data:    rows,
		Count:   count,
	})
}

// CreateRemboursement godoc
// @Summary      Create a reimbursement
// @Description  Creates the reimbursement owed for a completed transaction
// @Accept       json
// @Produce      json
// @Tags         Remboursement
// @Param        CreateRemboursementRequestBody  body      CreateRemboursementRequestBody  True  "Transaction"
// @Success      200                             {object}  CreateRemboursementResponseBody
// @Failure      400                             {object}  responses.ErrorResponse
// @Failure      404                             {object}  responses.ErrorResponse
// @Failure      409                             {object}  responses.ErrorResponse
// @Failure      500                             {object}  responses.ErrorResponse
// @Router       /remboursements [post]
// @Security     OAuth2Password
func (controller *RemboursementController) CreateRemboursement(c echo.Context) error {
	var body CreateRemboursementRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create remboursement request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return badArguments(c, err)
	}

	r, frais, err := controller.svc.CreateRemboursement(c.Request().Context(), body.TransactionID, body.CommentaireAdmin)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &CreateRemboursementResponseBody{
		Success: true,
		Message: "Remboursement créé avec succès",
		Data:    r,
		Frais:   frais,
	})
}

// ListPartnerRemboursements godoc
// @Summary      List a partner's reimbursements
// @Description  Filtered list with days overdue and statistics over every reimbursement of the partner
// @Produce      json
// @Tags         Remboursement
// @Param        partenaireId  path      string  true   "Partner id"
// @Param        statut        query     string  false  "Status"
// @Param        employe_id    query     string  false  "Employee id"
// @Param        date_debut    query     string  false  "From (YYYY-MM-DD)"
// @Param        date_fin      query     string  false  "To, included (YYYY-MM-DD)"
// @Param        limit         query     int     false  "Page size"
// @Param        offset        query     int     false  "Offset"
// @Success      200           {object}  PartnerRemboursementsResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /remboursements/partenaire/{partenaireId} [get]
// @Security     OAuth2Password
func (controller *RemboursementController) ListPartnerRemboursements(c echo.Context) error {
	var query PartnerRemboursementsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&query); err != nil {
		return badArguments(c, err)
	}

	filter := service.PartnerRemboursementFilter{
		PartenaireID: query.PartenaireID,
		Statut:       query.Statut,
		EmployeID:    query.EmployeID,
		Pagination:   service.Pagination{Limit: query.Limit, Offset: query.Offset},
	}
	// formats were checked by the validator
	if query.DateDebut != "" {
		d, _ := time.Parse(lib.DateLayout, query.DateDebut)
		filter.DateDebut = &d
	}
	if query.DateFin != "" {
		d, _ := time.Parse(lib.DateLayout, query.DateFin)
		filter.DateFin = &d
	}

	rows, count, stats, err := controller.svc.ListPartnerRemboursements(c.Request().Context(), filter)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &PartnerRemboursementsResponseBody{
		Success:      true,
		Data:         rows,
		Count:        count,
		Statistiques: stats,
	})
}

// GetHistorique godoc
// @Summary      Reimbursement history
// @Description  Audit trail of a reimbursement, newest first
// @Produce      json
// @Tags         Remboursement
// @Param        id   path      string  true  "Reimbursement id"
// @Success      200  {object}  HistoriqueResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /remboursements/{id}/historique [get]
// @Security     OAuth2Password
func (controller *RemboursementController) GetHistorique(c echo.Context) error {
	var params RemboursementParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&params); err != nil {
		return badArguments(c, err)
	}

	entries, err := controller.svc.GetHistorique(c.Request().Context(), params.ID)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &HistoriqueResponseBody{
		Success: true,
		Data:    entries,
	})
}

// MethodesPaiement godoc
// @Summary      Reference lists
// @Description  Accepted payment methods and reimbursement statuses
// @Produce      json
// @Tags         Remboursement
// @Success      200  {object}  MethodesPaiementResponseBody
// @Router       /remboursements/methodes-paiement [get]
func (controller *RemboursementController) MethodesPaiement(c echo.Context) error {
	return c.JSON(http.StatusOK, &MethodesPaiementResponseBody{
		Success: true,
		Methods: common.MethodesPaiement,
		Statuts: common.RemboursementStatuts,
	})
}

// MarquerEnRetard godoc
// @Summary      Overdue sweep
// @Description  Moves pending reimbursements past their deadline to EN_RETARD
// @Produce      json
// @Tags         Remboursement
// @Success      200  {object}  MarquerEnRetardResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /remboursements/marquer-retard [post]
// @Security     OAuth2Password
func (controller *RemboursementController) MarquerEnRetard(c echo.Context) error {
	count, err := controller.svc.MarquerEnRetard(c.Request().Context(), time.Now())
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(http.StatusOK, &MarquerEnRetardResponseBody{
		Success: true,
		Message: "Remboursements en retard marqués",
		Count:   count,
	})
}
