package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/controllers"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib/security"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const lengoCallbackSecret = "lengo-callback-secret"

type LengoCallbackTestSuite struct {
	TestSuite
	service    *service.ZalamaService
	gateway    *fakeGateway
	adminToken string
	partner    *models.Partner
}

func (suite *LengoCallbackTestSuite) SetupSuite() {
	suite.gateway = &fakeGateway{}
	svc, err := ZalamaTestServiceInit(suite.gateway)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	svc.Config.LengoCallbackSecret = lengoCallbackSecret
	token, err := createAdminToken(svc)
	if err != nil {
		log.Fatalf("Error creating test admin: %v", err)
	}
	suite.service = svc
	suite.adminToken = token
	suite.echo = newTestEcho(svc)
}

func (suite *LengoCallbackTestSuite) SetupTest() {
	partner, err := createPartner(suite.service, "Société Minière de Boké")
	if err != nil {
		log.Fatalf("Error creating test partner: %v", err)
	}
	suite.partner = partner
	suite.gateway.err = nil
	suite.gateway.requests = nil
}

func (suite *LengoCallbackTestSuite) TearDownTest() {
	err := clearTables(suite.service)
	if err != nil {
		fmt.Printf("Error tearing down test %s\n", err.Error())
	}
}

func (suite *LengoCallbackTestSuite) postCallback(cb interface{}, secret string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	body, err := json.Marshal(cb)
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/remboursements/lengo-callback", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set(security.LengoSignatureHeader, security.Sign(secret, body))
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

// initiate starts a Lengo Pay payment for ids and returns its pay_id.
func (suite *LengoCallbackTestSuite) initiate(payID string, ids ...string) *service.LengoPaymentResult {
	suite.gateway.payID = payID
	resp := &controllers.PaiementLengoResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/remboursements/paiement-lengo", &controllers.PaiementLengoRequestBody{
		RemboursementIDs: ids,
		Account:          "620000000",
	}, suite.adminToken), http.StatusOK, resp)
	return resp.Data
}

func (suite *LengoCallbackTestSuite) TestProbe() {
	resp := &controllers.ProbeResponseBody{}
	suite.decode(suite.doRequest(http.MethodGet, "/remboursements/lengo-callback", nil, ""), http.StatusOK, resp)
	assert.True(suite.T(), resp.Success)
}

func (suite *LengoCallbackTestSuite) TestInitiateLengoPayment() {
	r1, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	r2, err := createRemboursement(suite.service, suite.partner, 2500)
	assert.NoError(suite.T(), err)

	result := suite.initiate("LP-INIT", r1.ID, r2.ID)
	assert.Equal(suite.T(), "LP-INIT", result.PayID)
	assert.Equal(suite.T(), 2, result.Count)
	assert.Equal(suite.T(), int64(3500), result.MontantTotal)
	assert.Len(suite.T(), suite.gateway.requests, 1)
	assert.Equal(suite.T(), int64(3500), suite.gateway.requests[0].Amount)
	assert.Equal(suite.T(), "620000000", suite.gateway.requests[0].Account)

	for _, id := range []string{r1.ID, r2.ID} {
		r, err := findRemboursement(suite.service, id)
		assert.NoError(suite.T(), err)
		// the status only moves when the gateway calls back
		assert.Equal(suite.T(), common.RemboursementStatutEnAttente, r.Statut)
		assert.Equal(suite.T(), "LP-INIT", r.NumeroTransactionRemboursement)
		assert.Equal(suite.T(), common.MethodeMobileMoney, r.MethodeRemboursement)
	}
}

func (suite *LengoCallbackTestSuite) TestInitiateLengoPaymentGatewayDown() {
	r, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	suite.gateway.err = errors.New("connection refused")

	rec := suite.doRequest(http.MethodPost, "/remboursements/paiement-lengo", &controllers.PaiementLengoRequestBody{
		RemboursementIDs: []string{r.ID},
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusInternalServerError)

	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), stored.NumeroTransactionRemboursement)

	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement-lengo", &controllers.PaiementLengoRequestBody{}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *LengoCallbackTestSuite) TestCallbackSuccess() {
	r1, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	r2, err := createRemboursement(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)
	suite.initiate("LP-SUCCESS", r1.ID, r2.ID)

	cb := &lengo.Callback{PayID: "LP-SUCCESS", Status: "SUCCESS", Amount: "3000", Message: "Transaction réussie", Client: "224620000000"}
	resp := &controllers.LengoCallbackResponseBody{}
	suite.decode(suite.postCallback(cb, lengoCallbackSecret), http.StatusOK, resp)
	assert.True(suite.T(), resp.Success)
	assert.False(suite.T(), resp.Data.AlreadyProcessed)
	assert.Equal(suite.T(), 2, resp.Data.Updated)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, resp.Data.Statut)

	for _, id := range []string{r1.ID, r2.ID} {
		r, err := findRemboursement(suite.service, id)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), common.RemboursementStatutPaye, r.Statut)
		assert.Equal(suite.T(), "224620000000", r.NumeroReception)
		assert.False(suite.T(), r.DateRemboursementEffectue.IsZero())
		assert.Contains(suite.T(), r.CommentairePartenaire, "Transaction réussie")

		entries, err := historique(suite.service, id)
		assert.NoError(suite.T(), err)
		assert.Len(suite.T(), entries, 1)
		assert.Equal(suite.T(), common.HistoriqueActionCallbackLengo, entries[0].Action)
		assert.Equal(suite.T(), common.RemboursementStatutPaye, entries[0].StatutApres)
	}

	// replays and late failures leave paid rows alone
	for _, status := range []string{"SUCCESS", "FAILED"} {
		resp = &controllers.LengoCallbackResponseBody{}
		suite.decode(suite.postCallback(&lengo.Callback{PayID: "LP-SUCCESS", Status: status}, lengoCallbackSecret), http.StatusOK, resp)
		assert.True(suite.T(), resp.Data.AlreadyProcessed)
		assert.Equal(suite.T(), "Paiement déjà traité", resp.Message)
	}
	r, err := findRemboursement(suite.service, r1.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, r.Statut)
	entries, err := historique(suite.service, r1.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
}

func (suite *LengoCallbackTestSuite) TestCallbackStatusMapping() {
	tests := []struct {
		status string
		statut string
	}{
		{status: "FAILED", statut: common.RemboursementStatutAnnule},
		{status: "cancelled", statut: common.RemboursementStatutAnnule},
		{status: "PENDING", statut: common.RemboursementStatutEnAttente},
		{status: "SOMETHING_NEW", statut: common.RemboursementStatutEnAttente},
	}
	for i, tt := range tests {
		r, err := createRemboursement(suite.service, suite.partner, 1000)
		assert.NoError(suite.T(), err)
		payID := fmt.Sprintf("LP-MAP-%d", i)
		suite.initiate(payID, r.ID)

		resp := &controllers.LengoCallbackResponseBody{}
		suite.decode(suite.postCallback(&lengo.Callback{PayID: payID, Status: tt.status}, lengoCallbackSecret), http.StatusOK, resp)
		assert.Equal(suite.T(), tt.statut, resp.Data.Statut, tt.status)

		stored, err := findRemboursement(suite.service, r.ID)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), tt.statut, stored.Statut, tt.status)
		assert.NotEmpty(suite.T(), stored.CommentairePartenaire)
		if tt.status == "SOMETHING_NEW" {
			// unknown statuses are kept verbatim
			assert.Contains(suite.T(), stored.CommentairePartenaire, "SOMETHING_NEW")
		}
	}
}

func (suite *LengoCallbackTestSuite) TestCallbackPendingKeepsOverdue() {
	r, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	suite.initiate("LP-LATE", r.ID)
	_, err = suite.service.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("statut = ?", common.RemboursementStatutEnRetard).
		Where("id = ?", r.ID).
		Exec(context.Background())
	assert.NoError(suite.T(), err)

	for _, status := range []string{"PENDING", "SOMETHING_NEW"} {
		resp := &controllers.LengoCallbackResponseBody{}
		suite.decode(suite.postCallback(&lengo.Callback{PayID: "LP-LATE", Status: status}, lengoCallbackSecret), http.StatusOK, resp)

		stored, err := findRemboursement(suite.service, r.ID)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), common.RemboursementStatutEnRetard, stored.Statut, status)
		assert.NotEmpty(suite.T(), stored.CommentairePartenaire)
	}
	entries, err := historique(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), entries)

	// a success still pays it
	resp := &controllers.LengoCallbackResponseBody{}
	suite.decode(suite.postCallback(&lengo.Callback{PayID: "LP-LATE", Status: "SUCCESS"}, lengoCallbackSecret), http.StatusOK, resp)
	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, stored.Statut)
}

func (suite *LengoCallbackTestSuite) TestCallbackErrors() {
	r, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	suite.initiate("LP-ERR", r.ID)

	rec := suite.postCallback(&lengo.Callback{PayID: "LP-UNKNOWN", Status: "SUCCESS"}, lengoCallbackSecret)
	suite.checkErrResponse(rec, http.StatusNotFound)

	rec = suite.postCallback(map[string]string{"pay_id": "LP-ERR"}, lengoCallbackSecret)
	suite.checkErrResponse(rec, http.StatusBadRequest)

	rec = suite.postCallback(&lengo.Callback{PayID: "LP-ERR", Status: "SUCCESS"}, "")
	suite.checkErrResponse(rec, http.StatusUnauthorized)

	rec = suite.postCallback(&lengo.Callback{PayID: "LP-ERR", Status: "SUCCESS"}, "not-the-secret")
	suite.checkErrResponse(rec, http.StatusUnauthorized)

	// rejected callbacks changed nothing
	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutEnAttente, stored.Statut)
}

func (suite *LengoCallbackTestSuite) TestCallbackFromBroker() {
	r, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	suite.initiate("LP-AMQP", r.ID)

	err = suite.service.HandleLengoCallback(context.Background(), &lengo.Callback{PayID: "LP-AMQP", Status: "SUCCESS"})
	assert.NoError(suite.T(), err)
	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, stored.Statut)
	// without a Client the pay_id is the receipt number
	assert.Equal(suite.T(), "LP-AMQP", stored.NumeroReception)

	err = suite.service.HandleLengoCallback(context.Background(), &lengo.Callback{PayID: "LP-NOPE", Status: "SUCCESS"})
	assert.ErrorIs(suite.T(), err, service.ErrUnknownPayID)
}

func TestLengoCallbackTestSuite(t *testing.T) {
	suite.Run(t, new(LengoCallbackTestSuite))
}
