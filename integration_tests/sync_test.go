package integration_tests

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/controllers"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SyncTestSuite struct {
	TestSuite
	service    *service.ZalamaService
	adminToken string
	partner    *models.Partner
}

func (suite *SyncTestSuite) SetupSuite() {
	svc, err := ZalamaTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	token, err := createAdminToken(svc)
	if err != nil {
		log.Fatalf("Error creating test admin: %v", err)
	}
	suite.service = svc
	suite.adminToken = token
	suite.echo = newTestEcho(svc)
}

func (suite *SyncTestSuite) SetupTest() {
	partner, err := createPartner(suite.service, "Guinée Games")
	if err != nil {
		log.Fatalf("Error creating test partner: %v", err)
	}
	suite.partner = partner
}

func (suite *SyncTestSuite) TearDownTest() {
	err := clearTables(suite.service)
	if err != nil {
		fmt.Printf("Error tearing down test %s\n", err.Error())
	}
}

func (suite *SyncTestSuite) sync(body *controllers.SyncRequestBody) *service.SyncResult {
	resp := &controllers.SyncResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/payments/sync-payment-status", body, suite.adminToken), http.StatusOK, resp)
	assert.True(suite.T(), resp.Success)
	return resp.Data
}

func (suite *SyncTestSuite) TestSyncPaymentStatus() {
	a1, err := createAdvance(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	a2, err := createAdvance(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)
	// a2 already has its reimbursement
	_, _, err = suite.service.CreateRemboursement(context.Background(), a2.Transaction.ID, "")
	assert.NoError(suite.T(), err)

	result := suite.sync(nil)
	assert.Equal(suite.T(), 2, result.Total)
	assert.Equal(suite.T(), 2, result.Updated)
	assert.Equal(suite.T(), 0, result.Skipped)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Empty(suite.T(), result.Errors)

	request := models.SalaryAdvanceRequest{}
	err = suite.service.DB.NewSelect().Model(&request).Where("id = ?", a1.Request.ID).Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.DemandeStatutValide, request.Statut)
	assert.Equal(suite.T(), a1.Transaction.NumeroTransaction, request.NumeroReception)
	assert.False(suite.T(), request.DateValidation.IsZero())

	r := models.Remboursement{}
	err = suite.service.DB.NewSelect().Model(&r).Where("transaction_id = ?", a1.Transaction.ID).Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(65), r.FraisService)
	assert.Equal(suite.T(), int64(1000), r.MontantTotalRemboursement)
	assert.Equal(suite.T(), common.RemboursementStatutEnAttente, r.Statut)

	// running it again changes nothing
	result = suite.sync(&controllers.SyncRequestBody{})
	assert.Equal(suite.T(), 2, result.Total)
	assert.Equal(suite.T(), 0, result.Updated)
	assert.Equal(suite.T(), 2, result.Skipped)
	assert.Equal(suite.T(), 0, result.Created)

	count, err := suite.service.DB.NewSelect().Model((*models.Remboursement)(nil)).Count(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}

func (suite *SyncTestSuite) TestSyncSingleRequest() {
	a1, err := createAdvance(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	_, err = createAdvance(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)

	result := suite.sync(&controllers.SyncRequestBody{RequestID: a1.Request.ID})
	assert.Equal(suite.T(), 1, result.Total)
	assert.Equal(suite.T(), 1, result.Updated)
	assert.Equal(suite.T(), 1, result.Created)

	rec := suite.doRequest(http.MethodPost, "/payments/sync-payment-status", map[string]string{"requestId": "42"}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *SyncTestSuite) TestSyncRowErrors() {
	a, err := createAdvance(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	orphan := models.Transaction{
		NumeroTransaction: "TX-ORPHAN",
		Montant:           500,
		Statut:            common.TransactionStatutEffectuee,
		DemandeAvanceID:   a.Request.ID,
	}
	_, err = suite.service.DB.NewInsert().Model(&orphan).Exec(context.Background())
	assert.NoError(suite.T(), err)

	result := suite.sync(nil)
	assert.Equal(suite.T(), 2, result.Total)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 1, result.Updated)
	assert.Equal(suite.T(), 0, result.Skipped)
	assert.Len(suite.T(), result.Errors, 1)
	assert.Equal(suite.T(), orphan.ID, result.Errors[0].TransactionID)

	// the failed transaction left the request alone
	request := models.SalaryAdvanceRequest{}
	err = suite.service.DB.NewSelect().Model(&request).Where("id = ?", a.Request.ID).Scan(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), a.Transaction.NumeroTransaction, request.NumeroReception)
}

func TestSyncTestSuite(t *testing.T) {
	suite.Run(t, new(SyncTestSuite))
}
