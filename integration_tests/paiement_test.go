package integration_tests

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/controllers"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PaiementTestSuite struct {
	TestSuite
	service    *service.ZalamaService
	adminToken string
	partner    *models.Partner
}

func (suite *PaiementTestSuite) SetupSuite() {
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

func (suite *PaiementTestSuite) SetupTest() {
	partner, err := createPartner(suite.service, "Guinée Games")
	if err != nil {
		log.Fatalf("Error creating test partner: %v", err)
	}
	suite.partner = partner
}

func (suite *PaiementTestSuite) TearDownTest() {
	err := clearTables(suite.service)
	if err != nil {
		fmt.Printf("Error tearing down test %s\n", err.Error())
	}
}

func (suite *PaiementTestSuite) TestPayRemboursement() {
	r, err := createRemboursement(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)
	notifier := suite.service.Notifier.(*recordingNotifier)
	sentBefore := notifier.count()

	body := &controllers.PaiementRequestBody{
		RemboursementID:   r.ID,
		MethodePaiement:   common.MethodeMobileMoney,
		NumeroTransaction: "OM-778899",
		NumeroReception:   "REC-1",
		Commentaire:       "payé par Orange Money",
	}
	resp := &controllers.PaiementResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/remboursements/paiement", body, suite.adminToken), http.StatusOK, resp)
	assert.True(suite.T(), resp.Success)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, resp.Data.Statut)
	assert.Equal(suite.T(), common.MethodeMobileMoney, resp.Data.MethodeRemboursement)
	assert.Equal(suite.T(), "OM-778899", resp.Data.NumeroTransactionRemboursement)
	assert.Equal(suite.T(), "REC-1", resp.Data.NumeroReception)
	assert.False(suite.T(), resp.Data.DateRemboursementEffectue.IsZero())
	assert.Equal(suite.T(), "OM-778899", resp.Paiement.NumeroTransaction)

	entries, err := historique(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), common.HistoriqueActionPaiement, entries[0].Action)
	assert.Equal(suite.T(), common.RemboursementStatutEnAttente, entries[0].StatutAvant)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, entries[0].StatutApres)
	assert.Equal(suite.T(), int64(2000), entries[0].MontantAvant)
	assert.NotEmpty(suite.T(), entries[0].UtilisateurID)

	// notifications go out after the response
	assert.Eventually(suite.T(), func() bool {
		count, err := suite.service.DB.NewSelect().
			Model((*models.Notification)(nil)).
			Where("partenaire_id = ?", suite.partner.ID).
			Count(context.Background())
		return err == nil && count == 1 && notifier.count() == sentBefore+1
	}, 5*time.Second, 10*time.Millisecond)

	// paying again must not write anything
	body.NumeroTransaction = "OM-000000"
	suite.checkErrResponse(suite.doRequest(http.MethodPost, "/remboursements/paiement", body, suite.adminToken), http.StatusConflict)
	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "OM-778899", stored.NumeroTransactionRemboursement)
	entries, err = historique(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
}

func (suite *PaiementTestSuite) TestPayRemboursementOverdue() {
	r, err := createRemboursement(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)
	_, err = suite.service.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("statut = ?", common.RemboursementStatutEnRetard).
		Where("id = ?", r.ID).
		Exec(context.Background())
	assert.NoError(suite.T(), err)

	resp := &controllers.PaiementResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/remboursements/paiement", &controllers.PaiementRequestBody{
		RemboursementID:   r.ID,
		MethodePaiement:   common.MethodeVirementBancaire,
		NumeroTransaction: "VIR-42",
	}, suite.adminToken), http.StatusOK, resp)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, resp.Data.Statut)
}

func (suite *PaiementTestSuite) TestPayRemboursementErrors() {
	r, err := createRemboursement(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)

	rec := suite.doRequest(http.MethodPost, "/remboursements/paiement", &controllers.PaiementRequestBody{
		RemboursementID:   uuid.NewString(),
		MethodePaiement:   common.MethodeEspeces,
		NumeroTransaction: "CAISSE-1",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusNotFound)

	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement", &controllers.PaiementRequestBody{
		RemboursementID:   r.ID,
		MethodePaiement:   "BITCOIN",
		NumeroTransaction: "CAISSE-1",
	}, suite.adminToken)
	errResp := suite.checkErrResponse(rec, http.StatusBadRequest)
	assert.Contains(suite.T(), errResp.Error, "methode_paiement")

	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement", &controllers.PaiementRequestBody{
		RemboursementID: r.ID,
		MethodePaiement: common.MethodeEspeces,
	}, suite.adminToken)
	errResp = suite.checkErrResponse(rec, http.StatusBadRequest)
	assert.Contains(suite.T(), errResp.Error, "numero_transaction")

	_, err = suite.service.DB.NewUpdate().
		Model((*models.Remboursement)(nil)).
		Set("statut = ?", common.RemboursementStatutAnnule).
		Where("id = ?", r.ID).
		Exec(context.Background())
	assert.NoError(suite.T(), err)
	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement", &controllers.PaiementRequestBody{
		RemboursementID:   r.ID,
		MethodePaiement:   common.MethodeEspeces,
		NumeroTransaction: "CAISSE-1",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusConflict)
}

func (suite *PaiementTestSuite) TestPayRemboursementConcurrently() {
	r, err := createRemboursement(suite.service, suite.partner, 2000)
	assert.NoError(suite.T(), err)

	var wg sync.WaitGroup
	results := make([]error, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = suite.service.PayRemboursement(context.Background(), r.ID, service.PaymentDetails{
				Methode:           common.MethodeEspeces,
				NumeroTransaction: fmt.Sprintf("CAISSE-%d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(suite.T(), 1, succeeded)
	entries, err := historique(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
}

func (suite *PaiementTestSuite) TestPayLot() {
	other, err := createPartner(suite.service, "Orange Guinée")
	assert.NoError(suite.T(), err)
	r1, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)
	r2, err := createRemboursement(suite.service, other, 3000)
	assert.NoError(suite.T(), err)
	paid, err := createRemboursement(suite.service, suite.partner, 500)
	assert.NoError(suite.T(), err)
	_, err = suite.service.PayRemboursement(context.Background(), paid.ID, service.PaymentDetails{
		Methode:           common.MethodeEspeces,
		NumeroTransaction: "CAISSE-0",
	})
	assert.NoError(suite.T(), err)

	resp := &controllers.PaiementLotResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/remboursements/paiement-lot", &controllers.PaiementLotRequestBody{
		RemboursementIDs:  []string{r1.ID, r2.ID, paid.ID, r1.ID},
		MethodePaiement:   common.MethodeVirementBancaire,
		NumeroTransaction: "VIR-LOT-1",
	}, suite.adminToken), http.StatusOK, resp)
	assert.Equal(suite.T(), 2, resp.Data.NombreRembourses)
	assert.Equal(suite.T(), int64(4000), resp.Data.MontantTotal)
	assert.Len(suite.T(), resp.Data.Remboursements, 2)

	for _, id := range []string{r1.ID, r2.ID} {
		r, err := findRemboursement(suite.service, id)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), common.RemboursementStatutPaye, r.Statut)
		assert.Equal(suite.T(), "VIR-LOT-1", r.NumeroTransactionRemboursement)
		entries, err := historique(suite.service, id)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), common.HistoriqueActionPaiementEnLot, entries[0].Action)
	}
	// the already paid row keeps its first payment
	r, err := findRemboursement(suite.service, paid.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CAISSE-0", r.NumeroTransactionRemboursement)

	// a fully paid batch has nothing left to pay
	rec := suite.doRequest(http.MethodPost, "/remboursements/paiement-lot", &controllers.PaiementLotRequestBody{
		RemboursementIDs:  []string{r1.ID, r2.ID},
		MethodePaiement:   common.MethodeVirementBancaire,
		NumeroTransaction: "VIR-LOT-2",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *PaiementTestSuite) TestPayLotUnknownID() {
	r, err := createRemboursement(suite.service, suite.partner, 1000)
	assert.NoError(suite.T(), err)

	rec := suite.doRequest(http.MethodPost, "/remboursements/paiement-lot", &controllers.PaiementLotRequestBody{
		RemboursementIDs:  []string{r.ID, uuid.NewString()},
		MethodePaiement:   common.MethodeVirementBancaire,
		NumeroTransaction: "VIR-LOT-3",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)

	// nothing was paid
	stored, err := findRemboursement(suite.service, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutEnAttente, stored.Statut)

	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement-lot", &controllers.PaiementLotRequestBody{
		RemboursementIDs:  []string{},
		MethodePaiement:   common.MethodeVirementBancaire,
		NumeroTransaction: "VIR-LOT-4",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *PaiementTestSuite) TestPayPartenaire() {
	other, err := createPartner(suite.service, "Orange Guinée")
	assert.NoError(suite.T(), err)
	for _, montant := range []int64{1000, 2500} {
		_, err := createRemboursement(suite.service, suite.partner, montant)
		assert.NoError(suite.T(), err)
	}
	untouched, err := createRemboursement(suite.service, other, 700)
	assert.NoError(suite.T(), err)

	resp := &controllers.PaiementLotResponseBody{}
	suite.decode(suite.doRequest(http.MethodPost, "/remboursements/paiement-partenaire", &controllers.PaiementPartenaireRequestBody{
		PartenaireID:      suite.partner.ID,
		MethodePaiement:   common.MethodePrelevementSalaire,
		NumeroTransaction: "PREL-2025-03",
	}, suite.adminToken), http.StatusOK, resp)
	assert.Equal(suite.T(), 2, resp.Data.NombreRembourses)
	assert.Equal(suite.T(), int64(3500), resp.Data.MontantTotal)
	assert.Equal(suite.T(), suite.partner.Nom, resp.Data.Partenaire)

	stored, err := findRemboursement(suite.service, untouched.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutEnAttente, stored.Statut)

	rec := suite.doRequest(http.MethodPost, "/remboursements/paiement-partenaire", &controllers.PaiementPartenaireRequestBody{
		PartenaireID:      suite.partner.ID,
		MethodePaiement:   common.MethodePrelevementSalaire,
		NumeroTransaction: "PREL-2025-04",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusBadRequest)

	rec = suite.doRequest(http.MethodPost, "/remboursements/paiement-partenaire", &controllers.PaiementPartenaireRequestBody{
		PartenaireID:      uuid.NewString(),
		MethodePaiement:   common.MethodePrelevementSalaire,
		NumeroTransaction: "PREL-2025-05",
	}, suite.adminToken)
	suite.checkErrResponse(rec, http.StatusNotFound)
}

func (suite *PaiementTestSuite) TestPayPartenaireWithSlowSubscriber() {
	for i := 0; i < 3; i++ {
		_, err := createRemboursement(suite.service, suite.partner, 1000)
		assert.NoError(suite.T(), err)
	}
	// a subscriber that never reads and can hold a single event
	ch := make(chan models.Remboursement, 1)
	subId := suite.service.RemboursementPubSub.Subscribe(common.EventRemboursementStatut, ch)
	defer suite.service.RemboursementPubSub.Unsubscribe(subId, common.EventRemboursementStatut)

	done := make(chan *service.PaymentResult, 1)
	go func() {
		result, err := suite.service.PayPartner(context.Background(), suite.partner.ID, service.PaymentDetails{
			Methode:           common.MethodeVirementBancaire,
			NumeroTransaction: "VIR-2025-03",
		})
		assert.NoError(suite.T(), err)
		done <- result
	}()

	select {
	case result := <-done:
		if assert.NotNil(suite.T(), result) {
			assert.Equal(suite.T(), 3, result.Count)
		}
	case <-time.After(5 * time.Second):
		suite.T().Fatal("payment blocked on a full subscriber")
	}
	assert.Len(suite.T(), ch, 1)
}

func TestPaiementTestSuite(t *testing.T) {
	suite.Run(t, new(PaiementTestSuite))
}
