package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db"
	"github.com/Morymirco/admin.zalama/db/migrations"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/Morymirco/admin.zalama/lib/tokens"
	"github.com/Morymirco/admin.zalama/lib/transport"
	"github.com/Morymirco/admin.zalama/notify"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "s3cret-password"
	testAdminToken    = "static-admin-token"
)

// ZalamaTestServiceInit returns a service backed by its own in-memory sqlite database.
func ZalamaTestServiceInit(gateway lengo.Gateway) (svc *service.ZalamaService, err error) {
	c := &service.Config{
		// one database per suite, shared by the connections of the pool
		DatabaseUri:             fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		AdminToken:              testAdminToken,
		FraisServiceTaux:        decimal.RequireFromString("0.065"),
		RemboursementDelaiJours: 30,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.ZalamaService{
		Config:   c,
		DB:       dbConn,
		Logger:   logger,
		Notifier: &recordingNotifier{},
	}
	if gateway != nil {
		svc.LengoClient = gateway
	}

	svc.RemboursementPubSub = service.NewPubsub()
	return svc, nil
}

// newTestEcho registers every endpoint without the rate limiters.
func newTestEcho(svc *service.ZalamaService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: lib.NewValidator()}
	e.Logger = svc.Logger

	logMw := transport.CreateLoggingMiddleware(svc.Logger)
	secured := e.Group("", tokens.Middleware(svc.Config.JWTSecret, svc.Config.AdminToken), logMw)
	strict := e.Group("", tokens.Middleware(svc.Config.JWTSecret, svc.Config.AdminToken), logMw)
	transport.RegisterEndpoints(svc, e, secured, strict, logMw)
	return e
}

func clearTable(svc *service.ZalamaService, tableName string) error {
	_, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

func clearTables(svc *service.ZalamaService) error {
	for _, table := range []string{"historique_remboursements", "remboursements", "notifications", "transactions", "salary_advance_requests", "employees", "partners"} {
		if err := clearTable(svc, table); err != nil {
			return err
		}
	}
	return nil
}

func createAdminToken(svc *service.ZalamaService) (string, error) {
	ctx := context.Background()
	if _, err := svc.CreateAdminUser(ctx, testAdminEmail, "Admin", testAdminPassword, "admin"); err != nil {
		return "", err
	}
	return svc.GenerateToken(ctx, testAdminEmail, testAdminPassword)
}

// advance is one disbursed advance: partner, employee, request and its transaction.
type advance struct {
	Partner     models.Partner
	Employee    models.Employee
	Request     models.SalaryAdvanceRequest
	Transaction models.Transaction
}

func createPartner(svc *service.ZalamaService, nom string) (*models.Partner, error) {
	partner := &models.Partner{
		Nom:       nom,
		Email:     "rh@example.com",
		Telephone: "+224620000000",
		Actif:     true,
	}
	_, err := svc.DB.NewInsert().Model(partner).Exec(context.Background())
	return partner, err
}

// createAdvance seeds a completed advance of montant GNF for partner.
func createAdvance(svc *service.ZalamaService, partner *models.Partner, montant int64) (*advance, error) {
	ctx := context.Background()
	a := &advance{Partner: *partner}
	a.Employee = models.Employee{
		PartenaireID: partner.ID,
		Nom:          "Camara",
		Prenom:       "Aissatou",
		Telephone:    "+224621000000",
		Actif:        true,
	}
	if _, err := svc.DB.NewInsert().Model(&a.Employee).Exec(ctx); err != nil {
		return nil, err
	}
	a.Request = models.SalaryAdvanceRequest{
		EmployeID:      a.Employee.ID,
		PartenaireID:   partner.ID,
		MontantDemande: montant,
		Motif:          "Frais médicaux",
		Statut:         "En attente",
	}
	if _, err := svc.DB.NewInsert().Model(&a.Request).Exec(ctx); err != nil {
		return nil, err
	}
	a.Transaction = models.Transaction{
		NumeroTransaction: "TX-" + uuid.NewString()[:8],
		Montant:           montant,
		Statut:            common.TransactionStatutEffectuee,
		DemandeAvanceID:   a.Request.ID,
		EmployeID:         a.Employee.ID,
		PartenaireID:      partner.ID,
		DateTransaction:   time.Now().UTC().Truncate(time.Second),
	}
	if _, err := svc.DB.NewInsert().Model(&a.Transaction).Exec(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// createRemboursement seeds an advance and its pending reimbursement.
func createRemboursement(svc *service.ZalamaService, partner *models.Partner, montant int64) (*models.Remboursement, error) {
	a, err := createAdvance(svc, partner, montant)
	if err != nil {
		return nil, err
	}
	r, _, err := svc.CreateRemboursement(context.Background(), a.Transaction.ID, "")
	return r, err
}

func findRemboursement(svc *service.ZalamaService, id string) (*models.Remboursement, error) {
	return svc.FindRemboursement(context.Background(), id)
}

func historique(svc *service.ZalamaService, id string) ([]models.HistoriqueRemboursement, error) {
	return svc.GetHistorique(context.Background(), id)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (n *recordingNotifier) Send(ctx context.Context, to notify.Recipient, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeGateway struct {
	payID    string
	err      error
	requests []lengo.PaymentRequest
}

func (g *fakeGateway) InitiatePayment(ctx context.Context, req lengo.PaymentRequest) (*lengo.PaymentResponse, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &lengo.PaymentResponse{
		Status:     "Success",
		PayID:      g.payID,
		PaymentUrl: "/checkout/" + g.payID,
	}, nil
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) doRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decode(rec *httptest.ResponseRecorder, code int, v interface{}) {
	assert.Equal(suite.T(), code, rec.Code, rec.Body.String())
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(v))
}

func (suite *TestSuite) checkErrResponse(rec *httptest.ResponseRecorder, code int) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	suite.decode(rec, code, errorResponse)
	assert.False(suite.T(), errorResponse.Success)
	return errorResponse
}
