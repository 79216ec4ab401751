package transport

import (
	"github.com/Morymirco/admin.zalama/controllers"
	"github.com/Morymirco/admin.zalama/lib/security"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/labstack/echo/v4"
)

// RegisterEndpoints wires every controller. secured requires an admin JWT or the admin
// token, securedWithStrictRateLimit additionally applies the payment rate limit.
func RegisterEndpoints(svc *service.ZalamaService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, logMw echo.MiddlewareFunc) {
	remboursementCtrl := controllers.NewRemboursementController(svc)
	paiementCtrl := controllers.NewPaiementController(svc)
	callbackCtrl := controllers.NewLengoCallbackController(svc)

	e.GET("/health", controllers.NewHealthController().Check)
	e.POST("/auth", controllers.NewAuthController(svc).Auth, logMw)
	e.GET("/remboursements/methodes-paiement", remboursementCtrl.MethodesPaiement, CreateCacheClient().Middleware())

	// the gateway cannot hold a JWT, its requests are authenticated by signature
	signatureMw := security.SignatureMiddleware(svc.Config.LengoCallbackSecret, security.LengoSignatureHeader)
	e.GET("/remboursements/lengo-callback", callbackCtrl.Probe)
	e.POST("/remboursements/lengo-callback", callbackCtrl.Callback, signatureMw, logMw)

	secured.GET("/remboursements", remboursementCtrl.ListRemboursements)
	secured.POST("/remboursements", remboursementCtrl.CreateRemboursement)
	secured.GET("/remboursements/partenaire/:partenaireId", remboursementCtrl.ListPartnerRemboursements)
	secured.GET("/remboursements/:id/historique", remboursementCtrl.GetHistorique)
	secured.POST("/remboursements/marquer-retard", remboursementCtrl.MarquerEnRetard)
	secured.POST("/payments/sync-payment-status", controllers.NewSyncController(svc).SyncPaymentStatus)

	securedWithStrictRateLimit.POST("/remboursements/paiement", paiementCtrl.PayRemboursement)
	securedWithStrictRateLimit.POST("/remboursements/paiement-lot", paiementCtrl.PayRemboursementsLot)
	securedWithStrictRateLimit.POST("/remboursements/paiement-partenaire", paiementCtrl.PayPartenaire)
	securedWithStrictRateLimit.POST("/remboursements/paiement-lengo", paiementCtrl.PayLengo)
}
