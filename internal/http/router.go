package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/internal/http/handlers"
	"github.com/saruni-spec/pin-registration/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface. Every /api route runs the
// session middleware so handlers can read the caller's identity, then
// the policy middleware decides whether that identity may proceed.
func BuildRouter(
	vh *handlers.VerificationHandlers,
	dh *handlers.DraftHandlers,
	ih *handlers.InvoiceHandlers,
	rh *handlers.RegistrationHandlers,
	ch *handlers.DeclarationHandlers,
	sh *handlers.SupportHandlers,
	ph *handlers.PolicyHandlers,
	sess *middleware.SessionMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api", sess.Resolve(), cb.Enforce())

	api.POST("/otp/send", vh.SendOTP)
	api.POST("/otp/validate", vh.ValidateOTP)
	api.POST("/logout", vh.Logout)

	api.POST("/drafts/:workflow", dh.SaveDraft)
	api.GET("/drafts/:workflow", dh.GetDraft)
	api.DELETE("/drafts/:workflow", dh.ClearDraft)
	api.GET("/drafts/:workflow/totals", dh.DraftTotals)

	api.POST("/invoices/:workflow/submit", ih.SubmitInvoice)
	api.POST("/credit-notes/submit", ih.SubmitCreditNote)
	api.GET("/invoices", ih.ListInvoices)

	api.POST("/registration/lookup-id", rh.LookupID)
	api.POST("/registration/lookup-pin", rh.LookupPIN)
	api.POST("/registration/initiate", rh.InitiateSession)
	api.POST("/registration/submit", rh.SubmitRegistration)

	api.POST("/declaration/items", ch.SaveItem)
	api.POST("/declaration/assemble", ch.DrainItems)
	api.POST("/declaration/validate-cash", ch.ValidateCash)

	api.GET("/support/link", sh.Link)

	adm := r.Group("/admin", sess.Resolve(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
