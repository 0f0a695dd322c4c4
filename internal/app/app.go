package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/internal/config"
	httpx "github.com/saruni-spec/pin-registration/internal/http"
	"github.com/saruni-spec/pin-registration/internal/http/handlers"
	"github.com/saruni-spec/pin-registration/internal/http/middleware"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/notifications"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	vh := handlers.NewVerificationHandlers(c.VerificationSvc, c.SessionRepo, cfg.SessionCookieName, cfg.CountryPrefix, cfg.Production)
	dh := handlers.NewDraftHandlers(c.DraftSvc, cfg.CountryPrefix)
	ih := handlers.NewInvoiceHandlers(c.InvoiceSvc, cfg.CountryPrefix)
	rh := handlers.NewRegistrationHandlers(c.RegistrationSvc, cfg.CountryPrefix)
	ch := handlers.NewDeclarationHandlers(c.DeclarationSvc, cfg.CountryPrefix)
	sh := handlers.NewSupportHandlers(func(text string) string {
		return notifications.DeepLink(cfg.SupportNumber, text)
	})
	ph := handlers.NewPolicyHandlers(c.PolicySvc)

	sessMW := middleware.NewSessionMW(c.TokenSvc, c.SessionRepo, cfg.SessionCookieName)
	casbinMW := middleware.NewCasbinMW(c.PolicySvc, cfg.AllowAnonymous)

	r := httpx.BuildRouter(vh, dh, ih, rh, ch, sh, ph, sessMW, casbinMW)

	seedPolicies(c)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role policies on an empty policy
// table. Guests may verify their phone and run lookups; everything else
// needs a verified session.
func seedPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	c.Casbin.E.AddPolicy(middleware.RoleGuest, "/api/otp/*", "POST")
	c.Casbin.E.AddPolicy(middleware.RoleGuest, "/api/registration/lookup-id", "POST")
	c.Casbin.E.AddPolicy(middleware.RoleGuest, "/api/registration/lookup-pin", "POST")
	c.Casbin.E.AddPolicy(middleware.RoleGuest, "/api/support/link", "GET")
	c.Casbin.E.AddPolicy(middleware.RoleVerified, "/api/*", "(GET|POST|PUT|DELETE)")
	c.Casbin.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	_ = c.Casbin.E.SavePolicy()
	log.Println("casbin: seeded default policies")
}
