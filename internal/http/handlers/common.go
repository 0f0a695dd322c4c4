package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/http/middleware"
)

// requestMSISDN resolves the phone number a request acts for. A
// verified session wins; otherwise the caller-supplied fallback is
// normalized and used, which only matters when anonymous access is on.
func requestMSISDN(c *gin.Context, fallback, countryPrefix string) string {
	if msisdn := c.GetString(middleware.CtxMSISDN); msisdn != "" {
		return msisdn
	}
	if fallback == "" {
		return ""
	}
	return domain.NormalizeMSISDN(fallback, countryPrefix)
}

// requestBearer returns the upstream token of the request's session,
// empty for guests.
func requestBearer(c *gin.Context) string {
	return c.GetString(middleware.CtxBearer)
}
