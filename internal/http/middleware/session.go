package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
)

// Roles assigned to requests by the session middleware.
const (
	RoleGuest    = "role_guest"
	RoleVerified = "role_verified"
)

// Context keys set by the session middleware.
const (
	CtxRole      = "role"
	CtxMSISDN    = "msisdn"
	CtxBearer    = "bearer"
	CtxSessionID = "session_id"
)

// SessionMW resolves the session cookie into a request identity. It
// never rejects a request itself: a missing, malformed or expired
// cookie just leaves the caller as role_guest and the policy layer
// decides what a guest may reach.
type SessionMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
	cookieName  string
}

// NewSessionMW creates new session middleware
func NewSessionMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, cookieName string) *SessionMW {
	return &SessionMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
		cookieName:  cookieName,
	}
}

// Resolve returns the session resolution middleware function
func (mw *SessionMW) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRole, RoleGuest)

		token, err := c.Cookie(mw.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := mw.tokenSvc.ParseSessionToken(token)
		if err != nil {
			c.Next()
			return
		}

		session, err := mw.sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxRole, RoleVerified)
		c.Set(CtxMSISDN, session.MSISDN)
		c.Set(CtxBearer, session.Token)
		c.Set(CtxSessionID, session.ID)
		c.Next()
	}
}
