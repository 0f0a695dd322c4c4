package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/http/middleware"
)

// VerificationHandlers handles OTP send/validate requests and owns the
// session cookie lifecycle.
type VerificationHandlers struct {
	verificationSvc domain.VerificationService
	sessionRepo     domain.SessionRepository
	cookieName      string
	countryPrefix   string
	secureCookie    bool
}

// NewVerificationHandlers creates new verification handlers
func NewVerificationHandlers(verificationSvc domain.VerificationService, sessionRepo domain.SessionRepository, cookieName, countryPrefix string, secureCookie bool) *VerificationHandlers {
	return &VerificationHandlers{
		verificationSvc: verificationSvc,
		sessionRepo:     sessionRepo,
		cookieName:      cookieName,
		countryPrefix:   countryPrefix,
		secureCookie:    secureCookie,
	}
}

// SendOTPRequest represents an OTP send request
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ValidateOTPRequest represents an OTP validation request
type ValidateOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// SendOTP handles OTP generation for a phone number
func (h *VerificationHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := domain.NormalizeMSISDN(req.Phone, h.countryPrefix)
	result := h.verificationSvc.SendOTP(c.Request.Context(), msisdn)
	if !result.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": result.Message},
	})
}

// ValidateOTP handles OTP validation. A successful validation that
// carried an upstream token sets the session cookie.
func (h *VerificationHandlers) ValidateOTP(c *gin.Context) {
	var req ValidateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := domain.NormalizeMSISDN(req.Phone, h.countryPrefix)
	conf, err := h.verificationSvc.ConfirmOTP(c.Request.Context(), msisdn, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP validation failed"})
		return
	}
	if !conf.Result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": conf.Result.Message})
		return
	}

	authenticated := conf.CookieToken != ""
	if authenticated {
		c.SetCookie(h.cookieName, conf.CookieToken, conf.MaxAge, "/", "", h.secureCookie, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":       conf.Result.Message,
			"authenticated": authenticated,
		},
	})
}

// Logout deletes the session and expires the cookie
func (h *VerificationHandlers) Logout(c *gin.Context) {
	if sessionID := c.GetString(middleware.CtxSessionID); sessionID != "" {
		if err := h.sessionRepo.Delete(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully"},
	})
}
