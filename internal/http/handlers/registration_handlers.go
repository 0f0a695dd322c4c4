package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
)

// RegistrationHandlers handles the PIN registration flow
type RegistrationHandlers struct {
	registrationSvc domain.RegistrationService
	countryPrefix   string
}

// NewRegistrationHandlers creates new registration handlers
func NewRegistrationHandlers(registrationSvc domain.RegistrationService, countryPrefix string) *RegistrationHandlers {
	return &RegistrationHandlers{registrationSvc: registrationSvc, countryPrefix: countryPrefix}
}

// IDLookupRequest represents an identity lookup request
type IDLookupRequest struct {
	IDNumber    string `json:"id_number" binding:"required"`
	Phone       string `json:"phone,omitempty"`
	YearOfBirth string `json:"year_of_birth,omitempty"`
}

// PINLookupRequest represents a taxpayer lookup request
type PINLookupRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// InitiateSessionRequest represents an upstream session initiation request
type InitiateSessionRequest struct {
	IDNumber  string `json:"id_number" binding:"required"`
	Phone     string `json:"phone,omitempty"`
	Residency string `json:"residency,omitempty"`
}

// LookupID handles identity lookup with attribute cross-checks
func (h *RegistrationHandlers) LookupID(c *gin.Context) {
	var req IDLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	result := h.registrationSvc.LookupIdentity(c.Request.Context(), domain.IdentityLookupRequest{
		IDNumber:            req.IDNumber,
		MSISDN:              msisdn,
		ExpectedYearOfBirth: req.YearOfBirth,
	}, requestBearer(c))
	if !result.Success {
		c.JSON(http.StatusNotFound, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// LookupPIN handles taxpayer lookup by KRA PIN
func (h *RegistrationHandlers) LookupPIN(c *gin.Context) {
	var req PINLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.registrationSvc.LookupTaxpayer(c.Request.Context(), req.PIN, requestBearer(c))
	if !result.Success {
		c.JSON(http.StatusNotFound, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// InitiateSession starts an upstream registration session
func (h *RegistrationHandlers) InitiateSession(c *gin.Context) {
	var req InitiateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	result := h.registrationSvc.InitiateSession(c.Request.Context(), req.IDNumber, msisdn, req.Residency, requestBearer(c))
	if !result.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// SubmitRegistration submits the assembled registration draft
func (h *RegistrationHandlers) SubmitRegistration(c *gin.Context) {
	var req SubmitRequest
	_ = c.ShouldBindJSON(&req) // body is optional for verified callers

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	result, err := h.registrationSvc.SubmitRegistration(c.Request.Context(), msisdn, requestBearer(c))
	if err != nil {
		if err == domain.ErrDraftNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No registration draft to submit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
