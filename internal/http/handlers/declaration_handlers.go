package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// DeclarationHandlers handles the customs declaration flow
type DeclarationHandlers struct {
	declarationSvc domain.DeclarationService
	countryPrefix  string
}

// NewDeclarationHandlers creates new declaration handlers
func NewDeclarationHandlers(declarationSvc domain.DeclarationService, countryPrefix string) *DeclarationHandlers {
	return &DeclarationHandlers{declarationSvc: declarationSvc, countryPrefix: countryPrefix}
}

// SaveItemRequest represents one declaration item to park
type SaveItemRequest struct {
	Phone       string           `json:"phone,omitempty"`
	Category    string           `json:"category" binding:"required"`
	HSCode      string           `json:"hscode,omitempty"`
	Item        string           `json:"item" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required"`
	Amount      decimal.Decimal  `json:"amount"`
	ValueOfFund *decimal.Decimal `json:"value_of_fund,omitempty"`
	Currency    string           `json:"currency,omitempty"`
}

// ValidateCashRequest represents a cash declaration amount to convert
type ValidateCashRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
}

// SaveItem parks one declaration item for the caller's phone number
func (h *DeclarationHandlers) SaveItem(c *gin.Context) {
	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	item := &domain.SavedItem{
		Phone:       msisdn,
		Category:    req.Category,
		HSCode:      req.HSCode,
		Item:        req.Item,
		Quantity:    req.Quantity,
		Amount:      req.Amount,
		ValueOfFund: req.ValueOfFund,
		Currency:    req.Currency,
	}
	if err := h.declarationSvc.SaveItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// DrainItems collects and removes every parked item for the caller,
// returning the assembled declaration
func (h *DeclarationHandlers) DrainItems(c *gin.Context) {
	var req SubmitRequest
	_ = c.ShouldBindJSON(&req) // body is optional for verified callers

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	summary, err := h.declarationSvc.DrainSavedItems(c.Request.Context(), msisdn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble declaration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// ValidateCash converts a declared cash amount and enforces the
// declaration minimum
func (h *DeclarationHandlers) ValidateCash(c *gin.Context) {
	var req ValidateCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.declarationSvc.ValidateCashValue(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		if err == domain.ErrBelowThreshold {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrBelowThreshold.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Currency conversion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
