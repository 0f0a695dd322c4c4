package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
)

// DraftHandlers handles draft save/load/clear/totals per wizard
type DraftHandlers struct {
	draftSvc      domain.DraftService
	countryPrefix string
}

// NewDraftHandlers creates new draft handlers
func NewDraftHandlers(draftSvc domain.DraftService, countryPrefix string) *DraftHandlers {
	return &DraftHandlers{draftSvc: draftSvc, countryPrefix: countryPrefix}
}

// SaveDraftRequest represents a partial draft update
type SaveDraftRequest struct {
	Phone string            `json:"phone,omitempty"`
	Patch domain.DraftPatch `json:"draft"`
}

// SaveDraft merges a patch into the caller's draft for a wizard
func (h *DraftHandlers) SaveDraft(c *gin.Context) {
	workflow := domain.Workflow(c.Param("workflow"))

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	draft, err := h.draftSvc.SaveDraft(c.Request.Context(), workflow, msisdn, req.Patch)
	if err != nil {
		switch err {
		case domain.ErrUnknownWorkflow:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown workflow"})
		case domain.ErrLineItemName, domain.ErrLineItemPrice, domain.ErrLineItemQuantity:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": draft})
}

// GetDraft loads the caller's draft for a wizard
func (h *DraftHandlers) GetDraft(c *gin.Context) {
	workflow := domain.Workflow(c.Param("workflow"))

	msisdn := requestMSISDN(c, c.Query("phone"), h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	draft, err := h.draftSvc.GetDraft(c.Request.Context(), workflow, msisdn)
	if err != nil {
		switch err {
		case domain.ErrUnknownWorkflow:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown workflow"})
		case domain.ErrDraftNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "No draft in progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": draft})
}

// ClearDraft abandons the caller's draft for a wizard
func (h *DraftHandlers) ClearDraft(c *gin.Context) {
	workflow := domain.Workflow(c.Param("workflow"))

	msisdn := requestMSISDN(c, c.Query("phone"), h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	if err := h.draftSvc.ClearDraft(c.Request.Context(), workflow, msisdn); err != nil {
		if err == domain.ErrUnknownWorkflow {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown workflow"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Draft cleared"},
	})
}

// DraftTotals returns the derived subtotal, tax and total of a draft
func (h *DraftHandlers) DraftTotals(c *gin.Context) {
	workflow := domain.Workflow(c.Param("workflow"))

	msisdn := requestMSISDN(c, c.Query("phone"), h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	totals, err := h.draftSvc.DraftTotals(c.Request.Context(), workflow, msisdn)
	if err != nil {
		switch err {
		case domain.ErrUnknownWorkflow:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown workflow"})
		case domain.ErrDraftNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "No draft in progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}
