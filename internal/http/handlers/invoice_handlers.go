package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saruni-spec/pin-registration/domain"
)

// InvoiceHandlers handles invoice submission, credit notes and listing
type InvoiceHandlers struct {
	invoiceSvc    domain.InvoiceService
	countryPrefix string
}

// NewInvoiceHandlers creates new invoice handlers
func NewInvoiceHandlers(invoiceSvc domain.InvoiceService, countryPrefix string) *InvoiceHandlers {
	return &InvoiceHandlers{invoiceSvc: invoiceSvc, countryPrefix: countryPrefix}
}

// SubmitRequest carries the anonymous-mode phone fallback
type SubmitRequest struct {
	Phone string `json:"phone,omitempty"`
}

// SubmitInvoice finalizes an invoice draft and submits it upstream
func (h *InvoiceHandlers) SubmitInvoice(c *gin.Context) {
	workflow := domain.Workflow(c.Param("workflow"))

	var req SubmitRequest
	_ = c.ShouldBindJSON(&req) // body is optional for verified callers

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	result, err := h.invoiceSvc.SubmitInvoice(c.Request.Context(), workflow, msisdn, requestBearer(c))
	if err != nil {
		switch err {
		case domain.ErrUnknownWorkflow:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown workflow"})
		case domain.ErrDraftNotFound, domain.ErrEmptyDraft:
			c.JSON(http.StatusBadRequest, gin.H{"error": "No invoice draft with line items to submit"})
		case domain.ErrLineItemName, domain.ErrLineItemPrice, domain.ErrLineItemQuantity:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit invoice"})
		}
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// SubmitCreditNote finalizes a credit note draft and submits it upstream
func (h *InvoiceHandlers) SubmitCreditNote(c *gin.Context) {
	var req SubmitRequest
	_ = c.ShouldBindJSON(&req) // body is optional for verified callers

	msisdn := requestMSISDN(c, req.Phone, h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	result, err := h.invoiceSvc.SubmitCreditNote(c.Request.Context(), msisdn, requestBearer(c))
	if err != nil {
		if err == domain.ErrDraftNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No credit note draft to submit"})
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

// ListInvoices returns the caller's previously issued invoices
func (h *InvoiceHandlers) ListInvoices(c *gin.Context) {
	msisdn := requestMSISDN(c, c.Query("phone"), h.countryPrefix)
	if msisdn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	result := h.invoiceSvc.ListInvoices(c.Request.Context(), msisdn, requestBearer(c))
	if !result.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.Invoices})
}
