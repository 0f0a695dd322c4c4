package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/shopspring/decimal"
)

// USSDGateway implements domain.TaxGateway against the tax authority's
// USSD API, with the iTax GUI lookup as fallback for identity checks.
// Upstream response shapes vary per endpoint; each method owns the
// normalization of its endpoint's aliases into the internal result
// types and never surfaces a transport error to its caller.
type USSDGateway struct {
	client        *Client
	baseURL       string
	itaxURL       string
	countryPrefix string
}

// NewUSSDGateway creates a new USSD API gateway
func NewUSSDGateway(client *Client, baseURL, itaxURL, countryPrefix string) domain.TaxGateway {
	return &USSDGateway{
		client:        client,
		baseURL:       baseURL,
		itaxURL:       itaxURL,
		countryPrefix: countryPrefix,
	}
}

// successFlag holds the upstream "success" indicator, which is absent
// on some endpoints and unreliable on others. Absent means success.
type successFlag struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func (f successFlag) ok() bool {
	return f.Success == nil || *f.Success
}

// errored reports whether the upstream set a truthy error field.
// Some endpoints send "error": 0 on success; zero counts as no error.
func (f successFlag) errored() bool {
	switch string(f.Error) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// GenerateOTP implements domain.TaxGateway
// POST {base}/otp
func (g *USSDGateway) GenerateOTP(ctx context.Context, msisdn string) *domain.OTPResult {
	clean := domain.NormalizeMSISDN(msisdn, g.countryPrefix)

	var resp struct {
		successFlag
		Message string      `json:"message"`
		Code    json.Number `json:"code"`
	}
	err := g.client.PostJSON(ctx, g.baseURL+"/otp", map[string]string{"msisdn": clean}, "", &resp)
	if err != nil {
		return &domain.OTPResult{Success: false, Message: MessageOr(err, "Failed to send OTP")}
	}

	return &domain.OTPResult{
		Success: true,
		Message: orDefault(resp.Message, "OTP sent successfully"),
		Code:    asInt(resp.Code),
	}
}

// ValidateOTP implements domain.TaxGateway
// POST {base}/validate-otp
func (g *USSDGateway) ValidateOTP(ctx context.Context, msisdn, code string) *domain.OTPResult {
	clean := domain.NormalizeMSISDN(msisdn, g.countryPrefix)

	var resp struct {
		successFlag
		Message string      `json:"message"`
		Code    json.Number `json:"code"`
		Token   string      `json:"token"`
	}
	err := g.client.PostJSON(ctx, g.baseURL+"/validate-otp", map[string]string{
		"msisdn": clean,
		"otp":    code,
	}, "", &resp)
	if err != nil {
		return &domain.OTPResult{Success: false, Message: MessageOr(err, "Invalid OTP")}
	}

	return &domain.OTPResult{
		Success: resp.ok(),
		Message: orDefault(resp.Message, "OTP validated successfully"),
		Code:    asInt(resp.Code),
		Token:   resp.Token,
	}
}

// LookupByID implements domain.TaxGateway. The ID lookup endpoint is
// primary; the iTax GUI lookup is the fallback when it fails or when no
// msisdn is available. A returned name is the success signal; the
// endpoint's own flag is not trusted on its own.
func (g *USSDGateway) LookupByID(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult {
	if msisdn != "" {
		clean := domain.NormalizeMSISDN(msisdn, g.countryPrefix)

		var resp struct {
			successFlag
			Message     string `json:"message"`
			Name        string `json:"name"`
			PIN         string `json:"pin"`
			DateOfBirth string `json:"date_of_birth"`
			Gender      string `json:"gender"`
		}
		err := g.client.PostJSON(ctx, g.baseURL+"/id-lookup", map[string]string{
			"id_number": idNumber,
			"msisdn":    clean,
		}, bearer, &resp)
		if err == nil && (resp.Name != "" || (resp.Success != nil && *resp.Success)) {
			return &domain.LookupResult{
				Success:     true,
				Message:     orDefault(resp.Message, "Valid ID"),
				Name:        resp.Name,
				PIN:         resp.PIN,
				IDNumber:    idNumber,
				DateOfBirth: resp.DateOfBirth,
				Gender:      resp.Gender,
			}
		}
	}

	return g.guiLookup(ctx, idNumber, bearer)
}

// guiLookup is the iTax fallback.
// GET {itax}/gui-lookup?gui=<id>&tax_payer_type=KE
func (g *USSDGateway) guiLookup(ctx context.Context, idNumber, bearer string) *domain.LookupResult {
	var resp struct {
		Status       string `json:"Status"`
		ResponseCode string `json:"ResponseCode"`
		Message      string `json:"Message"`
		TaxpayerName string `json:"TaxpayerName"`
		PIN          string `json:"PIN"`
	}
	params := url.Values{}
	params.Set("gui", idNumber)
	params.Set("tax_payer_type", "KE")

	err := g.client.GetJSON(ctx, g.itaxURL+"/gui-lookup", params, bearer, &resp)
	if err != nil {
		return &domain.LookupResult{Success: false, Message: MessageOr(err, "Failed to lookup ID")}
	}

	if resp.Status == "OK" || resp.ResponseCode == "30000" || resp.Message == "Valid ID" {
		return &domain.LookupResult{
			Success:  true,
			Code:     asInt(json.Number(resp.ResponseCode)),
			Message:  orDefault(resp.Message, "Valid ID"),
			Name:     resp.TaxpayerName,
			PIN:      resp.PIN,
			IDNumber: idNumber,
		}
	}

	return &domain.LookupResult{
		Success: false,
		Code:    asInt(json.Number(resp.ResponseCode)),
		Message: orDefault(resp.Message, "Invalid ID number"),
	}
}

// LookupByPIN implements domain.TaxGateway
// POST {base}/pin-lookup
func (g *USSDGateway) LookupByPIN(ctx context.Context, pin, bearer string) *domain.LookupResult {
	var resp struct {
		successFlag
		Message      string `json:"message"`
		Name         string `json:"name"`
		TaxpayerName string `json:"taxpayer_name"`
		PIN          string `json:"pin"`
	}
	err := g.client.PostJSON(ctx, g.baseURL+"/pin-lookup", map[string]string{"pin": pin}, bearer, &resp)
	if err != nil {
		return &domain.LookupResult{Success: false, Message: MessageOr(err, "Failed to lookup taxpayer")}
	}

	name := orDefault(resp.Name, resp.TaxpayerName)
	if name == "" {
		return &domain.LookupResult{
			Success: false,
			Message: orDefault(resp.Message, "Taxpayer not found"),
		}
	}

	return &domain.LookupResult{
		Success: true,
		Message: orDefault(resp.Message, "Valid PIN"),
		Name:    name,
		PIN:     orDefault(resp.PIN, pin),
	}
}

// SubmitInvoice implements domain.TaxGateway
// POST {base}/invoice
func (g *USSDGateway) SubmitInvoice(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult {
	clean := domain.NormalizeMSISDN(sub.MSISDN, g.countryPrefix)

	var resp struct {
		successFlag
		Message          string `json:"message"`
		ReceiptNumber    string `json:"receipt_number"`
		ReceiptNumberAlt string `json:"receiptNumber"`
		DocumentURL      string `json:"document_url"`
		DocumentURLAlt   string `json:"documentUrl"`
	}
	err := g.client.SubmitJSON(ctx, g.baseURL+"/invoice", map[string]any{
		"msisdn":       clean,
		"total_amount": sub.TotalAmount,
		"items":        sub.Items,
	}, bearer, &resp)
	if err != nil {
		return &domain.SubmissionResult{Success: false, Message: MessageOr(err, "Failed to submit invoice")}
	}

	return &domain.SubmissionResult{
		Success:       resp.ok() && !resp.errored(),
		Message:       orDefault(resp.Message, "Invoice submitted successfully"),
		ReceiptNumber: orDefault(resp.ReceiptNumber, resp.ReceiptNumberAlt),
		DocumentURL:   orDefault(resp.DocumentURL, resp.DocumentURLAlt),
	}
}

// SubmitCreditNote implements domain.TaxGateway
// POST {base}/credit-note
func (g *USSDGateway) SubmitCreditNote(ctx context.Context, sub *domain.CreditNoteSubmission, bearer string) *domain.SubmissionResult {
	clean := domain.NormalizeMSISDN(sub.MSISDN, g.countryPrefix)

	var resp struct {
		successFlag
		Message          string `json:"message"`
		ReceiptNumber    string `json:"receipt_number"`
		ReceiptNumberAlt string `json:"receiptNumber"`
	}
	err := g.client.SubmitJSON(ctx, g.baseURL+"/credit-note", map[string]any{
		"msisdn":         clean,
		"invoice_number": sub.InvoiceNumber,
		"type":           sub.NoteType,
		"reason":         sub.Reason,
		"amount":         sub.Amount,
	}, bearer, &resp)
	if err != nil {
		return &domain.SubmissionResult{Success: false, Message: MessageOr(err, "Failed to submit credit note")}
	}

	return &domain.SubmissionResult{
		Success:       resp.ok() && !resp.errored(),
		Message:       orDefault(resp.Message, "Credit note submitted successfully"),
		ReceiptNumber: orDefault(resp.ReceiptNumber, resp.ReceiptNumberAlt),
	}
}

// SubmitRegistration implements domain.TaxGateway
// POST {base}/pin-registration
func (g *USSDGateway) SubmitRegistration(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult {
	clean := domain.NormalizeMSISDN(sub.MSISDN, g.countryPrefix)

	var resp struct {
		successFlag
		Message          string      `json:"message"`
		Code             json.Number `json:"code"`
		PIN              string      `json:"pin"`
		KRAPin           string      `json:"kra_pin"`
		ReceiptNumber    string      `json:"receipt_number"`
		ReceiptNumberAlt string      `json:"receiptNumber"`
	}
	err := g.client.SubmitJSON(ctx, g.baseURL+"/pin-registration", map[string]string{
		"type":      sub.Residency,
		"email":     sub.Email,
		"msisdn":    clean,
		"id_number": sub.IDNumber,
	}, bearer, &resp)
	if err != nil {
		return &domain.RegistrationResult{Success: false, Message: MessageOr(err, "Failed to submit PIN registration")}
	}

	receipt := orDefault(resp.ReceiptNumber, resp.ReceiptNumberAlt)
	if receipt == "" {
		// Upstream sometimes omits the receipt; issue a local one so the
		// applicant always has a reference.
		receipt = fmt.Sprintf("REG-%d", time.Now().UnixMilli())
	}

	return &domain.RegistrationResult{
		Success:       resp.ok() && !resp.errored(),
		Code:          asInt(resp.Code),
		Message:       orDefault(resp.Message, "PIN Registration submitted successfully"),
		PIN:           orDefault(resp.PIN, resp.KRAPin),
		ReceiptNumber: receipt,
	}
}

// InitiateSession implements domain.TaxGateway
// POST {base}/initiate-session
func (g *USSDGateway) InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult {
	clean := domain.NormalizeMSISDN(msisdn, g.countryPrefix)

	var resp struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	err := g.client.PostJSON(ctx, g.baseURL+"/initiate-session", map[string]string{
		"id_number": idNumber,
		"msisdn":    clean,
		"type":      residency,
	}, bearer, &resp)
	if err != nil {
		return &domain.SessionInitResult{Success: false, Message: MessageOr(err, "Failed to initiate session")}
	}

	return &domain.SessionInitResult{
		Success:   true,
		Message:   orDefault(resp.Message, "Session initiated"),
		SessionID: resp.SessionID,
	}
}

// ListInvoices implements domain.TaxGateway
// POST {base}/invoices
func (g *USSDGateway) ListInvoices(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult {
	clean := domain.NormalizeMSISDN(msisdn, g.countryPrefix)

	var resp struct {
		successFlag
		Message  string `json:"message"`
		Invoices []struct {
			InvoiceNumber    string          `json:"invoice_number"`
			InvoiceNumberAlt string          `json:"invoiceNumber"`
			BuyerName        string          `json:"buyer_name"`
			Total            decimal.Decimal `json:"total"`
			Status           string          `json:"status"`
			IssuedAt         string          `json:"issued_at"`
		} `json:"invoices"`
	}
	err := g.client.PostJSON(ctx, g.baseURL+"/invoices", map[string]string{"msisdn": clean}, bearer, &resp)
	if err != nil {
		return &domain.InvoiceListResult{Success: false, Message: MessageOr(err, "Failed to fetch invoices")}
	}

	records := make([]domain.InvoiceRecord, 0, len(resp.Invoices))
	for _, inv := range resp.Invoices {
		records = append(records, domain.InvoiceRecord{
			InvoiceNumber: orDefault(inv.InvoiceNumber, inv.InvoiceNumberAlt),
			BuyerName:     inv.BuyerName,
			Total:         inv.Total,
			Status:        inv.Status,
			IssuedAt:      inv.IssuedAt,
		})
	}

	return &domain.InvoiceListResult{
		Success:  resp.ok(),
		Message:  orDefault(resp.Message, "Invoices fetched"),
		Invoices: records,
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func asInt(n json.Number) int {
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}
