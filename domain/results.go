package domain

import "github.com/shopspring/decimal"

// Result envelopes returned by the upstream gateway. Every gateway call
// normalizes transport failures and upstream error bodies into one of
// these shapes; a failed call is a value with Success=false and a
// non-empty Message, never a propagated transport error.

// OTPResult is the outcome of OTP issuance or validation.
type OTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	// Token is the upstream bearer credential, set only by validation
	// and only when the upstream chose to return one.
	Token string `json:"-"`
}

// LookupResult is the outcome of an identity or taxpayer lookup.
type LookupResult struct {
	Success     bool   `json:"success"`
	Code        int    `json:"code,omitempty"`
	Message     string `json:"message"`
	Name        string `json:"name,omitempty"`
	PIN         string `json:"pin,omitempty"`
	IDNumber    string `json:"id_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// RegistrationResult is the outcome of a PIN registration submission.
type RegistrationResult struct {
	Success       bool   `json:"success"`
	Code          int    `json:"code,omitempty"`
	Message       string `json:"message"`
	PIN           string `json:"pin,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

// SubmissionResult is the outcome of an invoice or credit note submission.
type SubmissionResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	DocumentURL   string `json:"document_url,omitempty"`
}

// SessionInitResult is the outcome of initiating an upstream session.
type SessionInitResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// InvoiceListResult is the outcome of fetching the invoice listing.
type InvoiceListResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Invoices []InvoiceRecord `json:"invoices,omitempty"`
}

// ConversionResult is a currency conversion that already cleared the
// declaration threshold guard.
type ConversionResult struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
}

// OTPConfirmation pairs a validation result with the cookie token the
// caller should set. CookieToken is empty when the upstream returned no
// bearer token; validation can still have succeeded.
type OTPConfirmation struct {
	Result      *OTPResult
	CookieToken string
	MaxAge      int
}

// DeclarationSummary is the drained set of saved items plus their
// rendered text form.
type DeclarationSummary struct {
	Items []DeclarationItem `json:"items"`
	Text  string            `json:"items_string"`
}
