package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// DraftRepository defines draft persistence. Drafts are scoped to one
// phone number and one wizard; the backing store's lifetime is injected,
// never a hidden singleton.
type DraftRepository interface {
	Save(ctx context.Context, draft *Draft) error
	Find(ctx context.Context, workflow Workflow, msisdn string) (*Draft, error)
	Delete(ctx context.Context, workflow Workflow, msisdn string) error
}

// SessionRepository defines session data access operations.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SavedItemRepository defines customs saved-item persistence.
type SavedItemRepository interface {
	Create(ctx context.Context, item *SavedItem) error
	// DrainByPhone returns every saved item for a phone number and
	// deletes them in the same transaction.
	DrainByPhone(ctx context.Context, phone string) ([]SavedItem, error)
}

// TaxGateway translates internal calls into upstream HTTP requests and
// back. Every method absorbs its own transport and parsing failures and
// returns a result value with Success=false and a best-effort message;
// callers never see a raw transport error. The bearer argument is the
// session token, empty when the caller is unauthenticated.
type TaxGateway interface {
	GenerateOTP(ctx context.Context, msisdn string) *OTPResult
	ValidateOTP(ctx context.Context, msisdn, code string) *OTPResult
	LookupByID(ctx context.Context, idNumber, msisdn, bearer string) *LookupResult
	LookupByPIN(ctx context.Context, pin, bearer string) *LookupResult
	SubmitInvoice(ctx context.Context, sub *InvoiceSubmission, bearer string) *SubmissionResult
	SubmitCreditNote(ctx context.Context, sub *CreditNoteSubmission, bearer string) *SubmissionResult
	SubmitRegistration(ctx context.Context, sub *RegistrationSubmission, bearer string) *RegistrationResult
	InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *SessionInitResult
	ListInvoices(ctx context.Context, msisdn, bearer string) *InvoiceListResult
}

// CurrencyGateway converts declared amounts into the reference currency.
// Convert fails with ErrBelowThreshold before the caller ever sees a
// success path when the converted amount is under the declaration
// minimum.
type CurrencyGateway interface {
	Convert(ctx context.Context, amount decimal.Decimal, currency string) (*ConversionResult, error)
}

// DocumentSender delivers documents and notices over the messaging
// channel.
type DocumentSender interface {
	SendDocument(to, documentURL, caption string) error
	SendText(to, message string) error
}

// TokenService signs and parses the session cookie value.
type TokenService interface {
	IssueSessionToken(sessionID, msisdn string) (string, error)
	ParseSessionToken(token string) (*SessionClaims, error)
}

// SessionClaims are the verified contents of a session cookie.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	MSISDN    string `json:"msisdn"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// VerificationService defines the phone verification flow.
type VerificationService interface {
	SendOTP(ctx context.Context, msisdn string) *OTPResult
	ConfirmOTP(ctx context.Context, msisdn, code string) (*OTPConfirmation, error)
}

// DraftService defines draft store operations plus derived totals.
type DraftService interface {
	SaveDraft(ctx context.Context, workflow Workflow, msisdn string, patch DraftPatch) (*Draft, error)
	GetDraft(ctx context.Context, workflow Workflow, msisdn string) (*Draft, error)
	ClearDraft(ctx context.Context, workflow Workflow, msisdn string) error
	DraftTotals(ctx context.Context, workflow Workflow, msisdn string) (*Totals, error)
}

// InvoiceService defines invoice and credit note business logic.
type InvoiceService interface {
	SubmitInvoice(ctx context.Context, workflow Workflow, msisdn, bearer string) (*SubmissionResult, error)
	SubmitCreditNote(ctx context.Context, msisdn, bearer string) (*SubmissionResult, error)
	ListInvoices(ctx context.Context, msisdn, bearer string) *InvoiceListResult
}

// IdentityLookupRequest carries the caller-supplied attributes an
// identity lookup must cross-check.
type IdentityLookupRequest struct {
	IDNumber            string
	MSISDN              string
	ExpectedYearOfBirth string
}

// RegistrationService defines the PIN registration flow.
type RegistrationService interface {
	LookupIdentity(ctx context.Context, req IdentityLookupRequest, bearer string) *LookupResult
	LookupTaxpayer(ctx context.Context, pin, bearer string) *LookupResult
	InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *SessionInitResult
	SubmitRegistration(ctx context.Context, msisdn, bearer string) (*RegistrationResult, error)
}

// DeclarationService defines the customs declaration flow.
type DeclarationService interface {
	SaveItem(ctx context.Context, item *SavedItem) error
	DrainSavedItems(ctx context.Context, phone string) (*DeclarationSummary, error)
	ValidateCashValue(ctx context.Context, amount decimal.Decimal, currency string) (*ConversionResult, error)
}

// PolicyService defines route access policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}
