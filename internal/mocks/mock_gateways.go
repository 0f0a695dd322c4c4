package mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// MockTaxGateway implements domain.TaxGateway for testing. Defaults
// answer every call with a generic success so tests only override what
// they assert on.
type MockTaxGateway struct {
	GenerateOTPFunc        func(ctx context.Context, msisdn string) *domain.OTPResult
	ValidateOTPFunc        func(ctx context.Context, msisdn, code string) *domain.OTPResult
	LookupByIDFunc         func(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult
	LookupByPINFunc        func(ctx context.Context, pin, bearer string) *domain.LookupResult
	SubmitInvoiceFunc      func(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult
	SubmitCreditNoteFunc   func(ctx context.Context, sub *domain.CreditNoteSubmission, bearer string) *domain.SubmissionResult
	SubmitRegistrationFunc func(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult
	InitiateSessionFunc    func(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult
	ListInvoicesFunc       func(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult
}

// NewMockTaxGateway creates a new MockTaxGateway with default behaviors
func NewMockTaxGateway() *MockTaxGateway {
	return &MockTaxGateway{}
}

func (m *MockTaxGateway) GenerateOTP(ctx context.Context, msisdn string) *domain.OTPResult {
	if m.GenerateOTPFunc != nil {
		return m.GenerateOTPFunc(ctx, msisdn)
	}
	return &domain.OTPResult{Success: true, Message: "OTP sent"}
}

func (m *MockTaxGateway) ValidateOTP(ctx context.Context, msisdn, code string) *domain.OTPResult {
	if m.ValidateOTPFunc != nil {
		return m.ValidateOTPFunc(ctx, msisdn, code)
	}
	// Default behavior: accept "123456" and hand back a bearer token
	if code == "123456" {
		return &domain.OTPResult{Success: true, Message: "OTP validated", Token: "upstream-token"}
	}
	return &domain.OTPResult{Success: false, Message: "Invalid OTP"}
}

func (m *MockTaxGateway) LookupByID(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult {
	if m.LookupByIDFunc != nil {
		return m.LookupByIDFunc(ctx, idNumber, msisdn, bearer)
	}
	return &domain.LookupResult{Success: true, Name: "JANE WANJIKU", IDNumber: idNumber, DateOfBirth: "1990-04-12"}
}

func (m *MockTaxGateway) LookupByPIN(ctx context.Context, pin, bearer string) *domain.LookupResult {
	if m.LookupByPINFunc != nil {
		return m.LookupByPINFunc(ctx, pin, bearer)
	}
	return &domain.LookupResult{Success: true, Name: "JANE WANJIKU", PIN: pin}
}

func (m *MockTaxGateway) SubmitInvoice(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult {
	if m.SubmitInvoiceFunc != nil {
		return m.SubmitInvoiceFunc(ctx, sub, bearer)
	}
	return &domain.SubmissionResult{Success: true, ReceiptNumber: "INV-0001"}
}

func (m *MockTaxGateway) SubmitCreditNote(ctx context.Context, sub *domain.CreditNoteSubmission, bearer string) *domain.SubmissionResult {
	if m.SubmitCreditNoteFunc != nil {
		return m.SubmitCreditNoteFunc(ctx, sub, bearer)
	}
	return &domain.SubmissionResult{Success: true, ReceiptNumber: "CN-0001"}
}

func (m *MockTaxGateway) SubmitRegistration(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult {
	if m.SubmitRegistrationFunc != nil {
		return m.SubmitRegistrationFunc(ctx, sub, bearer)
	}
	return &domain.RegistrationResult{Success: true, PIN: "A012345678Z", ReceiptNumber: "REG-0001"}
}

func (m *MockTaxGateway) InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult {
	if m.InitiateSessionFunc != nil {
		return m.InitiateSessionFunc(ctx, idNumber, msisdn, residency, bearer)
	}
	return &domain.SessionInitResult{Success: true, Message: "session initiated"}
}

func (m *MockTaxGateway) ListInvoices(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult {
	if m.ListInvoicesFunc != nil {
		return m.ListInvoicesFunc(ctx, msisdn, bearer)
	}
	return &domain.InvoiceListResult{Success: true}
}

// MockCurrencyGateway implements domain.CurrencyGateway for testing
type MockCurrencyGateway struct {
	ConvertFunc func(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error)
}

// NewMockCurrencyGateway creates a new MockCurrencyGateway
func NewMockCurrencyGateway() *MockCurrencyGateway {
	return &MockCurrencyGateway{}
}

func (m *MockCurrencyGateway) Convert(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, amount, currency)
	}
	return &domain.ConversionResult{Amount: amount, Currency: currency, ConvertedAmount: amount}, nil
}

// MockDocumentSender implements domain.DocumentSender for testing.
// Calls are recorded for assertion.
type MockDocumentSender struct {
	SendDocumentFunc func(to, documentURL, caption string) error
	SendTextFunc     func(to, message string) error

	SentDocuments []string
	SentTexts     []string
}

// NewMockDocumentSender creates a new MockDocumentSender
func NewMockDocumentSender() *MockDocumentSender {
	return &MockDocumentSender{}
}

func (m *MockDocumentSender) SendDocument(to, documentURL, caption string) error {
	if m.SendDocumentFunc != nil {
		return m.SendDocumentFunc(to, documentURL, caption)
	}
	m.SentDocuments = append(m.SentDocuments, documentURL)
	return nil
}

func (m *MockDocumentSender) SendText(to, message string) error {
	if m.SendTextFunc != nil {
		return m.SendTextFunc(to, message)
	}
	m.SentTexts = append(m.SentTexts, message)
	return nil
}

// Compile-time interface compliance verification
var _ domain.TaxGateway = (*MockTaxGateway)(nil)
var _ domain.CurrencyGateway = (*MockCurrencyGateway)(nil)
var _ domain.DocumentSender = (*MockDocumentSender)(nil)
