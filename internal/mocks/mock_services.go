package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueSessionTokenFunc func(sessionID, msisdn string) (string, error)
	ParseSessionTokenFunc func(token string) (*domain.SessionClaims, error)
}

// NewMockTokenService creates a new MockTokenService
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssueSessionToken(sessionID, msisdn string) (string, error) {
	if m.IssueSessionTokenFunc != nil {
		return m.IssueSessionTokenFunc(sessionID, msisdn)
	}
	return "signed-" + sessionID, nil
}

func (m *MockTokenService) ParseSessionToken(token string) (*domain.SessionClaims, error) {
	if m.ParseSessionTokenFunc != nil {
		return m.ParseSessionTokenFunc(token)
	}
	if len(token) <= len("signed-") || token[:len("signed-")] != "signed-" {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now()
	return &domain.SessionClaims{
		SessionID: token[len("signed-"):],
		MSISDN:    "254700000000",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(10 * time.Minute).Unix(),
	}, nil
}

// MockVerificationService implements domain.VerificationService for testing
type MockVerificationService struct {
	SendOTPFunc    func(ctx context.Context, msisdn string) *domain.OTPResult
	ConfirmOTPFunc func(ctx context.Context, msisdn, code string) (*domain.OTPConfirmation, error)
}

// NewMockVerificationService creates a new MockVerificationService
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

func (m *MockVerificationService) SendOTP(ctx context.Context, msisdn string) *domain.OTPResult {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, msisdn)
	}
	return &domain.OTPResult{Success: true, Message: "OTP sent"}
}

func (m *MockVerificationService) ConfirmOTP(ctx context.Context, msisdn, code string) (*domain.OTPConfirmation, error) {
	if m.ConfirmOTPFunc != nil {
		return m.ConfirmOTPFunc(ctx, msisdn, code)
	}
	return &domain.OTPConfirmation{
		Result:      &domain.OTPResult{Success: true, Message: "OTP validated"},
		CookieToken: "signed-session",
		MaxAge:      600,
	}, nil
}

// MockDraftService implements domain.DraftService for testing
type MockDraftService struct {
	SaveDraftFunc   func(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error)
	GetDraftFunc    func(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error)
	ClearDraftFunc  func(ctx context.Context, workflow domain.Workflow, msisdn string) error
	DraftTotalsFunc func(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Totals, error)
}

// NewMockDraftService creates a new MockDraftService
func NewMockDraftService() *MockDraftService {
	return &MockDraftService{}
}

func (m *MockDraftService) SaveDraft(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error) {
	if m.SaveDraftFunc != nil {
		return m.SaveDraftFunc(ctx, workflow, msisdn, patch)
	}
	draft := &domain.Draft{Workflow: workflow, MSISDN: msisdn}
	draft.Apply(patch)
	return draft, nil
}

func (m *MockDraftService) GetDraft(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
	if m.GetDraftFunc != nil {
		return m.GetDraftFunc(ctx, workflow, msisdn)
	}
	return &domain.Draft{Workflow: workflow, MSISDN: msisdn}, nil
}

func (m *MockDraftService) ClearDraft(ctx context.Context, workflow domain.Workflow, msisdn string) error {
	if m.ClearDraftFunc != nil {
		return m.ClearDraftFunc(ctx, workflow, msisdn)
	}
	return nil
}

func (m *MockDraftService) DraftTotals(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Totals, error) {
	if m.DraftTotalsFunc != nil {
		return m.DraftTotalsFunc(ctx, workflow, msisdn)
	}
	zero := decimal.Zero
	return &domain.Totals{Subtotal: zero, Tax: zero, Total: zero}, nil
}

// MockInvoiceService implements domain.InvoiceService for testing
type MockInvoiceService struct {
	SubmitInvoiceFunc    func(ctx context.Context, workflow domain.Workflow, msisdn, bearer string) (*domain.SubmissionResult, error)
	SubmitCreditNoteFunc func(ctx context.Context, msisdn, bearer string) (*domain.SubmissionResult, error)
	ListInvoicesFunc     func(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult
}

// NewMockInvoiceService creates a new MockInvoiceService
func NewMockInvoiceService() *MockInvoiceService {
	return &MockInvoiceService{}
}

func (m *MockInvoiceService) SubmitInvoice(ctx context.Context, workflow domain.Workflow, msisdn, bearer string) (*domain.SubmissionResult, error) {
	if m.SubmitInvoiceFunc != nil {
		return m.SubmitInvoiceFunc(ctx, workflow, msisdn, bearer)
	}
	return &domain.SubmissionResult{Success: true, ReceiptNumber: "INV-0001"}, nil
}

func (m *MockInvoiceService) SubmitCreditNote(ctx context.Context, msisdn, bearer string) (*domain.SubmissionResult, error) {
	if m.SubmitCreditNoteFunc != nil {
		return m.SubmitCreditNoteFunc(ctx, msisdn, bearer)
	}
	return &domain.SubmissionResult{Success: true, ReceiptNumber: "CN-0001"}, nil
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult {
	if m.ListInvoicesFunc != nil {
		return m.ListInvoicesFunc(ctx, msisdn, bearer)
	}
	return &domain.InvoiceListResult{Success: true}
}

// MockRegistrationService implements domain.RegistrationService for testing
type MockRegistrationService struct {
	LookupIdentityFunc     func(ctx context.Context, req domain.IdentityLookupRequest, bearer string) *domain.LookupResult
	LookupTaxpayerFunc     func(ctx context.Context, pin, bearer string) *domain.LookupResult
	InitiateSessionFunc    func(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult
	SubmitRegistrationFunc func(ctx context.Context, msisdn, bearer string) (*domain.RegistrationResult, error)
}

// NewMockRegistrationService creates a new MockRegistrationService
func NewMockRegistrationService() *MockRegistrationService {
	return &MockRegistrationService{}
}

func (m *MockRegistrationService) LookupIdentity(ctx context.Context, req domain.IdentityLookupRequest, bearer string) *domain.LookupResult {
	if m.LookupIdentityFunc != nil {
		return m.LookupIdentityFunc(ctx, req, bearer)
	}
	return &domain.LookupResult{Success: true, Name: "JANE WANJIKU", IDNumber: req.IDNumber}
}

func (m *MockRegistrationService) LookupTaxpayer(ctx context.Context, pin, bearer string) *domain.LookupResult {
	if m.LookupTaxpayerFunc != nil {
		return m.LookupTaxpayerFunc(ctx, pin, bearer)
	}
	return &domain.LookupResult{Success: true, Name: "JANE WANJIKU", PIN: pin}
}

func (m *MockRegistrationService) InitiateSession(ctx context.Context, idNumber, msisdn, residency, bearer string) *domain.SessionInitResult {
	if m.InitiateSessionFunc != nil {
		return m.InitiateSessionFunc(ctx, idNumber, msisdn, residency, bearer)
	}
	return &domain.SessionInitResult{Success: true}
}

func (m *MockRegistrationService) SubmitRegistration(ctx context.Context, msisdn, bearer string) (*domain.RegistrationResult, error) {
	if m.SubmitRegistrationFunc != nil {
		return m.SubmitRegistrationFunc(ctx, msisdn, bearer)
	}
	return &domain.RegistrationResult{Success: true, PIN: "A012345678Z"}, nil
}

// MockDeclarationService implements domain.DeclarationService for testing
type MockDeclarationService struct {
	SaveItemFunc          func(ctx context.Context, item *domain.SavedItem) error
	DrainSavedItemsFunc   func(ctx context.Context, phone string) (*domain.DeclarationSummary, error)
	ValidateCashValueFunc func(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error)
}

// NewMockDeclarationService creates a new MockDeclarationService
func NewMockDeclarationService() *MockDeclarationService {
	return &MockDeclarationService{}
}

func (m *MockDeclarationService) SaveItem(ctx context.Context, item *domain.SavedItem) error {
	if m.SaveItemFunc != nil {
		return m.SaveItemFunc(ctx, item)
	}
	return nil
}

func (m *MockDeclarationService) DrainSavedItems(ctx context.Context, phone string) (*domain.DeclarationSummary, error) {
	if m.DrainSavedItemsFunc != nil {
		return m.DrainSavedItemsFunc(ctx, phone)
	}
	return &domain.DeclarationSummary{}, nil
}

func (m *MockDeclarationService) ValidateCashValue(ctx context.Context, amount decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	if m.ValidateCashValueFunc != nil {
		return m.ValidateCashValueFunc(ctx, amount, currency)
	}
	return &domain.ConversionResult{Amount: amount, Currency: currency, ConvertedAmount: amount}, nil
}

// MockPolicyService implements domain.PolicyService for testing.
// Default behavior allows everything.
type MockPolicyService struct {
	AddPolicyFunc       func(role, resource, action string) error
	RemovePolicyFunc    func(role, resource, action string) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	GetPoliciesFunc     func() [][]string
}

// NewMockPolicyService creates a new MockPolicyService
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return true, nil
}

func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{}
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
var _ domain.TokenService = (*MockTokenService)(nil)
var _ domain.VerificationService = (*MockVerificationService)(nil)
var _ domain.DraftService = (*MockDraftService)(nil)
var _ domain.InvoiceService = (*MockInvoiceService)(nil)
var _ domain.RegistrationService = (*MockRegistrationService)(nil)
var _ domain.DeclarationService = (*MockDeclarationService)(nil)
