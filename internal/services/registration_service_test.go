package services

import (
	"context"
	"strings"
	"testing"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/mocks"
)

func TestRegistrationServiceImpl_LookupIdentity(t *testing.T) {
	tests := []struct {
		name        string
		req         domain.IdentityLookupRequest
		setupMocks  func(*mocks.MockTaxGateway)
		wantSuccess bool
		wantGeneric bool
	}{
		{
			name:        "matching year of birth passes",
			req:         domain.IdentityLookupRequest{IDNumber: "12345678", ExpectedYearOfBirth: "1990"},
			setupMocks:  func(gw *mocks.MockTaxGateway) {},
			wantSuccess: true,
		},
		{
			name: "mismatched year of birth fails with generic message",
			req:  domain.IdentityLookupRequest{IDNumber: "12345678", ExpectedYearOfBirth: "1985"},
			setupMocks: func(gw *mocks.MockTaxGateway) {
				gw.LookupByIDFunc = func(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult {
					return &domain.LookupResult{Success: true, Name: "JANE WANJIKU", DateOfBirth: "1990-04-12"}
				}
			},
			wantGeneric: true,
		},
		{
			name: "missing date of birth fails closed when a check was requested",
			req:  domain.IdentityLookupRequest{IDNumber: "12345678", ExpectedYearOfBirth: "1990"},
			setupMocks: func(gw *mocks.MockTaxGateway) {
				gw.LookupByIDFunc = func(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult {
					return &domain.LookupResult{Success: true, Name: "JANE WANJIKU"}
				}
			},
			wantGeneric: true,
		},
		{
			name:        "no expected year skips the cross-check",
			req:         domain.IdentityLookupRequest{IDNumber: "12345678"},
			setupMocks:  func(gw *mocks.MockTaxGateway) {},
			wantSuccess: true,
		},
		{
			name: "upstream failure passes through untouched",
			req:  domain.IdentityLookupRequest{IDNumber: "12345678", ExpectedYearOfBirth: "1990"},
			setupMocks: func(gw *mocks.MockTaxGateway) {
				gw.LookupByIDFunc = func(ctx context.Context, idNumber, msisdn, bearer string) *domain.LookupResult {
					return &domain.LookupResult{Success: false, Message: "ID not found"}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockTaxGateway()
			tt.setupMocks(gateway)
			svc := NewRegistrationService(mocks.NewMockDraftRepository(), gateway, mocks.NewMockDocumentSender())

			result := svc.LookupIdentity(context.Background(), tt.req, "")
			if result.Success != tt.wantSuccess {
				t.Fatalf("expected success=%v, got %v (message %q)", tt.wantSuccess, result.Success, result.Message)
			}
			if tt.wantGeneric {
				if result.Message != domain.ErrIdentityMismatch.Error() {
					t.Errorf("expected the generic mismatch message, got %q", result.Message)
				}
				// The failure must not leak the upstream record.
				if result.Name != "" || result.DateOfBirth != "" {
					t.Error("mismatch result must not carry upstream identity details")
				}
			}
		})
	}
}

func TestRegistrationServiceImpl_SubmitRegistration(t *testing.T) {
	const msisdn = "254712345678"

	t.Run("submits draft fields and clears the draft", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		sender := mocks.NewMockDocumentSender()
		svc := NewRegistrationService(drafts, gateway, sender)

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowPinRegistration,
			MSISDN:   msisdn,
			Fields: map[string]string{
				"id_number": "12345678",
				"email":     "jane@example.com",
				"residency": domain.ResidencyResident,
			},
		})

		var submitted *domain.RegistrationSubmission
		gateway.SubmitRegistrationFunc = func(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult {
			submitted = sub
			return &domain.RegistrationResult{Success: true, PIN: "A012345678Z", ReceiptNumber: "REG-9"}
		}

		result, err := svc.SubmitRegistration(context.Background(), msisdn, "bearer")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Success {
			t.Fatal("expected successful registration")
		}
		if submitted.IDNumber != "12345678" || submitted.Email != "jane@example.com" || submitted.Residency != domain.ResidencyResident {
			t.Errorf("submission does not match the draft: %+v", submitted)
		}
		if _, err := drafts.Find(context.Background(), domain.WorkflowPinRegistration, msisdn); err != domain.ErrDraftNotFound {
			t.Errorf("expected draft to be cleared, got %v", err)
		}
		if len(sender.SentTexts) != 1 || !strings.Contains(sender.SentTexts[0], "A012345678Z") {
			t.Errorf("expected the issued PIN to be sent over messaging, got %v", sender.SentTexts)
		}
	})

	t.Run("incomplete draft is rejected before the upstream call", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		gateway.SubmitRegistrationFunc = func(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult {
			t.Error("incomplete draft must not reach the upstream")
			return &domain.RegistrationResult{}
		}
		svc := NewRegistrationService(drafts, gateway, mocks.NewMockDocumentSender())

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowPinRegistration,
			MSISDN:   msisdn,
			Fields:   map[string]string{"id_number": "12345678"},
		})

		if _, err := svc.SubmitRegistration(context.Background(), msisdn, ""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("failed submission keeps the draft", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		gateway.SubmitRegistrationFunc = func(ctx context.Context, sub *domain.RegistrationSubmission, bearer string) *domain.RegistrationResult {
			return &domain.RegistrationResult{Success: false, Message: "duplicate registration"}
		}
		svc := NewRegistrationService(drafts, gateway, mocks.NewMockDocumentSender())

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowPinRegistration,
			MSISDN:   msisdn,
			Fields:   map[string]string{"id_number": "12345678", "email": "jane@example.com"},
		})

		result, err := svc.SubmitRegistration(context.Background(), msisdn, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success {
			t.Fatal("expected failed registration")
		}
		if _, err := drafts.Find(context.Background(), domain.WorkflowPinRegistration, msisdn); err != nil {
			t.Errorf("draft must survive a failed submission, got %v", err)
		}
	})
}
