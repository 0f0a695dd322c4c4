package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/mocks"
)

func testTaxRate() decimal.Decimal {
	return decimal.New(16, -2)
}

func seedDraft(t *testing.T, repo *mocks.MockDraftRepository, draft *domain.Draft) {
	t.Helper()
	if err := repo.Save(context.Background(), draft); err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}
}

func TestInvoiceServiceImpl_SubmitInvoice(t *testing.T) {
	const msisdn = "254712345678"

	t.Run("recomputes totals from line items", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		sender := mocks.NewMockDocumentSender()
		svc := NewInvoiceService(drafts, gateway, sender, testTaxRate())

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowSalesInvoice,
			MSISDN:   msisdn,
			Items: []domain.LineItem{
				{ID: "1", Name: "Cement", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
				{ID: "2", Name: "Nails", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
			},
		})

		var submitted *domain.InvoiceSubmission
		gateway.SubmitInvoiceFunc = func(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult {
			submitted = sub
			return &domain.SubmissionResult{Success: true, ReceiptNumber: "INV-42"}
		}

		result, err := svc.SubmitInvoice(context.Background(), domain.WorkflowSalesInvoice, msisdn, "bearer")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Success {
			t.Fatal("expected successful submission")
		}
		if submitted == nil {
			t.Fatal("expected the gateway to receive a submission")
		}
		// subtotal 250, 16% tax 40, total 290
		if !submitted.TotalAmount.Equal(decimal.NewFromInt(290)) {
			t.Errorf("expected total 290, got %s", submitted.TotalAmount)
		}
		if len(submitted.Items) != 2 {
			t.Fatalf("expected 2 submission items, got %d", len(submitted.Items))
		}

		// draft is cleared after a successful submission
		if _, err := drafts.Find(context.Background(), domain.WorkflowSalesInvoice, msisdn); err != domain.ErrDraftNotFound {
			t.Errorf("expected draft to be cleared, got %v", err)
		}
	})

	t.Run("empty draft is rejected", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		svc := NewInvoiceService(drafts, mocks.NewMockTaxGateway(), mocks.NewMockDocumentSender(), testTaxRate())

		seedDraft(t, drafts, &domain.Draft{Workflow: domain.WorkflowSalesInvoice, MSISDN: msisdn})

		if _, err := svc.SubmitInvoice(context.Background(), domain.WorkflowSalesInvoice, msisdn, ""); err != domain.ErrEmptyDraft {
			t.Errorf("expected ErrEmptyDraft, got %v", err)
		}
	})

	t.Run("non-invoice workflow is rejected", func(t *testing.T) {
		svc := NewInvoiceService(mocks.NewMockDraftRepository(), mocks.NewMockTaxGateway(), mocks.NewMockDocumentSender(), testTaxRate())

		if _, err := svc.SubmitInvoice(context.Background(), domain.WorkflowDeclaration, msisdn, ""); err != domain.ErrUnknownWorkflow {
			t.Errorf("expected ErrUnknownWorkflow, got %v", err)
		}
	})

	t.Run("failed submission keeps the draft", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		svc := NewInvoiceService(drafts, gateway, mocks.NewMockDocumentSender(), testTaxRate())

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowSalesInvoice,
			MSISDN:   msisdn,
			Items:    []domain.LineItem{{ID: "1", Name: "Cement", UnitPrice: decimal.NewFromInt(100), Quantity: 1}},
		})

		gateway.SubmitInvoiceFunc = func(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult {
			return &domain.SubmissionResult{Success: false, Message: "upstream rejected"}
		}

		result, err := svc.SubmitInvoice(context.Background(), domain.WorkflowSalesInvoice, msisdn, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success {
			t.Fatal("expected failed submission")
		}
		if _, err := drafts.Find(context.Background(), domain.WorkflowSalesInvoice, msisdn); err != nil {
			t.Errorf("draft must survive a failed submission, got %v", err)
		}
	})

	t.Run("document is delivered after success", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		gateway := mocks.NewMockTaxGateway()
		sender := mocks.NewMockDocumentSender()
		svc := NewInvoiceService(drafts, gateway, sender, testTaxRate())

		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowBuyerInitiated,
			MSISDN:   msisdn,
			Items:    []domain.LineItem{{ID: "1", Name: "Cement", UnitPrice: decimal.NewFromInt(100), Quantity: 1}},
		})

		gateway.SubmitInvoiceFunc = func(ctx context.Context, sub *domain.InvoiceSubmission, bearer string) *domain.SubmissionResult {
			return &domain.SubmissionResult{Success: true, ReceiptNumber: "INV-7", DocumentURL: "https://docs.example/inv-7.pdf"}
		}

		if _, err := svc.SubmitInvoice(context.Background(), domain.WorkflowBuyerInitiated, msisdn, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sender.SentDocuments) != 1 || sender.SentDocuments[0] != "https://docs.example/inv-7.pdf" {
			t.Errorf("expected the invoice document to be delivered, got %v", sender.SentDocuments)
		}
	})
}

func TestInvoiceServiceImpl_SubmitCreditNote(t *testing.T) {
	const msisdn = "254712345678"

	creditDraft := func(noteType, reason, amount string) *domain.Draft {
		return &domain.Draft{
			Workflow:      domain.WorkflowCreditNote,
			MSISDN:        msisdn,
			InvoiceNumber: "INV-42",
			NoteType:      noteType,
			Reason:        reason,
			Fields:        map[string]string{"amount": amount},
		}
	}

	tests := []struct {
		name    string
		draft   *domain.Draft
		wantErr bool
	}{
		{name: "valid full credit note", draft: creditDraft("full", "damaged", "100.00")},
		{name: "valid partial credit note", draft: creditDraft("partial", "refund", "25.50")},
		{name: "unknown reason is rejected", draft: creditDraft("full", "because", "100"), wantErr: true},
		{name: "unknown note type is rejected", draft: creditDraft("half", "damaged", "100"), wantErr: true},
		{name: "missing amount is rejected", draft: creditDraft("full", "damaged", ""), wantErr: true},
		{name: "negative amount is rejected", draft: creditDraft("full", "damaged", "-5"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := mocks.NewMockDraftRepository()
			svc := NewInvoiceService(drafts, mocks.NewMockTaxGateway(), mocks.NewMockDocumentSender(), testTaxRate())
			seedDraft(t, drafts, tt.draft)

			_, err := svc.SubmitCreditNote(context.Background(), msisdn, "")
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	t.Run("missing invoice number is rejected", func(t *testing.T) {
		drafts := mocks.NewMockDraftRepository()
		svc := NewInvoiceService(drafts, mocks.NewMockTaxGateway(), mocks.NewMockDocumentSender(), testTaxRate())
		seedDraft(t, drafts, &domain.Draft{
			Workflow: domain.WorkflowCreditNote,
			MSISDN:   msisdn,
			NoteType: "full",
			Reason:   "damaged",
			Fields:   map[string]string{"amount": "100"},
		})

		if _, err := svc.SubmitCreditNote(context.Background(), msisdn, ""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
