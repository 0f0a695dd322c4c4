package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// InvoiceServiceImpl implements domain.InvoiceService
type InvoiceServiceImpl struct {
	drafts  domain.DraftRepository
	gateway domain.TaxGateway
	sender  domain.DocumentSender
	taxRate decimal.Decimal
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(drafts domain.DraftRepository, gateway domain.TaxGateway, sender domain.DocumentSender, taxRate decimal.Decimal) domain.InvoiceService {
	return &InvoiceServiceImpl{
		drafts:  drafts,
		gateway: gateway,
		sender:  sender,
		taxRate: taxRate,
	}
}

// SubmitInvoice implements domain.InvoiceService. Totals are recomputed
// from the draft's line items at submission time; whatever total a
// client sent along the way is ignored so a stale figure can never
// reach the upstream.
func (s *InvoiceServiceImpl) SubmitInvoice(ctx context.Context, workflow domain.Workflow, msisdn, bearer string) (*domain.SubmissionResult, error) {
	if workflow != domain.WorkflowSalesInvoice && workflow != domain.WorkflowBuyerInitiated {
		return nil, domain.ErrUnknownWorkflow
	}

	draft, err := s.drafts.Find(ctx, workflow, msisdn)
	if err != nil {
		return nil, err
	}
	if len(draft.Items) == 0 {
		return nil, domain.ErrEmptyDraft
	}
	for _, item := range draft.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	totals := domain.CalculateTotals(draft.Items, s.taxRate)

	sub := &domain.InvoiceSubmission{
		MSISDN:      msisdn,
		TotalAmount: totals.Total,
		Items:       make([]domain.SubmissionItem, 0, len(draft.Items)),
	}
	for _, item := range draft.Items {
		sub.Items = append(sub.Items, domain.SubmissionItem{
			ItemName:      item.Name,
			TaxableAmount: item.UnitPrice,
			Quantity:      item.Quantity,
		})
	}

	result := s.gateway.SubmitInvoice(ctx, sub, bearer)
	if result.Success {
		if err := s.drafts.Delete(ctx, workflow, msisdn); err != nil {
			log.Printf("DRAFT_CLEAR_FAILED: workflow=%s msisdn=%s error=%v", workflow, msisdn, err)
		}
		s.deliverDocument(msisdn, result)
	}
	return result, nil
}

// SubmitCreditNote implements domain.InvoiceService
func (s *InvoiceServiceImpl) SubmitCreditNote(ctx context.Context, msisdn, bearer string) (*domain.SubmissionResult, error) {
	draft, err := s.drafts.Find(ctx, domain.WorkflowCreditNote, msisdn)
	if err != nil {
		return nil, err
	}

	if draft.InvoiceNumber == "" {
		return nil, errors.New("credit note draft has no invoice number")
	}
	if draft.NoteType != "full" && draft.NoteType != "partial" {
		return nil, fmt.Errorf("invalid credit note type %q", draft.NoteType)
	}
	if _, ok := domain.CreditNoteReasons[draft.Reason]; !ok {
		return nil, fmt.Errorf("invalid credit note reason %q", draft.Reason)
	}

	amount, err := decimal.NewFromString(draft.Fields["amount"])
	if err != nil || !amount.IsPositive() {
		return nil, errors.New("credit note draft has no valid amount")
	}

	sub := &domain.CreditNoteSubmission{
		MSISDN:        msisdn,
		InvoiceNumber: draft.InvoiceNumber,
		NoteType:      draft.NoteType,
		Reason:        draft.Reason,
		Amount:        amount,
	}

	result := s.gateway.SubmitCreditNote(ctx, sub, bearer)
	if result.Success {
		if err := s.drafts.Delete(ctx, domain.WorkflowCreditNote, msisdn); err != nil {
			log.Printf("DRAFT_CLEAR_FAILED: workflow=%s msisdn=%s error=%v", domain.WorkflowCreditNote, msisdn, err)
		}
	}
	return result, nil
}

// ListInvoices implements domain.InvoiceService
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, msisdn, bearer string) *domain.InvoiceListResult {
	return s.gateway.ListInvoices(ctx, msisdn, bearer)
}

// deliverDocument sends the generated invoice document over the
// messaging channel, best effort. The submission already succeeded; a
// delivery failure is logged, not surfaced.
func (s *InvoiceServiceImpl) deliverDocument(msisdn string, result *domain.SubmissionResult) {
	if result.DocumentURL == "" {
		return
	}
	caption := "Your invoice is ready."
	if result.ReceiptNumber != "" {
		caption = fmt.Sprintf("Your invoice %s is ready.", result.ReceiptNumber)
	}
	if err := s.sender.SendDocument(msisdn, result.DocumentURL, caption); err != nil {
		log.Printf("DOCUMENT_DELIVERY_FAILED: msisdn=%s url=%s error=%v", msisdn, result.DocumentURL, err)
	}
}
