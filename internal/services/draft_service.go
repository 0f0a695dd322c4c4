package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saruni-spec/pin-registration/domain"
)

// DraftServiceImpl implements domain.DraftService. Validation happens
// here, not in the repository; the repository only persists.
type DraftServiceImpl struct {
	drafts  domain.DraftRepository
	taxRate decimal.Decimal
}

// NewDraftService creates a new draft service
func NewDraftService(drafts domain.DraftRepository, taxRate decimal.Decimal) domain.DraftService {
	return &DraftServiceImpl{drafts: drafts, taxRate: taxRate}
}

// SaveDraft implements domain.DraftService. The draft is created on
// first write; later patches merge into it, last write wins per field.
func (s *DraftServiceImpl) SaveDraft(ctx context.Context, workflow domain.Workflow, msisdn string, patch domain.DraftPatch) (*domain.Draft, error) {
	if !workflow.Valid() {
		return nil, domain.ErrUnknownWorkflow
	}

	for i := range patch.Items {
		if patch.Items[i].ID == "" {
			patch.Items[i].ID = uuid.NewString()
		}
		if err := patch.Items[i].Validate(); err != nil {
			return nil, err
		}
	}

	draft, err := s.drafts.Find(ctx, workflow, msisdn)
	if err == domain.ErrDraftNotFound {
		draft = &domain.Draft{Workflow: workflow, MSISDN: msisdn}
	} else if err != nil {
		return nil, err
	}

	draft.Apply(patch)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft implements domain.DraftService
func (s *DraftServiceImpl) GetDraft(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
	if !workflow.Valid() {
		return nil, domain.ErrUnknownWorkflow
	}
	return s.drafts.Find(ctx, workflow, msisdn)
}

// ClearDraft implements domain.DraftService
func (s *DraftServiceImpl) ClearDraft(ctx context.Context, workflow domain.Workflow, msisdn string) error {
	if !workflow.Valid() {
		return domain.ErrUnknownWorkflow
	}
	return s.drafts.Delete(ctx, workflow, msisdn)
}

// DraftTotals implements domain.DraftService. Totals are derived from
// the stored line items on every call; a previously computed total is
// never read back.
func (s *DraftServiceImpl) DraftTotals(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Totals, error) {
	draft, err := s.GetDraft(ctx, workflow, msisdn)
	if err != nil {
		return nil, err
	}

	totals := domain.CalculateTotals(draft.Items, s.taxRate)
	return &totals, nil
}
