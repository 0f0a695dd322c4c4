package repositories

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/saruni-spec/pin-registration/domain"
)

// ResilientDraftStore wraps a draft repository with an in-process
// fallback. When the backing store is unavailable the wizard keeps
// working against in-memory state instead of crashing the flow; the
// memory copy is dropped as soon as the backing store accepts a write
// again.
type ResilientDraftStore struct {
	primary domain.DraftRepository

	mu     sync.RWMutex
	memory map[string]*domain.Draft
}

// NewResilientDraftStore wraps primary with the in-memory fallback
func NewResilientDraftStore(primary domain.DraftRepository) *ResilientDraftStore {
	return &ResilientDraftStore{
		primary: primary,
		memory:  make(map[string]*domain.Draft),
	}
}

func fallbackKey(workflow domain.Workflow, msisdn string) string {
	return fmt.Sprintf("%s:%s", workflow, msisdn)
}

// Save implements domain.DraftRepository
func (s *ResilientDraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	if err := s.primary.Save(ctx, draft); err != nil {
		log.Printf("DRAFT_STORE_UNAVAILABLE: op=save workflow=%s msisdn=%s error=%v", draft.Workflow, draft.MSISDN, err)
		copied := *draft
		s.mu.Lock()
		s.memory[fallbackKey(draft.Workflow, draft.MSISDN)] = &copied
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	delete(s.memory, fallbackKey(draft.Workflow, draft.MSISDN))
	s.mu.Unlock()
	return nil
}

// Find implements domain.DraftRepository
func (s *ResilientDraftStore) Find(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
	draft, err := s.primary.Find(ctx, workflow, msisdn)
	if err == nil {
		return draft, nil
	}

	s.mu.RLock()
	fallback, ok := s.memory[fallbackKey(workflow, msisdn)]
	s.mu.RUnlock()
	if ok {
		copied := *fallback
		return &copied, nil
	}

	if err == domain.ErrDraftNotFound {
		return nil, err
	}
	log.Printf("DRAFT_STORE_UNAVAILABLE: op=find workflow=%s msisdn=%s error=%v", workflow, msisdn, err)
	return nil, domain.ErrDraftNotFound
}

// Delete implements domain.DraftRepository
func (s *ResilientDraftStore) Delete(ctx context.Context, workflow domain.Workflow, msisdn string) error {
	s.mu.Lock()
	delete(s.memory, fallbackKey(workflow, msisdn))
	s.mu.Unlock()

	// A failed backend delete is absorbed like a failed save; the key
	// expires with its TTL.
	_ = s.primary.Delete(ctx, workflow, msisdn)
	return nil
}

var _ domain.DraftRepository = (*ResilientDraftStore)(nil)
