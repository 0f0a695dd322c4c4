package mocks

import (
	"context"
	"sync"

	"github.com/saruni-spec/pin-registration/domain"
)

// MockDraftRepository implements domain.DraftRepository for testing.
// Without overrides it behaves as a working in-memory store.
type MockDraftRepository struct {
	SaveFunc   func(ctx context.Context, draft *domain.Draft) error
	FindFunc   func(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error)
	DeleteFunc func(ctx context.Context, workflow domain.Workflow, msisdn string) error

	mu     sync.Mutex
	drafts map[string]*domain.Draft
}

// NewMockDraftRepository creates a new MockDraftRepository
func NewMockDraftRepository() *MockDraftRepository {
	return &MockDraftRepository{drafts: make(map[string]*domain.Draft)}
}

func draftKey(workflow domain.Workflow, msisdn string) string {
	return string(workflow) + ":" + msisdn
}

func (m *MockDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, draft)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *draft
	m.drafts[draftKey(draft.Workflow, draft.MSISDN)] = &copied
	return nil
}

func (m *MockDraftRepository) Find(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, workflow, msisdn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[draftKey(workflow, msisdn)]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (m *MockDraftRepository) Delete(ctx context.Context, workflow domain.Workflow, msisdn string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workflow, msisdn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, draftKey(workflow, msisdn))
	return nil
}

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *domain.Session) error
	FindByIDFunc func(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteFunc   func(ctx context.Context, sessionID string) error

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// MockSavedItemRepository implements domain.SavedItemRepository for testing
type MockSavedItemRepository struct {
	CreateFunc       func(ctx context.Context, item *domain.SavedItem) error
	DrainByPhoneFunc func(ctx context.Context, phone string) ([]domain.SavedItem, error)

	mu    sync.Mutex
	items []domain.SavedItem
}

// NewMockSavedItemRepository creates a new MockSavedItemRepository
func NewMockSavedItemRepository() *MockSavedItemRepository {
	return &MockSavedItemRepository{}
}

func (m *MockSavedItemRepository) Create(ctx context.Context, item *domain.SavedItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *item)
	return nil
}

func (m *MockSavedItemRepository) DrainByPhone(ctx context.Context, phone string) ([]domain.SavedItem, error) {
	if m.DrainByPhoneFunc != nil {
		return m.DrainByPhoneFunc(ctx, phone)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var drained, kept []domain.SavedItem
	for _, item := range m.items {
		if item.Phone == phone {
			drained = append(drained, item)
		} else {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return drained, nil
}

// Compile-time interface compliance verification
var _ domain.DraftRepository = (*MockDraftRepository)(nil)
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
var _ domain.SavedItemRepository = (*MockSavedItemRepository)(nil)
