package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/saruni-spec/pin-registration/domain"
)

func sampleSession(id string, expiresAt time.Time) *domain.Session {
	return &domain.Session{
		ID:        id,
		MSISDN:    "254712345678",
		Token:     "bearer-abc",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, 10*time.Minute)
	ctx := context.Background()

	session := sampleSession("sess-1", time.Now().Add(10*time.Minute))
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Token != "bearer-abc" {
		t.Errorf("expected the upstream token, got %q", found.Token)
	}
	if found.MSISDN != "254712345678" {
		t.Errorf("expected msisdn, got %q", found.MSISDN)
	}
}

func TestSessionRepositoryImpl_FindMissing(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, 10*time.Minute)

	if _, err := repo.FindByID(context.Background(), "no-such"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_ExpiredSessionIsDeleted(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, 10*time.Minute)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleSession("sess-old", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess-old"); err != domain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// The lazy delete kicked in; the key is gone now.
	if _, err := repo.FindByID(ctx, "sess-old"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after lazy delete, got %v", err)
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, 10*time.Minute)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleSession("sess-2", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, "sess-2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess-2"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
