package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saruni-spec/pin-registration/domain"
)

// DraftRepositoryImpl implements domain.DraftRepository using Redis.
// One key per phone number and wizard; values are the JSON-serialized
// draft. Every save persists immediately, without batching.
type DraftRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(client *redis.Client, ttl time.Duration) domain.DraftRepository {
	return &DraftRepositoryImpl{
		client: client,
		prefix: "draft:",
		ttl:    ttl,
	}
}

func (r *DraftRepositoryImpl) key(workflow domain.Workflow, msisdn string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, workflow, msisdn)
}

// Save implements domain.DraftRepository
func (r *DraftRepositoryImpl) Save(ctx context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	return r.client.Set(ctx, r.key(draft.Workflow, draft.MSISDN), data, r.ttl).Err()
}

// Find implements domain.DraftRepository
func (r *DraftRepositoryImpl) Find(ctx context.Context, workflow domain.Workflow, msisdn string) (*domain.Draft, error) {
	data, err := r.client.Get(ctx, r.key(workflow, msisdn)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete implements domain.DraftRepository
func (r *DraftRepositoryImpl) Delete(ctx context.Context, workflow domain.Workflow, msisdn string) error {
	return r.client.Del(ctx, r.key(workflow, msisdn)).Err()
}
