package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

const (
	snapshotKeyPrefix = "dashboard:snapshot"
	// SnapshotChannel receives the envelope id of every published snapshot.
	SnapshotChannel = "dashboard.snapshot"
)

// Envelope wraps a published payload document.
type Envelope struct {
	ID          string          `json:"id"`
	Page        contract.Page   `json:"page"`
	PublishedAt time.Time       `json:"publishedAt"`
	Payload     json.RawMessage `json:"payload"`
}

// SnapshotStore keeps the latest snapshot per page in Redis. It is both the
// redis Source and the publisher the worker writes through.
type SnapshotStore struct {
	client redis.UniversalClient
	clock  func() time.Time
	newID  func() string
}

// NewSnapshotStore wires the Redis client.
func NewSnapshotStore(client redis.UniversalClient) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return uuid.NewString()
		},
	}
}

// SnapshotKey returns the Redis key holding the snapshot of page.
func SnapshotKey(page contract.Page) string {
	return strings.Join([]string{snapshotKeyPrefix, string(page)}, ":")
}

// Name implements Source.
func (s *SnapshotStore) Name() string { return SourceRedis }

// Payload implements Source by unwrapping the stored envelope.
func (s *SnapshotStore) Payload(ctx context.Context, page contract.Page) ([]byte, error) {
	env, err := s.Latest(ctx, page)
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// Latest returns the stored envelope of page.
func (s *SnapshotStore) Latest(ctx context.Context, page contract.Page) (Envelope, error) {
	if s == nil || s.client == nil {
		return Envelope{}, errors.New("dashboard: snapshot store not configured")
	}
	raw, err := s.client.Get(ctx, SnapshotKey(page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Envelope{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, page)
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("dashboard: get %s snapshot: %w", page, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("dashboard: decode %s envelope: %w", page, err)
	}
	return env, nil
}

// Publish validates payload, stores it as the latest snapshot of page and
// announces the envelope id on SnapshotChannel.
func (s *SnapshotStore) Publish(ctx context.Context, page contract.Page, payload []byte) (Envelope, error) {
	if s == nil || s.client == nil {
		return Envelope{}, errors.New("dashboard: snapshot store not configured")
	}
	if err := ValidatePayload(page, payload); err != nil {
		return Envelope{}, err
	}
	env := Envelope{
		ID:          s.newID(),
		Page:        page,
		PublishedAt: s.clock(),
		Payload:     json.RawMessage(payload),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, fmt.Errorf("dashboard: encode %s envelope: %w", page, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, SnapshotKey(page), raw, 0)
		pipe.Publish(ctx, SnapshotChannel, env.ID)
		return nil
	})
	if err != nil {
		return Envelope{}, fmt.Errorf("dashboard: publish %s snapshot: %w", page, err)
	}
	return env, nil
}

// ValidatePayload decodes payload as the document of page and checks it
// against the contract rules.
func ValidatePayload(page contract.Page, payload []byte) error {
	switch page {
	case contract.PageOverview:
		_, err := contract.DecodeOverview(bytes.NewReader(payload))
		return err
	case contract.PageInsights:
		_, err := contract.DecodeInsights(bytes.NewReader(payload))
		return err
	default:
		return fmt.Errorf("dashboard: unknown page %q", page)
	}
}
