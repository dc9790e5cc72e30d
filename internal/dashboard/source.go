// Package dashboard loads dashboard payload documents from an upstream source,
// validates them against the response contract and publishes snapshots.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

// ErrSnapshotNotFound reports that a source holds no document for a page.
var ErrSnapshotNotFound = errors.New("dashboard: snapshot not found")

// Source names accepted by the configuration.
const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Source returns the raw JSON document of a page.
type Source interface {
	Name() string
	Payload(ctx context.Context, page contract.Page) ([]byte, error)
}

//go:embed fixtures/*.json
var fixtures embed.FS

// StaticSource serves the embedded fixture documents.
type StaticSource struct{}

// NewStaticSource returns the fixture backed source.
func NewStaticSource() StaticSource {
	return StaticSource{}
}

// Name implements Source.
func (StaticSource) Name() string { return SourceStatic }

// Payload implements Source.
func (StaticSource) Payload(ctx context.Context, page contract.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !page.Valid() {
		return nil, fmt.Errorf("%w: unknown page %q", ErrSnapshotNotFound, page)
	}
	raw, err := fixtures.ReadFile("fixtures/" + string(page) + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, page)
	}
	return raw, nil
}
