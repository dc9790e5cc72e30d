package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
	"github.com/odyssey-erp/odyssey-dashboard/internal/observability"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/httpx"
)

// DefaultLoadTimeout bounds a single payload load.
const DefaultLoadTimeout = 2 * time.Second

// LoadObserver receives one outcome per payload load.
type LoadObserver interface {
	ObservePayloadLoad(page, source, outcome string)
}

// Service loads validated dashboard documents from a Source.
type Service struct {
	source   Source
	observer LoadObserver
	timeout  time.Duration
}

// NewService wires a Source. A nil observer disables load metrics and a
// non-positive timeout falls back to DefaultLoadTimeout.
func NewService(source Source, observer LoadObserver, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Service{source: source, observer: observer, timeout: timeout}
}

// SourceName reports the configured source.
func (s *Service) SourceName() string {
	if s == nil || s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Overview returns the validated overview document.
func (s *Service) Overview(ctx context.Context) (contract.OverviewResponse, error) {
	raw, err := s.load(ctx, contract.PageOverview)
	if err != nil {
		return contract.OverviewResponse{}, err
	}
	resp, err := contract.DecodeOverview(bytes.NewReader(raw))
	if err != nil {
		return contract.OverviewResponse{}, s.invalid(contract.PageOverview, err)
	}
	s.observe(contract.PageOverview, observability.OutcomeOK)
	return resp, nil
}

// Insights returns the validated insights document.
func (s *Service) Insights(ctx context.Context) (contract.InsightsResponse, error) {
	raw, err := s.load(ctx, contract.PageInsights)
	if err != nil {
		return contract.InsightsResponse{}, err
	}
	resp, err := contract.DecodeInsights(bytes.NewReader(raw))
	if err != nil {
		return contract.InsightsResponse{}, s.invalid(contract.PageInsights, err)
	}
	s.observe(contract.PageInsights, observability.OutcomeOK)
	return resp, nil
}

func (s *Service) load(ctx context.Context, page contract.Page) ([]byte, error) {
	if s == nil || s.source == nil {
		return nil, fmt.Errorf("dashboard: load %s: source not configured: %w", page, httpx.ErrUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.source.Payload(ctx, page)
	if err != nil {
		return nil, s.unavailable(page, err)
	}
	return raw, nil
}

// unavailable wraps a source failure, a missing snapshot included.
func (s *Service) unavailable(page contract.Page, err error) error {
	outcome := observability.OutcomeUnavailable
	if errors.Is(err, ErrSnapshotNotFound) {
		outcome = observability.OutcomeNotFound
	}
	s.observe(page, outcome)
	return fmt.Errorf("dashboard: load %s: %w: %w", page, httpx.ErrUnavailable, err)
}

// invalid wraps a document the decoder or the contract rules rejected.
func (s *Service) invalid(page contract.Page, err error) error {
	s.observe(page, observability.OutcomeInvalid)
	return fmt.Errorf("dashboard: load %s: %w: %w", page, httpx.ErrBadUpstream, err)
}

func (s *Service) observe(page contract.Page, outcome string) {
	if s.observer == nil {
		return
	}
	s.observer.ObservePayloadLoad(string(page), s.SourceName(), outcome)
}
