package contract

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeOverview reads and validates an overview document.
func DecodeOverview(r io.Reader) (OverviewResponse, error) {
	var resp OverviewResponse
	if err := decode(r, &resp); err != nil {
		return OverviewResponse{}, fmt.Errorf("contract: decode overview: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return OverviewResponse{}, err
	}
	return resp, nil
}

// DecodeInsights reads and validates an insights document.
func DecodeInsights(r io.Reader) (InsightsResponse, error) {
	var resp InsightsResponse
	if err := decode(r, &resp); err != nil {
		return InsightsResponse{}, fmt.Errorf("contract: decode insights: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return InsightsResponse{}, err
	}
	return resp, nil
}

// decode keeps numbers inside open keyed series points as json.Number so they
// re-encode exactly as received.
func decode(r io.Reader, dest any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(dest)
}
