// Package fxapi is the wire layer for FX rate sources. A Client performs
// one HTTP fetch against a source endpoint and decodes the response
// through the source's format adapter.
package fxapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/rs/zerolog"
)

// Client fetches FX documents over HTTP.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client. The per-attempt deadline is carried by the
// request context, so the underlying http.Client has no timeout of its own.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		log:        log.With().Str("client", "fxapi").Logger(),
	}
}

// FetchLatest retrieves the current rate table for base from endpoint.
// The URL form is <endpoint>/<base>; an API key, if present, travels in
// the X-API-Key header.
func (c *Client) FetchLatest(ctx context.Context, endpoint, apiKey string, format Format, base string) (*domain.FXTable, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s", endpoint, base), apiKey, format)
}

// FetchHistorical retrieves the rate table as of date (YYYY-MM-DD). The
// URL form is <endpoint>/<date>.
func (c *Client) FetchHistorical(ctx context.Context, endpoint, apiKey string, format Format, date string) (*domain.FXTable, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s", endpoint, date), apiKey, format)
}

func (c *Client) fetch(ctx context.Context, url, apiKey string, format Format) (*domain.FXTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	c.log.Debug().Str("url", url).Msg("Fetching rates")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	table, err := Decode(format, body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return table, nil
}
