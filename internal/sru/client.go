// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sru implements the catalog client: SRU searchRetrieve queries
// against a library search service, one PICA field/value pair per call.
package sru

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/biblioscope/internal/httputil"
	"github.com/pdiddy/biblioscope/pkg/types"
)

const (
	sruVersion   = "1.1"
	sruOperation = "searchRetrieve"
)

// Client fetches raw SRU result documents. BaseURL is a plain field so tests
// can substitute an httptest server.
type Client struct {
	BaseURL string

	cfg  types.CatalogConfig
	http *http.Client
}

// NewClient builds a catalog client from cfg, applying defaults for any
// unset field.
func NewClient(cfg types.CatalogConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://sru.k10plus.de"
	}
	if cfg.Database == "" {
		cfg.Database = "opac-de-18"
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 10
	}
	if cfg.RecordSchema == "" {
		cfg.RecordSchema = "mods36"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "biblioscope/0.1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		BaseURL: cfg.BaseURL,
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch runs one searchRetrieve query of the form pica.<field>="<value>"
// against the configured database and returns the raw response document.
func (c *Client) Fetch(ctx context.Context, fieldCode, value string) ([]byte, error) {
	reqURL := c.queryURL(fieldCode, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}
	return body, nil
}

// queryURL builds the searchRetrieve URL for one field/value pair.
func (c *Client) queryURL(fieldCode, value string) string {
	params := url.Values{}
	params.Set("version", sruVersion)
	params.Set("operation", sruOperation)
	params.Set("query", fmt.Sprintf("pica.%s=%q", fieldCode, value))
	params.Set("maximumRecords", fmt.Sprintf("%d", c.cfg.MaxRecords))
	params.Set("recordSchema", c.cfg.RecordSchema)
	if c.cfg.AccessKey != "" {
		params.Set("wskey", c.cfg.AccessKey)
	}
	return c.BaseURL + "/" + c.cfg.Database + "?" + params.Encode()
}
