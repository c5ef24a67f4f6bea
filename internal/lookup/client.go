// Package lookup proxies DNI and RUC queries against the third-party
// identity API and normalizes its inconsistent response shapes.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"muniportal/internal/config"
	"muniportal/internal/models"
	"net/http"
)

// UpstreamError carries the provider's own failure message so callers can
// capture it into the audit trail.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream lookup failed (%d): %s", e.StatusCode, e.Message)
}

// Resolver is the lookup surface handlers depend on
type Resolver interface {
	LookupDNI(ctx context.Context, dni string) (*models.Person, error)
	LookupRUC(ctx context.Context, ruc string) (*models.Taxpayer, error)
}

// Client queries the identity provider over HTTP
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a lookup client from configuration
func NewClient(cfg config.LookupConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// fetch performs one GET against the provider and decodes the raw document
func (c *Client) fetch(ctx context.Context, path string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The provider reports failures either via status or an error field
	if msg, ok := doc["error"].(string); ok && msg != "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return doc, nil
}

// LookupDNI fetches and normalizes a national identity record
func (c *Client) LookupDNI(ctx context.Context, dni string) (*models.Person, error) {
	doc, err := c.fetch(ctx, "/dni/"+dni)
	if err != nil {
		return nil, err
	}

	person := NormalizePerson(doc)
	if person.DNI == "" {
		person.DNI = dni
	}
	return &person, nil
}

// LookupRUC fetches and normalizes a taxpayer record
func (c *Client) LookupRUC(ctx context.Context, ruc string) (*models.Taxpayer, error) {
	doc, err := c.fetch(ctx, "/ruc/"+ruc)
	if err != nil {
		return nil, err
	}

	taxpayer := NormalizeTaxpayer(doc)
	if taxpayer.RUC == "" {
		taxpayer.RUC = ruc
	}
	return &taxpayer, nil
}
