// Package lockvendor talks to the door-lock vendor's key management API.
package lockvendor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/access"
	"github.com/innkeep/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the vendor API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Ensure Client implements LockVendorClient
var _ access.LockVendorClient = (*Client)(nil)

// Client implements the lock vendor port over the vendor's HTTP API.
// The vendor authenticates every request with a static API key header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new lock vendor API client
func NewClient(cfg *config.LockVendorConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("lock vendor configuration is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("lock vendor base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type issueKeyRequest struct {
	RoomNumber string    `json:"room_number"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

type issueKeyResponse struct {
	KeyID string `json:"key_id"`
}

type vendorError struct {
	Message string `json:"message"`
}

// IssueKey asks the vendor to program a new card key for a room and
// returns the vendor's key identifier
func (c *Client) IssueKey(ctx context.Context, roomNumber string, validFrom, validUntil time.Time) (string, error) {
	payload := issueKeyRequest{
		RoomNumber: roomNumber,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}

	var resp issueKeyResponse
	if err := c.post(ctx, "/v1/keys", payload, &resp); err != nil {
		return "", err
	}
	if resp.KeyID == "" {
		return "", errors.New("lock vendor returned an empty key ID")
	}

	c.logger.Info("card key issued by vendor",
		zap.String("room_number", roomNumber),
		zap.String("vendor_key_id", resp.KeyID))
	return resp.KeyID, nil
}

// RevokeKey asks the vendor to invalidate a previously issued key
func (c *Client) RevokeKey(ctx context.Context, vendorKeyID string) error {
	if vendorKeyID == "" {
		return errors.New("vendor key ID is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/v1/keys/"+vendorKeyID, nil)
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}
	c.setHeaders(req)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lock vendor request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusNoContent {
		return c.apiError(httpResp)
	}

	c.logger.Info("card key revoked by vendor", zap.String("vendor_key_id", vendorKeyID))
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lock vendor request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		return c.apiError(httpResp)
	}

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	var ve vendorError
	if err := json.Unmarshal(data, &ve); err == nil && ve.Message != "" {
		return fmt.Errorf("lock vendor rejected the request (%d): %s", resp.StatusCode, ve.Message)
	}
	return fmt.Errorf("lock vendor returned status %d", resp.StatusCode)
}
