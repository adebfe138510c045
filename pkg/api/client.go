// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package api implements the HTTP transport for the AstraSync registry
// service: agent registration, verification, credential login, and
// service health.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	aserrors "github.com/astrasync/astrasync-go/pkg/errors"
	"github.com/astrasync/astrasync-go/pkg/record"
)

// DefaultBaseURL is the production registry endpoint.
const DefaultBaseURL = "https://astrasync.ai/api/v1"

// userAgent identifies this SDK on every request.
const userAgent = "AstraSync-Go-SDK/1.0"

// Client talks to the AstraSync registry over HTTPS.
type Client struct {
	// mu guards baseURL and httpClient, which a configuration watcher
	// may swap while calls are in flight.
	mu         sync.RWMutex
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the registry endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAPIKey authenticates requests with a static API key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithToken authenticates requests with a bearer token, typically
// obtained from Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request round trip. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient builds a registry client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBaseURL re-points the client at a different registry endpoint.
// Safe to call while requests are in flight; used on config reload.
func (c *Client) SetBaseURL(u string) {
	if u == "" {
		return
	}
	c.mu.Lock()
	c.baseURL = u
	c.mu.Unlock()
}

// SetTimeout replaces the request timeout. Safe to call while requests
// are in flight; used on config reload.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	hc := *c.httpClient
	hc.Timeout = d
	c.httpClient = &hc
	c.mu.Unlock()
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email string        `json:"email"`
	Agent *record.Agent `json:"agent"`
}

// RegisterResponse is returned by the registry on success.
type RegisterResponse struct {
	AgentID    string `json:"agentId"`
	Status     string `json:"status"`
	TrustScore int    `json:"trustScore"`
	Message    string `json:"message,omitempty"`
}

// VerifyResponse describes a previously registered agent.
type VerifyResponse struct {
	AgentID    string        `json:"agentId"`
	Verified   bool          `json:"verified"`
	Status     string        `json:"status"`
	TrustScore int           `json:"trustScore"`
	Agent      *record.Agent `json:"agent,omitempty"`
}

// LoginResponse carries the bearer token issued for a credential pair.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// HealthResponse reports registry availability.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Register submits a normalized agent record for registration.
func (c *Client) Register(ctx context.Context, email string, agent *record.Agent) (*RegisterResponse, error) {
	var out RegisterResponse
	req := RegisterRequest{Email: email, Agent: agent}
	if err := c.do(ctx, http.MethodPost, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify looks up an agent by its registry-assigned identifier.
func (c *Client) Verify(ctx context.Context, agentID string) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/verify/"+agentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges email and password for a bearer token and stores it
// on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Health checks registry availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return aserrors.New(aserrors.CodeInternal, "encode request body", err)
		}
		reader = bytes.NewReader(buf)
	}

	c.mu.RLock()
	base, httpClient := c.baseURL, c.httpClient
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return aserrors.New(aserrors.CodeInternal, "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := httpClient.Do(req)
	if err != nil {
		return aserrors.New(aserrors.CodeRegistryFailure, fmt.Sprintf("%s %s", method, path), err).
			WithContext("url", base+path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return aserrors.New(aserrors.CodeRegistryFailure, "read response body", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, method, path, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return aserrors.New(aserrors.CodeRegistryFailure, "decode response body", err).
				WithStatusCode(resp.StatusCode)
		}
	}
	return nil
}

// statusError maps HTTP failures onto the SDK error taxonomy, carrying
// any structured message the registry returned.
func statusError(status int, method, path string, payload []byte) error {
	code := aserrors.CodeRegistryFailure
	switch {
	case status == http.StatusNotFound:
		code = aserrors.CodeNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = aserrors.CodeUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		code = aserrors.CodeInvalidInput
	}

	msg := fmt.Sprintf("%s %s returned %d", method, path, status)
	var detail struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(payload, &detail) == nil {
		if detail.Message != "" {
			msg = detail.Message
		} else if detail.Error != "" {
			msg = detail.Error
		}
	}

	return aserrors.New(code, msg, nil).WithStatusCode(status)
}
