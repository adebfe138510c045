// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package astrasync is the entry point of the AstraSync SDK. A Client
// normalizes agent descriptions from any supported framework, scores
// them, and registers them with the AstraSync registry.
package astrasync

import (
	"context"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/astrasync/astrasync-go/pkg/api"
	"github.com/astrasync/astrasync-go/pkg/config"
	"github.com/astrasync/astrasync-go/pkg/errors"
	"github.com/astrasync/astrasync-go/pkg/normalize"
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/telemetry"
)

// Version is the SDK release version, reported in the User-Agent.
const Version = "1.0.0"

// Client registers and verifies AI agents with the AstraSync registry.
type Client struct {
	email    string
	apiKey   string
	password string

	api     *api.Client
	logger  *slog.Logger
	metrics *telemetry.SDKMetrics
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	email      string
	apiKey     string
	password   string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// WithEmail sets the developer email attached to registrations.
func WithEmail(email string) Option {
	return func(o *clientOptions) { o.email = email }
}

// WithAPIKey authenticates with a static API key.
func WithAPIKey(key string) Option {
	return func(o *clientOptions) { o.apiKey = key }
}

// WithPassword authenticates with the email and password credential
// pair. The client logs in lazily on the first request that needs it.
func WithPassword(password string) Option {
	return func(o *clientOptions) { o.password = password }
}

// WithBaseURL overrides the registry endpoint.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithTimeout bounds each registry request round trip.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient builds an SDK client. Either an API key or a password must
// be provided so requests can authenticate.
func NewClient(opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.apiKey == "" && o.password == "" {
		return nil, errors.New(errors.CodeUnauthorized, "an API key or a password is required", nil)
	}

	apiOpts := []api.Option{
		api.WithBaseURL(o.baseURL),
		api.WithAPIKey(o.apiKey),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	if o.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(o.timeout))
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := telemetry.NewSDKMetrics()
	if err != nil {
		return nil, errors.New(errors.CodeInternal, "create sdk metrics", err)
	}

	return &Client{
		email:    o.email,
		apiKey:   o.apiKey,
		password: o.password,
		api:      api.NewClient(apiOpts...),
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("astrasync/sdk"),
	}, nil
}

// RegisterOption adjusts a single Register call.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	owner string
	email string
}

// WithOwner overrides the owner recorded for this registration.
func WithOwner(owner string) RegisterOption {
	return func(o *registerOptions) { o.owner = owner }
}

// WithRegistrationEmail overrides the client email for this call.
func WithRegistrationEmail(email string) RegisterOption {
	return func(o *registerOptions) { o.email = email }
}

// Register normalizes input, resolves ownership, and submits the
// record to the registry. The email is validated before any network
// traffic so malformed input fails fast and locally.
func (c *Client) Register(ctx context.Context, input any, opts ...RegisterOption) (*api.RegisterResponse, error) {
	o := &registerOptions{email: c.email}
	for _, opt := range opts {
		opt(o)
	}

	if err := validateEmail(o.email); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "astrasync.Register")
	defer span.End()

	rec := normalize.Normalize(input)
	resolveOwner(rec, o.owner, o.email)

	span.SetAttributes(
		attribute.String(telemetry.AttrFramework, rec.AgentType),
		attribute.Int(telemetry.AttrTrustScore, rec.TrustScore),
		attribute.Int(telemetry.AttrCapabilityCount, len(rec.Capabilities)),
	)

	c.logger.InfoContext(ctx, "registering agent",
		"framework", rec.AgentType,
		"name", rec.Name,
		"trust_score", rec.TrustScore,
	)

	if err := c.ensureAuth(ctx); err != nil {
		c.metrics.RecordRegistration(ctx, rec.AgentType, "error", rec.TrustScore)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := c.api.Register(ctx, o.email, rec)
	if err != nil {
		c.metrics.RecordRegistration(ctx, rec.AgentType, "error", rec.TrustScore)
		c.metrics.RecordAPIError(ctx, "register", err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.ErrorContext(ctx, "registration failed", "framework", rec.AgentType, "error", err)
		return nil, err
	}

	c.metrics.RecordRegistration(ctx, rec.AgentType, "ok", rec.TrustScore)
	span.SetAttributes(attribute.String(telemetry.AttrAgentID, resp.AgentID))
	c.logger.InfoContext(ctx, "agent registered", "agent_id", resp.AgentID, "status", resp.Status)
	return resp, nil
}

// Verify looks up a registered agent by its registry identifier.
func (c *Client) Verify(ctx context.Context, agentID string) (*api.VerifyResponse, error) {
	if strings.TrimSpace(agentID) == "" {
		return nil, errors.New(errors.CodeInvalidInput, "agent id is required", nil)
	}

	ctx, span := c.tracer.Start(ctx, "astrasync.Verify",
		trace.WithAttributes(attribute.String(telemetry.AttrAgentID, agentID)))
	defer span.End()

	if err := c.ensureAuth(ctx); err != nil {
		c.metrics.RecordVerification(ctx, "error")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := c.api.Verify(ctx, agentID)
	if err != nil {
		c.metrics.RecordVerification(ctx, "error")
		c.metrics.RecordAPIError(ctx, "verify", err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.metrics.RecordVerification(ctx, "ok")
	return resp, nil
}

// Health reports registry availability.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	return c.api.Health(ctx)
}

// Normalize runs detection and normalization without contacting the
// registry. Useful for previewing what Register would submit.
func (c *Client) Normalize(input any, opts ...RegisterOption) *record.Agent {
	o := &registerOptions{email: c.email}
	for _, opt := range opts {
		opt(o)
	}
	rec := normalize.Normalize(input)
	resolveOwner(rec, o.owner, o.email)
	return rec
}

// WatchConfig polls the configuration file at path and re-points the
// client when it changes: registry base URL and request timeout take
// effect on the next call. The watcher applies the current file state
// immediately, then keeps polling until ctx is done or Stop is called.
func (c *Client) WatchConfig(ctx context.Context, path string, opts ...config.WatcherOption) (*config.Watcher, error) {
	opts = append([]config.WatcherOption{config.WithWatchLogger(c.logger)}, opts...)
	watcher, err := config.NewWatcher(path, opts...)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidInput, "load config file", err).
			WithContext("path", path)
	}

	apply := func(cfg *config.Config) {
		c.api.SetBaseURL(cfg.API.BaseURL)
		c.api.SetTimeout(cfg.API.Timeout)
		c.logger.Info("registry endpoint updated", "base_url", cfg.API.BaseURL)
	}
	apply(watcher.Config())
	watcher.OnChange(apply)
	watcher.Start(ctx)
	return watcher, nil
}

// ensureAuth logs in with the password credential when no API key is
// configured. The token is cached on the transport after first login.
func (c *Client) ensureAuth(ctx context.Context) error {
	if c.apiKey != "" || c.password == "" {
		return nil
	}
	if _, err := c.api.Login(ctx, c.email, c.password); err != nil {
		return err
	}
	c.password = ""
	return nil
}

// resolveOwner settles the owner field before the record goes on the
// wire: an explicit override wins, then an owner the adapter extracted,
// then the email local part, then the placeholder default.
func resolveOwner(rec *record.Agent, override, email string) {
	switch {
	case override != "":
		rec.Owner = override
	case rec.Owner != "" && rec.Owner != record.DefaultOwner:
		// keep the adapter-extracted owner
	case email != "":
		if at := strings.IndexByte(email, '@'); at > 0 {
			rec.Owner = email[:at]
		}
	}
	if rec.Owner == "" {
		rec.Owner = record.DefaultOwner
	}
}

// validateEmail rejects missing or malformed addresses before any
// network call is made.
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New(errors.CodeInvalidInput, "email is required for registration", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New(errors.CodeInvalidInput, "invalid email address", err).
			WithContext("email", email)
	}
	return nil
}
