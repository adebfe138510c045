// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/astrasync/astrasync-go/pkg/errors"
)

// Semantic conventions for AstraSync SDK telemetry.
const (
	AttrFramework       = "astrasync.agent.framework"
	AttrAgentID         = "astrasync.agent.id"
	AttrTrustScore      = "astrasync.agent.trust_score"
	AttrCapabilityCount = "astrasync.agent.capability_count"
	AttrOperation       = "astrasync.operation"
	AttrStatus          = "astrasync.status"
	AttrErrorCode       = "astrasync.error.code"
)

// SDKMetrics tracks registrations, verifications, and API failures.
type SDKMetrics struct {
	// registrations counts Register calls by framework and outcome
	registrations metric.Int64Counter

	// verifications counts Verify calls by outcome
	verifications metric.Int64Counter

	// trustScores records the trust score distribution of normalized agents
	trustScores metric.Int64Histogram

	// apiErrors counts registry failures by error code and operation
	apiErrors metric.Int64Counter
}

// NewSDKMetrics creates the SDK metric instruments on the global meter.
func NewSDKMetrics() (*SDKMetrics, error) {
	meter := otel.Meter("astrasync/sdk")

	registrations, err := meter.Int64Counter(
		"astrasync.registrations.total",
		metric.WithDescription("Agent registrations by framework and outcome"),
	)
	if err != nil {
		return nil, err
	}

	verifications, err := meter.Int64Counter(
		"astrasync.verifications.total",
		metric.WithDescription("Agent verifications by outcome"),
	)
	if err != nil {
		return nil, err
	}

	trustScores, err := meter.Int64Histogram(
		"astrasync.trust_score",
		metric.WithDescription("Trust score distribution of normalized agents"),
		metric.WithExplicitBucketBoundaries(0, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, err
	}

	apiErrors, err := meter.Int64Counter(
		"astrasync.api.errors.total",
		metric.WithDescription("Registry API failures by error code and operation"),
	)
	if err != nil {
		return nil, err
	}

	return &SDKMetrics{
		registrations: registrations,
		verifications: verifications,
		trustScores:   trustScores,
		apiErrors:     apiErrors,
	}, nil
}

// RecordRegistration records one Register call and the trust score of
// the record it submitted.
func (m *SDKMetrics) RecordRegistration(ctx context.Context, framework, status string, trustScore int) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(AttrFramework, framework),
			attribute.String(AttrStatus, status),
		),
	)
	m.trustScores.Record(ctx, int64(trustScore),
		metric.WithAttributes(
			attribute.String(AttrFramework, framework),
		),
	)
}

// RecordVerification records one Verify call.
func (m *SDKMetrics) RecordVerification(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.verifications.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(AttrStatus, status),
		),
	)
}

// RecordAPIError records a registry failure under its taxonomy code.
func (m *SDKMetrics) RecordAPIError(ctx context.Context, operation string, err error) {
	if m == nil || err == nil {
		return
	}
	code := "UNKNOWN"
	if e := errors.AsError(err); e != nil {
		code = string(e.Code)
	}
	m.apiErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(AttrOperation, operation),
			attribute.String(AttrErrorCode, code),
		),
	)
}
