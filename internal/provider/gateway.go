package provider

import (
	"context"
	"sort"
	"time"
)

// Payload is a single generation request passed through the gateway.
type Payload struct {
	Prompt   string
	FileData []byte
	MIMEType string
	// Validate, when set, checks the raw response text. A non-nil return is
	// classified as bad output and the gateway falls through to the next
	// provider.
	Validate func(string) error
}

// Backend executes a generation call against one provider's API. Errors
// returned by a backend must already be classified as *GatewayError.
type Backend interface {
	Generate(ctx context.Context, model string, kind Kind, p Payload) (string, error)
	Close() error
}

type entry struct {
	spec    Spec
	backend Backend
}

// Gateway holds the ranked provider registry and dispatches calls with
// quota checks, response validation, and attempt logging.
type Gateway struct {
	entries []entry
	quota   *QuotaBook
}

// NewGateway creates an empty gateway. An empty gateway is valid: every
// Invoke simply fails soft and callers fall back to local strategies.
func NewGateway() *Gateway {
	return &Gateway{quota: NewQuotaBook()}
}

// Register adds a provider to the registry and applies its quota limit.
// Registration order does not matter; Ranked sorts by Spec.Rank.
func (g *Gateway) Register(spec Spec, backend Backend) {
	g.entries = append(g.entries, entry{spec: spec, backend: backend})
	sort.SliceStable(g.entries, func(i, j int) bool {
		return g.entries[i].spec.Rank < g.entries[j].spec.Rank
	})
	if spec.CallsPerMinute > 0 {
		g.quota.SetLimit(spec.ID, spec.CallsPerMinute)
	}
}

// Ranked returns the specs supporting kind, in fallback order.
func (g *Gateway) Ranked(kind Kind) []Spec {
	var specs []Spec
	for _, e := range g.entries {
		if e.spec.Supports(kind) {
			specs = append(specs, e.spec)
		}
	}
	return specs
}

// Quota exposes the gateway's quota book.
func (g *Gateway) Quota() *QuotaBook {
	return g.quota
}

// Close releases all registered backends. A backend shared across several
// specs is closed once.
func (g *Gateway) Close() error {
	var first error
	seen := make(map[Backend]struct{}, len(g.entries))
	for _, e := range g.entries {
		if _, ok := seen[e.backend]; ok {
			continue
		}
		seen[e.backend] = struct{}{}
		if err := e.backend.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Invoke performs one attempt against the given provider and records it in
// the sink. The quota book is consulted before the backend is called; a
// denied call costs no network round trip and is logged as rate limited.
// Every failure path returns a *GatewayError.
func (g *Gateway) Invoke(ctx context.Context, stage string, spec Spec, kind Kind, p Payload, sink AttemptSink) (string, error) {
	if sink == nil {
		sink = NopSink{}
	}

	if !g.quota.Allow(spec.ID) {
		err := &GatewayError{Provider: spec.ID, Reason: ReasonRateLimited}
		sink.Record(Attempt{
			Stage:    stage,
			Provider: spec.ID,
			Outcome:  OutcomeSoftFailure,
			Reason:   ReasonRateLimited,
			Detail:   "local quota exhausted",
		})
		return "", err
	}

	start := time.Now()
	text, err := g.find(spec).Generate(ctx, spec.Model, kind, p)
	latency := time.Since(start)

	if err == nil && text == "" {
		err = &GatewayError{Provider: spec.ID, Reason: ReasonBadOutput}
	}
	if err == nil && p.Validate != nil {
		if verr := p.Validate(text); verr != nil {
			err = &GatewayError{Provider: spec.ID, Reason: ReasonBadOutput, Cause: verr}
		}
	}

	if err != nil {
		ge, ok := err.(*GatewayError)
		if !ok {
			ge = &GatewayError{Provider: spec.ID, Reason: ReasonUnavailable, Cause: err}
		}
		detail := ""
		if ge.Cause != nil {
			detail = ge.Cause.Error()
		}
		sink.Record(Attempt{
			Stage:    stage,
			Provider: spec.ID,
			Outcome:  OutcomeSoftFailure,
			Reason:   ge.Reason,
			Detail:   detail,
			Latency:  latency,
		})
		return "", ge
	}

	sink.Record(Attempt{
		Stage:    stage,
		Provider: spec.ID,
		Outcome:  OutcomeSuccess,
		Latency:  latency,
	})
	return text, nil
}

func (g *Gateway) find(spec Spec) Backend {
	for _, e := range g.entries {
		if e.spec.ID == spec.ID {
			return e.backend
		}
	}
	return unregisteredBackend{id: spec.ID}
}

type unregisteredBackend struct{ id string }

func (b unregisteredBackend) Generate(context.Context, string, Kind, Payload) (string, error) {
	return "", &GatewayError{Provider: b.id, Reason: ReasonUnavailable}
}

func (unregisteredBackend) Close() error { return nil }
