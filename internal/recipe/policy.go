package recipe

import (
	"context"
	"errors"
	"time"

	"parfumai/internal/ai"
	applog "parfumai/internal/log"
)

// Completer is the provider call a Policy wraps. *ai.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, req ai.Request) (string, error)
}

// Source tells callers whether a result came from the provider or the
// offline generator.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Reason explains why the fallback path was taken. It is empty for live results.
type Reason string

const (
	ReasonMissingCredential Reason = "missing_credential"
	ReasonQuota             Reason = "quota"
	ReasonUnauthorized      Reason = "unauthorized"
	ReasonUpstreamStatus    Reason = "upstream_status"
	ReasonTransport         Reason = "transport"
	ReasonMalformed         Reason = "malformed_response"
	ReasonEmptyResponse     Reason = "empty_response"
	ReasonFormat            Reason = "format"
)

// Outcome is the value produced by Resolve together with its provenance.
type Outcome[T any] struct {
	Value  T
	Source Source
	Reason Reason
}

// Observer receives one notification per resolved call.
type Observer interface {
	ObserveOutcome(operation, provider string, source Source, reason Reason, elapsed time.Duration)
}

// Policy decides between the live provider and the offline generator. A nil
// Completer means the provider is not configured.
type Policy struct {
	Completer Completer
	Provider  string
	Observer  Observer
}

// Resolve calls the provider once and parses its text. Every failure (a
// missing credential, a transport or status error, an empty body or text
// that parse rejects) is logged and replaced by fallback. Resolve never
// returns an error.
func Resolve[T any](ctx context.Context, p *Policy, operation string, req ai.Request, parse func(string) (T, bool), fallback func() T) Outcome[T] {
	start := time.Now()
	out := resolve(ctx, p, operation, req, parse, fallback)
	if p.Observer != nil {
		p.Observer.ObserveOutcome(operation, p.Provider, out.Source, out.Reason, time.Since(start))
	}
	return out
}

func resolve[T any](ctx context.Context, p *Policy, operation string, req ai.Request, parse func(string) (T, bool), fallback func() T) Outcome[T] {
	degrade := func(reason Reason, err error) Outcome[T] {
		args := []any{"operation", operation, "provider", p.Provider, "reason", string(reason)}
		if err != nil {
			args = append(args, "error", err)
		}
		if reason == ReasonMissingCredential {
			applog.Debug(ctx, "provider not configured, using offline generator", args...)
		} else {
			applog.Warn(ctx, "provider call failed, using offline generator", args...)
		}
		return Outcome[T]{Value: fallback(), Source: SourceFallback, Reason: reason}
	}

	if p.Completer == nil {
		return degrade(ReasonMissingCredential, nil)
	}

	text, err := p.Completer.Complete(ctx, req)
	if err != nil {
		return degrade(classify(err), err)
	}

	value, ok := parse(text)
	if !ok {
		return degrade(ReasonFormat, nil)
	}

	applog.Debug(ctx, "provider call succeeded", "operation", operation, "provider", p.Provider)
	return Outcome[T]{Value: value, Source: SourceLive}
}

func classify(err error) Reason {
	var statusErr *ai.StatusError
	switch {
	case errors.Is(err, ai.ErrMissingCredential):
		return ReasonMissingCredential
	case ai.IsQuota(err):
		return ReasonQuota
	case ai.IsUnauthorized(err):
		return ReasonUnauthorized
	case errors.As(err, &statusErr):
		return ReasonUpstreamStatus
	case errors.Is(err, ai.ErrEmptyResponse):
		return ReasonEmptyResponse
	case errors.Is(err, ai.ErrMalformedResponse):
		return ReasonMalformed
	default:
		return ReasonTransport
	}
}
