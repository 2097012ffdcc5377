// Package metrics reports program runs to Sentry.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/luthersystems/beatlisp/lisp"
)

// SentryMetrics records spans for the stages of running a program.  A
// disabled SentryMetrics does nothing.
type SentryMetrics struct {
	enabled bool
}

// Init initializes the Sentry client when dsn is non-empty.  The returned
// function flushes buffered events and must be called before the process
// exits.
func Init(dsn string, release string) (*SentryMetrics, func(), error) {
	if dsn == "" {
		return &SentryMetrics{}, func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sentry initialization failed: %w", err)
	}
	flush := func() {
		sentry.Flush(2 * time.Second)
	}
	return &SentryMetrics{enabled: true}, flush, nil
}

// StartRun starts a transaction for running the named program.  The returned
// function finishes the transaction, capturing err when it is non-nil.
func (m *SentryMetrics) StartRun(ctx context.Context, command string, program string) (context.Context, func(err error)) {
	if !m.enabled {
		return ctx, func(error) {}
	}
	transaction := sentry.StartTransaction(ctx, "beatlisp."+command)
	transaction.SetTag("program", program)
	return transaction.Context(), func(err error) {
		if err != nil {
			transaction.SetTag("success", "false")
			if lerr, ok := lisp.AsError(err); ok {
				transaction.SetTag("error.kind", lerr.Kind.String())
				transaction.SetTag("error.category", lerr.Kind.Category())
			}
			transaction.Status = sentry.SpanStatusInternalError
			sentry.CaptureException(err)
		} else {
			transaction.SetTag("success", "true")
			transaction.Status = sentry.SpanStatusOK
		}
		transaction.Finish()
	}
}

// RecordParse records parsing a program into forms.
func (m *SentryMetrics) RecordParse(ctx context.Context, forms int, duration time.Duration) {
	if !m.enabled {
		return
	}
	span := sentry.StartSpan(ctx, "beatlisp.parse")
	defer span.Finish()
	span.SetData("forms", forms)
	span.SetData("duration_ms", duration.Milliseconds())
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Parse: %d forms", forms)
}

// RecordEval records evaluating a program.
func (m *SentryMetrics) RecordEval(ctx context.Context, results int, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}
	span := sentry.StartSpan(ctx, "beatlisp.eval")
	defer span.Finish()
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("results", results)
	span.SetData("duration_ms", duration.Milliseconds())
	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Eval: %t", success)
}

// RecordSchedule records scheduling an event tree.
func (m *SentryMetrics) RecordSchedule(ctx context.Context, triggers int, length time.Duration) {
	if !m.enabled {
		return
	}
	span := sentry.StartSpan(ctx, "beatlisp.schedule")
	defer span.Finish()
	span.SetData("triggers", triggers)
	span.SetData("length_ms", length.Milliseconds())
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Schedule: %d triggers", triggers)
}
