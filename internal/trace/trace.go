// Package trace wires csvseek into Datadog tracing. Tracing is off
// unless CSVSEEK_TRACE=1, so the tracer is inert in normal use.
package trace

import (
	"context"
	"os"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// MaybeTrace starts the tracer if CSVSEEK_TRACE=1 and reports
// whether it did. When it returns true the caller must call Stop
// before exiting to flush spans.
func MaybeTrace(serviceVersion string) bool {
	if os.Getenv("CSVSEEK_TRACE") != "1" {
		return false
	}
	tracer.Start(
		tracer.WithService("csvseek"),
		tracer.WithServiceVersion(serviceVersion),
	)
	return true
}

// Stop flushes and stops the tracer.
func Stop() {
	tracer.Stop()
}

// StartSpan starts a span for one CLI command. When the tracer was
// never started this is a no-op span, so callers need not check.
func StartSpan(name string) (ddtrace.Span, context.Context) {
	return tracer.StartSpanFromContext(context.Background(), name)
}
