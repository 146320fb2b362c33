package context

import (
	"context"
)

// TraceContext carries the correlation IDs for one request. The trace
// middleware fills it from inbound headers (generating what is
// missing) and the logger echoes it on every line.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceContextKey struct{}

// WithTrace stores the trace IDs in the context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns the trace IDs, or nil outside a traced request.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}
