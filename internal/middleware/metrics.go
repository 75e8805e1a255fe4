package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/validation"
)

// MetricsInterceptor records the outcome and latency of every RPC call.
// Rejected expense writes are also counted by validation kind.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
				if vErr, ok := validation.AsError(err); ok {
					m.ValidationFailed(vErr.KindName())
				}
			}
			m.ObserveRPC(req.Spec().Procedure, code, time.Since(start).Seconds())
			return resp, err
		}
	}
}
