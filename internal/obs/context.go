package obs

import "context"

type routePatternKey struct{}

// WithRoutePattern records the matched chi pattern so metrics and logs
// label by template (/orders/manager/orders/{orderID}) instead of the
// raw path, keeping order-id cardinality out of Prometheus.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routePatternKey{}, pattern)
}

// RoutePatternFromContext returns the recorded pattern, or "" when the
// router matched nothing.
func RoutePatternFromContext(ctx context.Context) string {
	v, _ := ctx.Value(routePatternKey{}).(string)
	return v
}
