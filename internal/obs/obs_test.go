package obs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoutePatternRoundTrip(t *testing.T) {
	ctx := WithRoutePattern(context.Background(), "/orders/manager/orders/{orderID}")
	require.Equal(t, "/orders/manager/orders/{orderID}", RoutePatternFromContext(ctx))
}

func TestRoutePatternMissing(t *testing.T) {
	require.Equal(t, "", RoutePatternFromContext(context.Background()))
}

func TestClipSQLTruncatesLongStatements(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", maxTracedSQL)
	clipped := clipSQL(long)
	require.Len(t, clipped, maxTracedSQL+3)
	require.True(t, strings.HasSuffix(clipped, "..."))
}

func TestClipSQLKeepsShortStatements(t *testing.T) {
	require.Equal(t, "SELECT 1", clipSQL("  SELECT 1\n"))
}
