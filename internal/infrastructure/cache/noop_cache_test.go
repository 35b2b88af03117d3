package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/cache"
)

func TestNoopCache_NuncaAcierta(t *testing.T) {
	var c ports.ReportCache = cache.NewNoopCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 0, []byte("v"), time.Minute))
	_, _, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
