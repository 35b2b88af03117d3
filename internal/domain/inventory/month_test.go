package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

func TestMonth_OrdenNumericoConAniosLargos(t *testing.T) {
	a := inventory.Month{Year: 9999, Month: time.December}
	b := inventory.Month{Year: 10000, Month: time.January}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Greater(t, a.String(), b.String(), "como string el orden sería el inverso")
}

func TestParseMonth(t *testing.T) {
	m, err := inventory.ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, inventory.Month{Year: 2024, Month: time.February}, m)
	assert.Equal(t, "2024-02", m.String())

	m, err = inventory.ParseMonth("12345-07")
	require.NoError(t, err)
	assert.Equal(t, 12345, m.Year)

	for _, bad := range []string{"", "2024", "2024-13", "2024-0", "abcd-01", "2024-1"} {
		_, err := inventory.ParseMonth(bad)
		assert.Error(t, err, "%q debe ser rechazado", bad)
	}
}

func TestMonthOf_Start(t *testing.T) {
	m := inventory.MonthOf(time.Date(2024, time.July, 19, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), m.Start())
}
