package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	lots := []inventory.CostLot{
		{Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(2)},
		{Quantity: decimal.NewFromInt(30), UnitCost: decimal.NewFromInt(4)},
	}
	// (10*2 + 30*4) / 40 = 3.5
	assert.True(t, decimal.RequireFromString("3.5").Equal(inventory.WeightedAverageCost(lots)))
	assert.True(t, inventory.WeightedAverageCost(nil).IsZero())
}

func TestCostCalculator_SinStockDevuelveCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, got.IsZero())
}
