package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// day parsea "2006-01-02" en UTC.
func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("fecha de test inválida %q: %v", s, err)
	}
	return d
}

func rec(t *testing.T, sku string, qty float64, date string) inventory.MovementRecord {
	t.Helper()
	return inventory.MovementRecord{SKU: sku, Quantity: qty, Date: day(t, date)}
}
