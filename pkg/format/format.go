// Package format contiene helpers de presentación para exportaciones:
// montos con símbolo de moneda, cantidades y etiquetas de mes.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formatea un monto según la moneda ISO 4217 (ej: USD → "$1,446.00").
// Redondea a las cifras decimales de la moneda. Una moneda desconocida se
// formatea con dos decimales y el código como sufijo.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Quantity formatea unidades sin ceros sobrantes (ej: 120, 2.5).
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

var months = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d-%02d", year, int(month))
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}

// Date formatea una fecha como YYYY-MM-DD en UTC.
func Date(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
