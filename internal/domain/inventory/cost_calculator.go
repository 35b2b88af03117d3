package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// CostLot una entrada valorizada (compra) para el costo promedio.
type CostLot struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// WeightedAverageCost pliega CostCalculator sobre las compras en el orden recibido.
// Las salidas no cambian el costo promedio, por eso solo se consideran entradas.
func WeightedAverageCost(lots []CostLot) decimal.Decimal {
	stock := decimal.Zero
	cost := decimal.Zero
	for _, l := range lots {
		cost = CostCalculator(stock, cost, l.Quantity, l.UnitCost)
		stock = stock.Add(l.Quantity)
	}
	return cost.Round(4)
}
