package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado al recibir mercancía
// (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantRecibida * CostoRecibido)) / (StockActual + CantRecibida)
//
// El stock actual puede ser negativo (backorder); en ese caso se promedia
// solo sobre la cantidad recibida, porque un stock negativo no aporta costo.
func AverageCost(currentStock, currentCost, receivedQty, receivedCost decimal.Decimal) decimal.Decimal {
	if currentStock.LessThan(decimal.Zero) {
		currentStock = decimal.Zero
	}
	sum := currentStock.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(receivedQty.Mul(receivedCost))
	return num.Div(sum)
}
