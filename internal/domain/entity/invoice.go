package entity

import "github.com/shopspring/decimal"

// Invoice representa la cabecera de una factura.
// Total lo mantiene un trigger de la base de datos (suma de Quantity * UnitPrice de sus ítems).
type Invoice struct {
	ID         int
	CustomerID int
	Total      decimal.Decimal
}
