package entity

import "github.com/shopspring/decimal"

// Item representa una línea de factura. La clave es (InvoiceID, LineIndex) y LineIndex
// coincide con la posición del producto en la petición de creación.
type Item struct {
	InvoiceID int
	LineIndex int
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal // precio del producto al momento de facturar
}

// Cost devuelve Quantity * UnitPrice. Solo para mostrar: el total persistido lo calcula la base.
func (i Item) Cost() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
