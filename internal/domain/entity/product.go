package entity

import "github.com/shopspring/decimal"

// Product es de solo lectura para esta capa: únicamente se consulta su precio.
type Product struct {
	ID    int
	Price decimal.Decimal
}
