package sqlstore

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-dao/internal/domain/entity"
)

// Los SELECT usan alias en minúscula: PostgreSQL pliega identificadores sin comillas y
// MySQL/SQLite devuelven el alias tal cual, así el mapeo de sqlx es el mismo en los tres.

type customerRow struct {
	ID        int    `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Street    string `db:"street"`
	City      string `db:"city"`
}

func (r customerRow) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Street:    r.Street,
		City:      r.City,
	}
}

type invoiceRow struct {
	ID         int             `db:"id"`
	CustomerID int             `db:"customer_id"`
	Total      decimal.Decimal `db:"total"`
}

type itemRow struct {
	InvoiceID int             `db:"invoice_id"`
	LineIndex int             `db:"line_index"`
	ProductID int             `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}

func (r itemRow) toEntity() *entity.Item {
	return &entity.Item{
		InvoiceID: r.InvoiceID,
		LineIndex: r.LineIndex,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
	}
}
