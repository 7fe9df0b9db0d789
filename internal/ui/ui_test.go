package ui_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-dao/internal/domain/entity"
	"github.com/jhoicas/invoice-dao/internal/ui"
)

func plain() (*ui.UI, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ui.UI{Out: &buf}, &buf
}

func TestCustomer_Plain(t *testing.T) {
	u, buf := plain()
	u.Customer(&entity.Customer{ID: 3, FirstName: "Victor", LastName: "Hugo", Street: "6 Place des Vosges", City: "Paris"})

	out := buf.String()
	assert.Contains(t, out, "=== Cliente 3 ===")
	assert.Contains(t, out, "Apellido:")
	assert.Contains(t, out, "Hugo")
	assert.Contains(t, out, "Paris")
}

func TestCustomers_EmptyList(t *testing.T) {
	u, buf := plain()
	u.Customers(nil)
	assert.Equal(t, "sin clientes\n", buf.String())
}

func TestInvoice_PrintsLinesAndCost(t *testing.T) {
	u, buf := plain()
	inv := &entity.Invoice{ID: 7, CustomerID: 2, Total: decimal.RequireFromString("40.5")}
	items := []*entity.Item{
		{InvoiceID: 7, LineIndex: 0, ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("10.5")},
		{InvoiceID: 7, LineIndex: 1, ProductID: 2, Quantity: 4, UnitPrice: decimal.RequireFromString("2.25")},
	}
	u.Invoice(inv, items)

	out := buf.String()
	assert.Contains(t, out, "=== Factura 7 ===")
	assert.Contains(t, out, "40.50")
	assert.Contains(t, out, "31.50")
	assert.Contains(t, out, "9.00")
}

func TestCount_ThousandsSeparator(t *testing.T) {
	u, buf := plain()
	u.Count("Clientes", 1234567)
	assert.Equal(t, "Clientes:    1.234.567\n", buf.String())
}
