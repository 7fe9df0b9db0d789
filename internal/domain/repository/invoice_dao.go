package repository

import (
	"context"

	"github.com/jhoicas/invoice-dao/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceDAO define el puerto de acceso a datos de clientes, facturas e ítems.
// Cada llamada usa su propia conexión y la libera antes de retornar.
type InvoiceDAO interface {
	// TotalForCustomer suma Invoice.Total del cliente; 0 si no tiene facturas o no existe.
	TotalForCustomer(ctx context.Context, customerID int) (decimal.Decimal, error)
	// NameOfCustomer devuelve el apellido del cliente; ok es false si no existe.
	NameOfCustomer(ctx context.Context, customerID int) (name string, ok bool, err error)
	NumberOfCustomers(ctx context.Context) (int, error)
	NumberOfInvoicesForCustomer(ctx context.Context, customerID int) (int, error)
	// FindCustomer devuelve nil, nil si el cliente no existe.
	FindCustomer(ctx context.Context, customerID int) (*entity.Customer, error)
	// CustomersInCity compara City por igualdad exacta. El orden no está definido.
	CustomersInCity(ctx context.Context, city string) ([]*entity.Customer, error)
	// CreateInvoice crea la factura y una línea por producto en una sola transacción.
	// productIDs y quantities son paralelos; si sus longitudes difieren retorna
	// domain.ErrInvalidInput sin escribir nada.
	CreateInvoice(ctx context.Context, customer *entity.Customer, productIDs, quantities []int) (int, error)
	// FindInvoice devuelve nil, nil si la factura no existe.
	FindInvoice(ctx context.Context, invoiceID int) (*entity.Invoice, error)
	// ItemsOfInvoice lista las líneas ordenadas por LineIndex.
	ItemsOfInvoice(ctx context.Context, invoiceID int) ([]*entity.Item, error)
}
