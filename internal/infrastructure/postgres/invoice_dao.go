package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/entity"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

var _ repository.InvoiceDAO = (*InvoiceDAO)(nil)

// ConnProvider entrega conexiones listas para usar; *pgxpool.Pool lo cumple.
type ConnProvider interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

// InvoiceDAO implementación de InvoiceDAO sobre pgx. Cada método adquiere su propia
// conexión del proveedor y la libera al retornar.
type InvoiceDAO struct {
	provider ConnProvider
	log      *logger.Logger
}

// NewInvoiceDAO construye el adaptador.
func NewInvoiceDAO(provider ConnProvider, log *logger.Logger) *InvoiceDAO {
	return &InvoiceDAO{provider: provider, log: log}
}

const (
	sqlTotalForCustomer  = `SELECT COALESCE(SUM(Total), 0) AS Amount FROM Invoice WHERE CustomerID = $1`
	sqlNameOfCustomer    = `SELECT LastName FROM Customer WHERE ID = $1`
	sqlNumberOfCustomers = `SELECT COUNT(*) AS Number FROM Customer`
	sqlNumberOfInvoices  = `SELECT COUNT(*) AS Number FROM Invoice WHERE CustomerID = $1`
	sqlCustomerColumns   = `SELECT ID, FirstName, LastName, Street, City FROM Customer`
	sqlFindCustomer      = sqlCustomerColumns + ` WHERE ID = $1`
	sqlCustomersInCity   = sqlCustomerColumns + ` WHERE City = $1`
	sqlInsertInvoice     = `INSERT INTO Invoice (CustomerID) VALUES ($1) RETURNING ID`
	sqlProductPrice      = `SELECT Price FROM Product WHERE ID = $1`
	sqlInsertItem        = `INSERT INTO Item (InvoiceID, LineIndex, ProductID, Quantity, UnitPrice) VALUES ($1, $2, $3, $4, $5)`
	sqlFindInvoice       = `SELECT ID, CustomerID, Total FROM Invoice WHERE ID = $1`
	sqlItemsOfInvoice    = `SELECT InvoiceID, LineIndex, ProductID, Quantity, UnitPrice FROM Item WHERE InvoiceID = $1 ORDER BY LineIndex`
)

func (d *InvoiceDAO) withConn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := d.provider.Acquire(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer conn.Release()
	return fn(conn)
}

// TotalForCustomer suma los totales de las facturas del cliente (0 si no tiene).
func (d *InvoiceDAO) TotalForCustomer(ctx context.Context, customerID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlTotalForCustomer, customerID).Scan(&total)
	})
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "total for customer")
	}
	return total, nil
}

// NameOfCustomer obtiene el apellido del cliente.
func (d *InvoiceDAO) NameOfCustomer(ctx context.Context, customerID int) (string, bool, error) {
	var name string
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlNameOfCustomer, customerID).Scan(&name)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "name of customer")
	}
	return name, true, nil
}

// NumberOfCustomers cuenta las filas de Customer.
func (d *InvoiceDAO) NumberOfCustomers(ctx context.Context) (int, error) {
	var n int
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlNumberOfCustomers).Scan(&n)
	})
	if err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return n, nil
}

// NumberOfInvoicesForCustomer cuenta las facturas del cliente.
func (d *InvoiceDAO) NumberOfInvoicesForCustomer(ctx context.Context, customerID int) (int, error) {
	var n int
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlNumberOfInvoices, customerID).Scan(&n)
	})
	if err != nil {
		return 0, errors.Wrap(err, "count invoices")
	}
	return n, nil
}

// FindCustomer obtiene un cliente por ID.
func (d *InvoiceDAO) FindCustomer(ctx context.Context, customerID int) (*entity.Customer, error) {
	var c entity.Customer
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlFindCustomer, customerID).Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Street, &c.City,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get customer")
	}
	return &c, nil
}

// CustomersInCity lista los clientes cuya ciudad coincide exactamente.
func (d *InvoiceDAO) CustomersInCity(ctx context.Context, city string) ([]*entity.Customer, error) {
	list := []*entity.Customer{}
	err := d.withConn(ctx, func(q Querier) error {
		rows, err := q.Query(ctx, sqlCustomersInCity, city)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var c entity.Customer
			if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Street, &c.City); err != nil {
				return errors.Wrap(err, "scan customer")
			}
			list = append(list, &c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "list customers in city")
	}
	return list, nil
}

// CreateInvoice inserta la factura y sus líneas en una sola transacción y devuelve el ID generado.
// El precio de cada línea se toma de Product al momento de la inserción; el total lo calcula un trigger.
func (d *InvoiceDAO) CreateInvoice(ctx context.Context, customer *entity.Customer, productIDs, quantities []int) (int, error) {
	if customer == nil {
		return 0, errors.Wrap(domain.ErrInvalidInput, "customer requerido")
	}
	if len(productIDs) != len(quantities) {
		return 0, errors.Wrapf(domain.ErrInvalidInput, "%d productos y %d cantidades", len(productIDs), len(quantities))
	}

	conn, err := d.provider.Acquire(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "acquire connection")
	}
	defer conn.Release()

	var invoiceID int
	err = runInTx(ctx, conn, d.log, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sqlInsertInvoice, customer.ID).Scan(&invoiceID); err != nil {
			return errors.Wrap(err, "insert invoice")
		}
		for i, productID := range productIDs {
			var price decimal.Decimal
			if err := tx.QueryRow(ctx, sqlProductPrice, productID).Scan(&price); err != nil {
				return errors.Wrapf(err, "price of product %d", productID)
			}
			tag, err := tx.Exec(ctx, sqlInsertItem, invoiceID, i, productID, quantities[i], price)
			if err != nil {
				return errors.Wrapf(err, "insert item %d", i)
			}
			if tag.RowsAffected() == 0 {
				return errors.Wrapf(domain.ErrWriteFailed, "insert item %d", i)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	d.log.Info().
		Int("invoice_id", invoiceID).
		Int("customer_id", customer.ID).
		Int("items", len(productIDs)).
		Msg("factura creada")
	return invoiceID, nil
}

// FindInvoice obtiene la cabecera de una factura.
func (d *InvoiceDAO) FindInvoice(ctx context.Context, invoiceID int) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := d.withConn(ctx, func(q Querier) error {
		return q.QueryRow(ctx, sqlFindInvoice, invoiceID).Scan(&inv.ID, &inv.CustomerID, &inv.Total)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get invoice")
	}
	return &inv, nil
}

// ItemsOfInvoice obtiene todas las líneas de una factura.
func (d *InvoiceDAO) ItemsOfInvoice(ctx context.Context, invoiceID int) ([]*entity.Item, error) {
	list := []*entity.Item{}
	err := d.withConn(ctx, func(q Querier) error {
		rows, err := q.Query(ctx, sqlItemsOfInvoice, invoiceID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it entity.Item
			if err := rows.Scan(&it.InvoiceID, &it.LineIndex, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
				return errors.Wrap(err, "scan item")
			}
			list = append(list, &it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "list invoice items")
	}
	return list, nil
}
