package sqlstore

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/entity"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

var _ repository.InvoiceDAO = (*InvoiceDAO)(nil)

// InvoiceDAO implementación de InvoiceDAO sobre database/sql. Cada método toma una
// conexión dedicada del pool (db.Connx) y la devuelve al retornar.
type InvoiceDAO struct {
	db      *sqlx.DB
	dialect Dialect
	log     *logger.Logger
}

// NewInvoiceDAO construye el adaptador; el dialecto sale del nombre del driver de db.
func NewInvoiceDAO(db *sqlx.DB, log *logger.Logger) (*InvoiceDAO, error) {
	dialect, err := DialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &InvoiceDAO{db: db, dialect: dialect, log: log}, nil
}

// Placeholders con '?'; se adaptan al driver con Rebind.
const (
	sqlTotalForCustomer  = `SELECT COALESCE(SUM(Total), 0) AS amount FROM Invoice WHERE CustomerID = ?`
	sqlNameOfCustomer    = `SELECT LastName AS last_name FROM Customer WHERE ID = ?`
	sqlNumberOfCustomers = `SELECT COUNT(*) AS number FROM Customer`
	sqlNumberOfInvoices  = `SELECT COUNT(*) AS number FROM Invoice WHERE CustomerID = ?`
	sqlCustomerColumns   = `SELECT ID AS id, FirstName AS first_name, LastName AS last_name, Street AS street, City AS city FROM Customer`
	sqlFindCustomer      = sqlCustomerColumns + ` WHERE ID = ?`
	sqlCustomersInCity   = sqlCustomerColumns + ` WHERE City = ?`
	sqlInsertInvoice     = `INSERT INTO Invoice (CustomerID) VALUES (?)`
	sqlProductPrice      = `SELECT Price AS price FROM Product WHERE ID = ?`
	sqlInsertItem        = `INSERT INTO Item (InvoiceID, LineIndex, ProductID, Quantity, UnitPrice) VALUES (?, ?, ?, ?, ?)`
	sqlFindInvoice       = `SELECT ID AS id, CustomerID AS customer_id, Total AS total FROM Invoice WHERE ID = ?`
	sqlItemsOfInvoice    = `SELECT InvoiceID AS invoice_id, LineIndex AS line_index, ProductID AS product_id, Quantity AS quantity, UnitPrice AS unit_price FROM Item WHERE InvoiceID = ? ORDER BY LineIndex`
)

func (d *InvoiceDAO) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := d.db.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer conn.Close()
	return fn(conn)
}

// get ejecuta una consulta de una fila sobre una conexión propia.
func (d *InvoiceDAO) get(ctx context.Context, dest any, query string, args ...any) error {
	return d.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, dest, conn.Rebind(query), args...)
	})
}

// TotalForCustomer suma los totales de las facturas del cliente (0 si no tiene).
func (d *InvoiceDAO) TotalForCustomer(ctx context.Context, customerID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := d.get(ctx, &total, sqlTotalForCustomer, customerID); err != nil {
		return decimal.Zero, errors.Wrap(err, "total for customer")
	}
	return total, nil
}

// NameOfCustomer obtiene el apellido del cliente.
func (d *InvoiceDAO) NameOfCustomer(ctx context.Context, customerID int) (string, bool, error) {
	var name string
	if err := d.get(ctx, &name, sqlNameOfCustomer, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "name of customer")
	}
	return name, true, nil
}

// NumberOfCustomers cuenta las filas de Customer.
func (d *InvoiceDAO) NumberOfCustomers(ctx context.Context) (int, error) {
	var n int
	if err := d.get(ctx, &n, sqlNumberOfCustomers); err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return n, nil
}

// NumberOfInvoicesForCustomer cuenta las facturas del cliente.
func (d *InvoiceDAO) NumberOfInvoicesForCustomer(ctx context.Context, customerID int) (int, error) {
	var n int
	if err := d.get(ctx, &n, sqlNumberOfInvoices, customerID); err != nil {
		return 0, errors.Wrap(err, "count invoices")
	}
	return n, nil
}

// FindCustomer obtiene un cliente por ID.
func (d *InvoiceDAO) FindCustomer(ctx context.Context, customerID int) (*entity.Customer, error) {
	var row customerRow
	if err := d.get(ctx, &row, sqlFindCustomer, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get customer")
	}
	return row.toEntity(), nil
}

// CustomersInCity lista los clientes cuya ciudad coincide con city.
// La sensibilidad a mayúsculas es la de la collation de la columna (binaria en PostgreSQL y SQLite).
func (d *InvoiceDAO) CustomersInCity(ctx context.Context, city string) ([]*entity.Customer, error) {
	var rows []customerRow
	err := d.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, conn.Rebind(sqlCustomersInCity), city)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list customers in city")
	}
	list := make([]*entity.Customer, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.toEntity())
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

	var invoiceID int
	err := d.withConn(ctx, func(conn *sqlx.Conn) error {
		return runInTx(ctx, conn, d.log, func(tx *sqlx.Tx) error {
			id, err := d.insertInvoice(ctx, tx, customer.ID)
			if err != nil {
				return errors.Wrap(err, "insert invoice")
			}
			invoiceID = id

			priceStmt, err := tx.PreparexContext(ctx, tx.Rebind(sqlProductPrice))
			if err != nil {
				return errors.Wrap(err, "prepare price lookup")
			}
			defer priceStmt.Close()
			itemStmt, err := tx.PreparexContext(ctx, tx.Rebind(sqlInsertItem))
			if err != nil {
				return errors.Wrap(err, "prepare insert item")
			}
			defer itemStmt.Close()

			for i, productID := range productIDs {
				var price decimal.Decimal
				if err := priceStmt.GetContext(ctx, &price, productID); err != nil {
					return errors.Wrapf(err, "price of product %d", productID)
				}
				res, err := itemStmt.ExecContext(ctx, invoiceID, i, productID, quantities[i], price)
				if err != nil {
					return errors.Wrapf(err, "insert item %d", i)
				}
				affected, err := res.RowsAffected()
				if err != nil {
					return errors.Wrapf(err, "insert item %d", i)
				}
				if affected == 0 {
					return errors.Wrapf(domain.ErrWriteFailed, "insert item %d", i)
				}
			}
			return nil
		})
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

func (d *InvoiceDAO) insertInvoice(ctx context.Context, tx *sqlx.Tx, customerID int) (int, error) {
	if d.dialect.ReturningID {
		var id int
		err := tx.GetContext(ctx, &id, tx.Rebind(sqlInsertInvoice+` RETURNING ID`), customerID)
		return id, err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(sqlInsertInvoice), customerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "generated key")
	}
	return int(id), nil
}

// FindInvoice obtiene la cabecera de una factura.
func (d *InvoiceDAO) FindInvoice(ctx context.Context, invoiceID int) (*entity.Invoice, error) {
	var row invoiceRow
	if err := d.get(ctx, &row, sqlFindInvoice, invoiceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get invoice")
	}
	return &entity.Invoice{ID: row.ID, CustomerID: row.CustomerID, Total: row.Total}, nil
}

// ItemsOfInvoice obtiene todas las líneas de una factura.
func (d *InvoiceDAO) ItemsOfInvoice(ctx context.Context, invoiceID int) ([]*entity.Item, error) {
	var rows []itemRow
	err := d.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, conn.Rebind(sqlItemsOfInvoice), invoiceID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list invoice items")
	}
	list := make([]*entity.Item, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.toEntity())
	}
	return list, nil
}
