package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/invoice-dao/internal/infrastructure/sqlstore"
	"github.com/jhoicas/invoice-dao/internal/testutil"
	"github.com/jhoicas/invoice-dao/pkg/config"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// Esquema mínimo equivalente al de producción, con los triggers que mantienen Invoice.Total.
var sqliteSchema = []string{
	`CREATE TABLE Customer (
		ID        INTEGER PRIMARY KEY,
		FirstName TEXT NOT NULL,
		LastName  TEXT NOT NULL,
		Street    TEXT NOT NULL,
		City      TEXT NOT NULL
	)`,
	`CREATE TABLE Product (
		ID    INTEGER PRIMARY KEY,
		Price REAL NOT NULL
	)`,
	`CREATE TABLE Invoice (
		ID         INTEGER PRIMARY KEY AUTOINCREMENT,
		CustomerID INTEGER NOT NULL REFERENCES Customer(ID),
		Total      REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE Item (
		InvoiceID INTEGER NOT NULL REFERENCES Invoice(ID),
		LineIndex INTEGER NOT NULL,
		ProductID INTEGER NOT NULL REFERENCES Product(ID),
		Quantity  INTEGER NOT NULL,
		UnitPrice REAL NOT NULL,
		PRIMARY KEY (InvoiceID, LineIndex)
	)`,
	`CREATE TRIGGER ItemSkipEmpty BEFORE INSERT ON Item WHEN NEW.Quantity = 0
	BEGIN
		SELECT RAISE(IGNORE);
	END`,
	`CREATE TRIGGER ItemCost AFTER INSERT ON Item
	BEGIN
		UPDATE Invoice SET Total = Total + NEW.Quantity * NEW.UnitPrice WHERE ID = NEW.InvoiceID;
	END`,
}

func newSQLiteStore(t *testing.T) *testutil.Store {
	t.Helper()
	ctx := context.Background()

	// Una sola conexión: la escritura posterior a un CreateInvoice fallido reutiliza
	// la misma conexión que tuvo la transacción.
	db, err := sqlstore.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "invoices.db"),
		MaxConns:   1,
	})
	require.NoError(t, err)
	for _, stmt := range sqliteSchema {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	dao, err := sqlstore.NewInvoiceDAO(db, logger.Nop())
	require.NoError(t, err)

	return &testutil.Store{
		DAO: dao,
		Exec: func(ctx context.Context, query string, args ...any) error {
			_, err := db.ExecContext(ctx, db.Rebind(query), args...)
			return err
		},
		QueryInt: func(ctx context.Context, query string, args ...any) (int, error) {
			var n int
			err := db.GetContext(ctx, &n, db.Rebind(query), args...)
			return n, err
		},
		Close: func() { _ = db.Close() },
	}
}

func TestInvoiceDAO_SQLite(t *testing.T) {
	suite.Run(t, &testutil.InvoiceDAOSuite{NewStore: newSQLiteStore})
}
