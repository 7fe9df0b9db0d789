package postgres_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/invoice-dao/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-dao/internal/testutil"
	"github.com/jhoicas/invoice-dao/pkg/config"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// Las pruebas contra PostgreSQL necesitan un servidor: se omiten si no está definida esta variable.
const testDatabaseURLEnv = "INVOICE_DAO_TEST_DATABASE_URL"

var postgresSchema = []string{
	`CREATE TABLE Customer (
		ID        INTEGER PRIMARY KEY,
		FirstName VARCHAR(50) NOT NULL,
		LastName  VARCHAR(50) NOT NULL,
		Street    VARCHAR(100) NOT NULL,
		City      VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE Product (
		ID    INTEGER PRIMARY KEY,
		Price NUMERIC(12, 2) NOT NULL
	)`,
	`CREATE TABLE Invoice (
		ID         SERIAL PRIMARY KEY,
		CustomerID INTEGER NOT NULL REFERENCES Customer(ID),
		Total      NUMERIC(12, 2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE Item (
		InvoiceID INTEGER NOT NULL REFERENCES Invoice(ID),
		LineIndex INTEGER NOT NULL,
		ProductID INTEGER NOT NULL REFERENCES Product(ID),
		Quantity  INTEGER NOT NULL,
		UnitPrice NUMERIC(12, 2) NOT NULL,
		PRIMARY KEY (InvoiceID, LineIndex)
	)`,
	`CREATE FUNCTION item_skip_empty() RETURNS trigger AS $$
	BEGIN
		IF NEW.Quantity = 0 THEN
			RETURN NULL;
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`CREATE TRIGGER item_skip_empty BEFORE INSERT ON Item
		FOR EACH ROW EXECUTE FUNCTION item_skip_empty()`,
	`CREATE FUNCTION item_cost() RETURNS trigger AS $$
	BEGIN
		UPDATE Invoice SET Total = Total + NEW.Quantity * NEW.UnitPrice WHERE ID = NEW.InvoiceID;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`CREATE TRIGGER item_cost AFTER INSERT ON Item
		FOR EACH ROW EXECUTE FUNCTION item_cost()`,
}

// withSearchPath agrega search_path como parámetro de sesión en la URL.
func withSearchPath(t *testing.T, databaseURL, schema string) string {
	t.Helper()
	u, err := url.Parse(databaseURL)
	require.NoError(t, err)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}

func newPostgresStore(t *testing.T) *testutil.Store {
	t.Helper()
	databaseURL := os.Getenv(testDatabaseURLEnv)
	ctx := context.Background()

	// Un esquema por test para no depender del estado de la base.
	schema := "invoice_dao_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := pgx.Connect(ctx, databaseURL)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema))
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{
		DatabaseURL: withSearchPath(t, databaseURL, schema),
		MaxConns:    2,
	}, logger.Nop())
	require.NoError(t, err)
	for _, stmt := range postgresSchema {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return &testutil.Store{
		DAO: postgres.NewInvoiceDAO(pool, logger.Nop()),
		Exec: func(ctx context.Context, query string, args ...any) error {
			_, err := pool.Exec(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
			return err
		},
		QueryInt: func(ctx context.Context, query string, args ...any) (int, error) {
			var n int
			err := pool.QueryRow(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...).Scan(&n)
			return n, err
		},
		Close: func() {
			pool.Close()
			_, _ = admin.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
			_ = admin.Close(context.Background())
		},
	}
}

func TestInvoiceDAO_Postgres(t *testing.T) {
	if os.Getenv(testDatabaseURLEnv) == "" {
		t.Skipf("%s no definida", testDatabaseURLEnv)
	}
	suite.Run(t, &testutil.InvoiceDAOSuite{NewStore: newPostgresStore})
}
