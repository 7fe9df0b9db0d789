package sqlstore

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-dao/pkg/config"
)

func TestDialectFor(t *testing.T) {
	pg, err := DialectFor(config.DriverPostgres)
	require.NoError(t, err)
	assert.True(t, pg.ReturningID, "lib/pq no soporta LastInsertId")

	for _, driver := range []string{config.DriverMySQL, config.DriverSQLite} {
		d, err := DialectFor(driver)
		require.NoError(t, err)
		assert.False(t, d.ReturningID, driver)
	}

	_, err = DialectFor(config.DriverPgx)
	assert.Error(t, err, "pgx se sirve desde el paquete postgres")
}

func TestRebind_PerDriver(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO Item (InvoiceID, LineIndex, ProductID, Quantity, UnitPrice) VALUES ($1, $2, $3, $4, $5)`,
		sqlx.Rebind(sqlx.BindType(config.DriverPostgres), sqlInsertItem))
	assert.Equal(t, sqlInsertItem, sqlx.Rebind(sqlx.BindType(config.DriverMySQL), sqlInsertItem))
	assert.Equal(t, sqlInsertItem, sqlx.Rebind(sqlx.BindType(config.DriverSQLite), sqlInsertItem))
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
