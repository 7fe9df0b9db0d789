// Package sqlstore implementa el DAO de clientes y facturas sobre database/sql (vía sqlx)
// para los drivers postgres (lib/pq), mysql y sqlite (modernc).
package sqlstore

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/invoice-dao/pkg/config"
)

func init() {
	// modernc registra el driver como "sqlite", nombre que sqlx no conoce.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open abre el pool de database/sql para el driver configurado y verifica la conexión.
// El pool es el proveedor de conexiones; el DAO solo toma y devuelve conexiones.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	if _, err := DialectFor(cfg.Driver); err != nil {
		return nil, err
	}
	db, err := sqlx.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping DB")
	}
	return db, nil
}
