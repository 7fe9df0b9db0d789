// Package datasource elige la implementación del DAO según DB_DRIVER.
package datasource

import (
	"context"

	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-dao/internal/infrastructure/sqlstore"
	"github.com/jhoicas/invoice-dao/pkg/config"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// Open crea el proveedor de conexiones del driver configurado y el DAO que lo usa.
// La función devuelta libera el proveedor; debe llamarse cuando ya no se usa el DAO.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (repository.InvoiceDAO, func(), error) {
	if cfg.Driver == config.DriverPgx {
		pool, err := postgres.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewInvoiceDAO(pool, log), pool.Close, nil
	}

	db, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	dao, err := sqlstore.NewInvoiceDAO(db, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return dao, func() { _ = db.Close() }, nil
}
