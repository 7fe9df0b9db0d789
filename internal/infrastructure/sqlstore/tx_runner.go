package sqlstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// runInTx desactiva el auto-commit de conn durante fn y hace Commit o Rollback.
// Cuando retorna, la conexión vuelve a auto-commit aunque fn haya fallado.
func runInTx(ctx context.Context, conn *sqlx.Conn, log *logger.Logger, fn func(tx *sqlx.Tx) error) error {
	txID := uuid.NewString()
	// Aislamiento por defecto del proveedor.
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()
	log.Debug().Str("tx_id", txID).Msg("transacción iniciada")

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("tx_id", txID).Msg("rollback fallido")
		} else {
			log.Debug().Err(err).Str("tx_id", txID).Msg("transacción revertida")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	log.Debug().Str("tx_id", txID).Msg("transacción confirmada")
	return nil
}
