package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// txBeginner lo cumple *pgxpool.Conn: la transacción corre sobre esa única conexión.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// runInTx inicia una transacción en conn, ejecuta fn y hace Commit o Rollback.
// Al terminar, la conexión vuelve a modo auto-commit aunque fn falle.
func runInTx(ctx context.Context, conn txBeginner, log *logger.Logger, fn func(tx pgx.Tx) error) error {
	txID := uuid.NewString()
	tx, err := conn.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	// Cubre pánicos en fn; tras Commit o Rollback es un no-op.
	defer func() { _ = tx.Rollback(ctx) }()
	log.Debug().Str("tx_id", txID).Msg("transacción iniciada")

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error().Err(rbErr).Str("tx_id", txID).Msg("rollback fallido")
		} else {
			log.Debug().Err(err).Str("tx_id", txID).Msg("transacción revertida")
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	log.Debug().Str("tx_id", txID).Msg("transacción confirmada")
	return nil
}
