package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-dao/pkg/config"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// NewPool crea el pool de conexiones PostgreSQL que actúa como proveedor de conexiones del DAO.
// El pool (tamaño, vida de conexiones, health checks) es responsabilidad de pgxpool.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "parse DSN")
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Con nivel debug o trace se registran las sentencias SQL vía zerolog.
	zl := log.Zerolog()
	if lvl := zl.GetLevel(); lvl <= zerolog.DebugLevel {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(zl),
			LogLevel: traceLevel(lvl),
		}
	}

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "crear pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping DB")
	}
	return pool, nil
}

func traceLevel(lvl zerolog.Level) tracelog.LogLevel {
	if lvl <= zerolog.TraceLevel {
		return tracelog.LogLevelTrace
	}
	return tracelog.LogLevelDebug
}
