package cmd

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/internal/infrastructure/datasource"
	"github.com/jhoicas/invoice-dao/internal/ui"
	"github.com/jhoicas/invoice-dao/pkg/config"
	"github.com/jhoicas/invoice-dao/pkg/logger"
)

// runFunc es el cuerpo de un subcomando que necesita el DAO.
type runFunc func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error

// withDAO carga la configuración, abre el proveedor de conexiones y lo cierra al terminar el comando.
func withDAO(run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "cargar configuración")
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, File: cfg.Log.File})
		log.Debug().Str("driver", cfg.DB.Driver).Str("app", cfg.App.Name).Msg("abriendo conexión")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		dao, closeFn, err := datasource.Open(ctx, cfg.DB, log)
		if err != nil {
			return errors.Wrap(err, "conexión a la base de datos")
		}
		defer closeFn()

		return run(ctx, dao, ui.New(noColor), args)
	}
}

// parseID convierte un argumento posicional en ID.
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, errors.Wrapf(domain.ErrInvalidInput, "%s inválido: %q", name, arg)
	}
	return id, nil
}
