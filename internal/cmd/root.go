package cmd

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Consultas de clientes y creación de facturas",
	Long: `Herramienta de línea de comandos sobre el DAO de clientes y facturas.

La conexión se configura con variables de entorno (o .env):
  DB_DRIVER     pgx | postgres | mysql | sqlite
  DATABASE_URL  DSN completo (opcional)
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE, DB_SQLITE_PATH

Ejemplos:
  invoicectl customers find 2
  invoicectl customers city Paris
  invoicectl invoices create 2 --product 1,2 --quantity 3,4`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs en nivel debug (incluye SQL)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "salida sin colores")

	rootCmd.SilenceUsage = true
}
