package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-dao/internal/ui"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión",
	Run: func(cmd *cobra.Command, args []string) {
		u := ui.New(noColor)
		u.Header("invoicectl")
		u.KeyValue("Versión", Version)
		u.KeyValue("Commit", GitCommit)
		u.KeyValue("Compilado", BuildDate)
		u.KeyValue("Go", runtime.Version())
		u.KeyValue("OS/Arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
