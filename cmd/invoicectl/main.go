package main

import (
	"os"

	"github.com/jhoicas/invoice-dao/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
