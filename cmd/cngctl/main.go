package main

import (
	"os"

	"github.com/Afox1/cngcare/cmd/cngctl/app"
)

func main() {
	if err := app.NewCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
