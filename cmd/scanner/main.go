package main

import (
	"os"

	"github.com/tickerwatch/scanner/cmd/scanner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
