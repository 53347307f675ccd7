package main

import (
	"os"

	"github.com/ghuser/restock/cmd/restockctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
