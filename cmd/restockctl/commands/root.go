// Package commands implements restockctl, the operator CLI for the restock
// service: schema migrations and offline supplier email previews.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/ghuser/restock/cmd/restockctl/commands.version=...".
var version = "dev"

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	// Same .env the services read; real environment variables win.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "restockctl",
		Short:         "Operator tools for the restock service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(migrateCmd(), previewCmd(), versionCmd())
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
