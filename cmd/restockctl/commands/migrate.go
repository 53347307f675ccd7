package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghuser/restock/migrations/restock"
	"github.com/ghuser/restock/pkg/migrator"
)

func migrateCmd() *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list the restock schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(migrator.Up), string(migrator.Down), string(migrator.Status)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbURL == "" {
				return fmt.Errorf("no database url: set --database-url or DATABASE_URL")
			}
			dir := migrator.Direction(args[0])
			if err := migrator.Run(cmd.Context(), dbURL, restock.FS, dir); err != nil {
				return err
			}
			if dir != migrator.Status {
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbURL, "database-url", envOr("DATABASE_URL", ""), "Postgres connection string (default $DATABASE_URL)")
	return cmd
}
