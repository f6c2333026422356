package main

import (
	"floorplan-service/internal/common/logging"
	"floorplan-service/internal/floorplan/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the table store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())

			db, err := repository.OpenSQLite(opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.New(db).Init(cmd.Context(), opts.cfg.MigrationsPath); err != nil {
				return err
			}
			logger.Info("migrations applied", "db", opts.cfg.DBPath, "file", opts.cfg.MigrationsPath)
			return nil
		},
	}
}
