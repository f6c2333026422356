package main

import (
	"fmt"
	"text/tabwriter"

	"floorplan-service/internal/common/logging"
	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/repository"
	"floorplan-service/internal/floorplan/service"

	"github.com/spf13/cobra"
)

func newLayoutCmd(opts *options) *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print every table with its resolved position and any overlaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.OpenSQLite(opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.New(db)
			if err := repo.Init(cmd.Context(), opts.cfg.MigrationsPath); err != nil {
				return err
			}

			editor := service.NewEditor(repo, nil, opts.cfg.Engine, logging.FromContext(cmd.Context()))
			if err := editor.Refresh(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tCAPACITY\tSHAPE\tX\tY\tPLACED")
			numbers := make(map[string]int)
			for _, t := range editor.Tables() {
				numbers[t.ID] = t.Number
				fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\t%.2f\t%t\n",
					t.Number, t.Capacity, t.Footprint.Shape, t.Position.X, t.Position.Y, t.Placed)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, pair := range editor.Overlaps(geometry.Canvas{Width: width, Height: height}) {
				fmt.Fprintf(out, "overlap: table %d and table %d\n", numbers[pair[0]], numbers[pair[1]])
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 1000, "canvas width in pixels for overlap checks")
	cmd.Flags().Float64Var(&height, "height", 800, "canvas height in pixels for overlap checks")
	return cmd
}
