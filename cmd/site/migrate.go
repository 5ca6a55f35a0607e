package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cornerstone-church/site/internal/db/migrations"
	"github.com/cornerstone-church/site/pkg/logger"
	"github.com/cornerstone-church/site/pkg/pg"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	for _, sub := range []struct {
		use       string
		short     string
		direction pg.MigrateDirection
	}{
		{"up", "Apply all pending migrations", pg.MigrateUp},
		{"down", "Roll back the most recent migration", pg.MigrateDown},
		{"status", "Print the state of every migration", pg.MigrateStatus},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := opts.load()
				if err != nil {
					return err
				}

				ctx := cmd.Context()
				res := newResources(cfg, log)
				defer func() { _ = res.Close(context.WithoutCancel(ctx)) }()

				pool, err := res.postgres(ctx)
				if err != nil {
					return err
				}
				if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, sub.direction, log.With(logger.Component("migrate"))); err != nil {
					return fmt.Errorf("migrate %s: %w", sub.use, err)
				}
				return nil
			},
		})
	}

	return cmd
}
