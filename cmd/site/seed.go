package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/pkg/logger"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load events, classes and ministries from a YAML file into postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.Content.SeedFile
			}
			if file == "" {
				return errors.New("no seed file: pass --file or set CONTENT_SEED_FILE")
			}

			seed, err := content.LoadSeedFile(file)
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
			if err := seed.Apply(ctx, content.NewPGSource(pool)); err != nil {
				return err
			}

			log.InfoContext(ctx, "content seeded",
				logger.Component("seed"),
				slog.Int("events", len(seed.Events)),
				slog.Int("classes", len(seed.Classes)),
				slog.Int("ministries", len(seed.Ministries)),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (defaults to CONTENT_SEED_FILE)")
	return cmd
}
