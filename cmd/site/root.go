package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cornerstone-church/site/pkg/clientip"
	"github.com/cornerstone-church/site/pkg/config"
	"github.com/cornerstone-church/site/pkg/logger"
	"github.com/cornerstone-church/site/pkg/requestid"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "site",
		Short:         "Cornerstone church site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"},
		"dotenv files to load before reading the environment (missing files are skipped)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

// load reads the dotenv files, parses the app config and builds the logger.
func (o *rootOptions) load() (appConfig, *slog.Logger, error) {
	var present []string
	for _, f := range o.envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return appConfig{}, nil, err
		}
	}
	if err := config.LoadEnvFiles(present...); err != nil {
		return appConfig{}, nil, err
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, nil, err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)
	return cfg, log, nil
}
