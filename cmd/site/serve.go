package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/internal/web"
	"github.com/cornerstone-church/site/pkg/clientip"
	"github.com/cornerstone-church/site/pkg/httpserver"
	"github.com/cornerstone-church/site/pkg/logger"
)

const closeTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	res := newResources(cfg, log)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := res.Close(closeCtx); err != nil {
			log.ErrorContext(closeCtx, "failed to release resources", logger.Error(err))
		}
	}()

	subs, err := res.submissions(ctx)
	if err != nil {
		return err
	}
	repo, err := res.content(ctx)
	if err != nil {
		return err
	}
	limiter, err := res.limiter(ctx)
	if err != nil {
		return err
	}

	router := web.NewRouter(web.Deps{
		Submissions:  subs,
		Content:      content.NewService(repo, content.WithLogger(log)),
		ContentAdmin: repo,
		Admin:        cfg.Admin,
		FormLimiter:  limiter,
		ClientIP:     clientip.NewResolver(cfg.TrustedIPHeaders...),
		Checks:       res.checks,
		Logger:       log,
	})

	if !cfg.Admin.Configured() {
		log.WarnContext(ctx, "admin routes disabled: ADMIN_USER or ADMIN_PASSWORD_HASH not set")
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
