package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/cornerstone-church/site/pkg/httpserver"
	"github.com/cornerstone-church/site/pkg/logger"
	"github.com/cornerstone-church/site/pkg/mongo"
	"github.com/cornerstone-church/site/pkg/pg"
	"github.com/cornerstone-church/site/pkg/redis"
)

// resources opens backing services on first use, so a deployment only
// connects to what its drivers select. Every opened service contributes a
// readiness check and is closed by Close.
type resources struct {
	cfg appConfig
	log *slog.Logger

	pool   *pgxpool.Pool
	rdb    *goredis.Client
	mdb    *mongodrv.Client
	checks []httpserver.Check
	closer []func(context.Context) error
}

func newResources(cfg appConfig, log *slog.Logger) *resources {
	return &resources{cfg: cfg, log: log}
}

func (r *resources) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if r.pool != nil {
		return r.pool, nil
	}
	pool, err := pg.Connect(ctx, r.cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	r.pool = pool
	r.checks = append(r.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	r.closer = append(r.closer, func(context.Context) error {
		pool.Close()
		return nil
	})
	r.log.InfoContext(ctx, "connected to postgres", logger.Component("resources"))
	return pool, nil
}

func (r *resources) redis(ctx context.Context) (*goredis.Client, error) {
	if r.rdb != nil {
		return r.rdb, nil
	}
	client, err := redis.Connect(ctx, r.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	r.rdb = client
	r.checks = append(r.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	r.closer = append(r.closer, func(context.Context) error { return client.Close() })
	r.log.InfoContext(ctx, "connected to redis", logger.Component("resources"))
	return client, nil
}

func (r *resources) mongo(ctx context.Context) (*mongodrv.Database, error) {
	if r.mdb == nil {
		client, err := mongo.Connect(ctx, r.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		r.mdb = client
		r.checks = append(r.checks, httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)})
		r.closer = append(r.closer, client.Disconnect)
		r.log.InfoContext(ctx, "connected to mongo", logger.Component("resources"))
	}
	return r.mdb.Database(r.cfg.Mongo.Database), nil
}

// onClose registers fn to run during Close.
func (r *resources) onClose(fn func(context.Context) error) {
	r.closer = append(r.closer, fn)
}

// Close releases everything in reverse order of acquisition.
func (r *resources) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closer) - 1; i >= 0; i-- {
		if err := r.closer[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closer = nil
	return errors.Join(errs...)
}
