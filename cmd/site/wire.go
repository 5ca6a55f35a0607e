package main

import (
	"context"
	"fmt"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/internal/relay"
	"github.com/cornerstone-church/site/internal/store"
	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/email"
	"github.com/cornerstone-church/site/pkg/ratelimiter"
)

const rateLimitPrefix = "ratelimit:forms:"

func (r *resources) relay() (submission.Relay, error) {
	cfg := r.cfg.Relay
	log := r.log

	switch cfg.Driver {
	case relay.DriverHTTP:
		return relay.NewHTTPRelay(cfg, relay.WithLogger(log))
	case relay.DriverPostmark:
		sender, err := email.NewPostmarkClient(r.cfg.Email)
		if err != nil {
			return nil, err
		}
		return relay.NewMailerRelay(sender, cfg.To, relay.WithMailerLogger(log))
	case relay.DriverDev:
		return relay.NewMailerRelay(email.NewDevSender(r.cfg.Email.DevDir), cfg.To, relay.WithMailerLogger(log))
	}
	return nil, fmt.Errorf("%w: %q", relay.ErrUnknownDriver, cfg.Driver)
}

func (r *resources) store(ctx context.Context) (submission.Store, error) {
	cfg := r.cfg.Store

	switch cfg.Driver {
	case store.DriverMemory:
		return store.NewMemory(), nil
	case store.DriverFile:
		return store.NewFile(cfg.FileDir)
	case store.DriverPostgres:
		pool, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return store.NewPostgres(pool), nil
	case store.DriverRedis:
		client, err := r.redis(ctx)
		if err != nil {
			return nil, err
		}
		return store.NewRedis(client, ""), nil
	case store.DriverMongo:
		db, err := r.mongo(ctx)
		if err != nil {
			return nil, err
		}
		s := store.NewMongo(db)
		if err := s.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case store.DriverS3:
		return store.NewS3(ctx, cfg.S3)
	}
	return nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.Driver)
}

func (r *resources) guard(ctx context.Context) (submission.Guard, error) {
	ttl := r.cfg.Store.GuardTTL

	switch r.cfg.Forms.GuardDriver {
	case stateMemory:
		return store.NewMemoryGuard(ttl), nil
	case stateRedis:
		client, err := r.redis(ctx)
		if err != nil {
			return nil, err
		}
		return store.NewRedisGuard(client, "", ttl), nil
	}
	return nil, fmt.Errorf("%w: guard %q", store.ErrUnknownDriver, r.cfg.Forms.GuardDriver)
}

func (r *resources) limiter(ctx context.Context) (*ratelimiter.Bucket, error) {
	var backend ratelimiter.Store

	switch r.cfg.Forms.RateLimitStore {
	case stateMemory:
		ms := ratelimiter.NewMemoryStore()
		r.onClose(func(context.Context) error {
			ms.Close()
			return nil
		})
		backend = ms
	case stateRedis:
		client, err := r.redis(ctx)
		if err != nil {
			return nil, err
		}
		backend = ratelimiter.NewRedisStore(client, rateLimitPrefix)
	default:
		return nil, fmt.Errorf("unknown rate limit store %q", r.cfg.Forms.RateLimitStore)
	}

	return ratelimiter.NewBucket(backend, r.cfg.Forms.RateLimit)
}

func (r *resources) submissions(ctx context.Context) (*submission.Service, error) {
	rl, err := r.relay()
	if err != nil {
		return nil, err
	}
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	g, err := r.guard(ctx)
	if err != nil {
		return nil, err
	}

	opts := []submission.ServiceOption{
		submission.WithLogger(r.log),
		submission.WithGuard(g),
	}
	if !r.cfg.Forms.OverflowEnabled {
		opts = append(opts, submission.WithDisabledForms(submission.FormOverflow))
	}
	return submission.NewService(rl, st, opts...), nil
}

// content returns the content repository selected by CONTENT_DRIVER. The
// memory driver is filled from CONTENT_SEED_FILE when one is set.
func (r *resources) content(ctx context.Context) (content.Repository, error) {
	cfg := r.cfg.Content

	switch cfg.Driver {
	case contentMemory:
		src := content.NewMemorySource()
		if cfg.SeedFile == "" {
			return src, nil
		}
		seed, err := content.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := seed.Apply(ctx, src); err != nil {
			return nil, err
		}
		return src, nil
	case contentPostgres:
		pool, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return content.NewPGSource(pool), nil
	}
	return nil, fmt.Errorf("%w: %q", content.ErrUnknownDriver, cfg.Driver)
}
