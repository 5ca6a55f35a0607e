package main

import (
	"github.com/cornerstone-church/site/internal/relay"
	"github.com/cornerstone-church/site/internal/store"
	"github.com/cornerstone-church/site/internal/web"
	"github.com/cornerstone-church/site/pkg/email"
	"github.com/cornerstone-church/site/pkg/httpserver"
	"github.com/cornerstone-church/site/pkg/mongo"
	"github.com/cornerstone-church/site/pkg/pg"
	"github.com/cornerstone-church/site/pkg/ratelimiter"
	"github.com/cornerstone-church/site/pkg/redis"
)

const (
	contentMemory   = "memory"
	contentPostgres = "postgres"

	stateMemory = "memory"
	stateRedis  = "redis"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"cornerstone-site"`

	HTTP     httpserver.Config
	Relay    relay.Config
	Email    email.Config
	Store    store.Config
	Postgres pg.Config
	Redis    redis.Config
	Mongo    mongo.Config
	Content  contentConfig
	Forms    formsConfig
	Admin    web.AdminCredentials

	// TrustedIPHeaders name proxy headers that carry the client address.
	TrustedIPHeaders []string `env:"HTTP_TRUSTED_IP_HEADERS" envSeparator:","`
}

type contentConfig struct {
	Driver   string `env:"CONTENT_DRIVER" envDefault:"memory"`
	SeedFile string `env:"CONTENT_SEED_FILE"`
}

type formsConfig struct {
	OverflowEnabled bool `env:"FORMS_OVERFLOW_ENABLED" envDefault:"false"`
	// GuardDriver and RateLimitStore pick where idempotency keys and rate
	// buckets live: memory for a single instance, redis when scaled out.
	GuardDriver    string `env:"FORMS_GUARD_DRIVER" envDefault:"memory"`
	RateLimitStore string `env:"FORMS_RATE_LIMIT_STORE" envDefault:"memory"`
	RateLimit      ratelimiter.Config
}
