// Package config loads application settings from the process environment.
//
// Settings are declared as plain structs annotated with `env` tags understood by
// github.com/caarlos0/env/v11. Before the first parse the package loads a `.env`
// file from the working directory (if present) through github.com/joho/godotenv,
// so local development does not require exporting variables by hand.
//
// Each configuration type is parsed once and cached for the lifetime of the
// process. Tests that need a fresh parse call Reset.
//
// # Usage
//
//	type RelayConfig struct {
//		Endpoint string        `env:"RELAY_ENDPOINT,required"`
//		Timeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg RelayConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Explicit env files (for example from a --env-file CLI flag) are loaded with
// LoadEnvFiles before the first call to Load. Variables already present in the
// environment are never overridden.
package config
