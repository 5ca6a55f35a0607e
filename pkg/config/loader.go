package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cache struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	defaultEnvOnce sync.Once
)

// LoadEnvFiles reads the given .env files into the process environment.
// Missing files are reported; existing variables keep their values.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v. The first successful parse of a
// type is cached and later calls for the same type return the cached copy.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvOnce.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	loaded.mu.RLock()
	cached, ok := loaded.values[key]
	loaded.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	// Another goroutine may have parsed the type while we waited for the lock.
	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = parsed
	*v = parsed

	return nil
}

// MustLoad is Load for settings the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration so the next Load parses again.
func Reset() {
	loaded.mu.Lock()
	loaded.values = make(map[reflect.Type]any)
	loaded.mu.Unlock()
}
