package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	loaded = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load fills the struct from the environment using `env` field tags.
// A .env file, if present, is read once per process before the first
// parse. Each struct type is parsed once and cached, so later loads of
// the same type see the same values regardless of environment changes.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// Missing .env is fine; it only exists in local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*v)

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	loaded[key] = *v
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
