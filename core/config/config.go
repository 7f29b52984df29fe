// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration struct type is parsed once per process
// and reused on subsequent loads. A .env file, when present in the working
// directory, is loaded into the environment on first use.
//
//	type SessionConfig struct {
//		TTL        time.Duration `env:"SESSION_TTL" envDefault:"30m"`
//		CookieName string        `env:"SESSION_COOKIE" envDefault:"CSESSIONID"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilTarget is returned when Load is called with a nil or non-pointer
// target.
var ErrNilTarget = errors.New("config target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	cacheMu    sync.Mutex
	cache      = make(map[reflect.Type]any)
)

// Load parses environment variables into target, caching the result per
// struct type: subsequent calls for the same type receive a copy of the
// cached value without re-reading the environment.
func Load(target any) error {
	v := reflect.ValueOf(target)
	if target == nil || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilTarget
	}

	// Best effort: a missing .env file is not an error.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	typ := v.Elem().Type()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[typ]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse %s from environment: %w", typ, err)
	}
	cache[typ] = v.Elem().Interface()
	return nil
}

// MustLoad is Load, panicking on failure. Intended for application startup.
func MustLoad(target any) {
	if err := Load(target); err != nil {
		panic(err)
	}
}
