package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidEnv reports a setting that parsed but is out of range.
var ErrInvalidEnv = errors.New("invalid environment setting")

// Env holds the process settings read from the environment.
type Env struct {
	Addr          string        `env:"NINJA_ADDR"`
	DBPath        string        `env:"NINJA_DB"                    envDefault:"ninja_arena.db"`
	ConfigPath    string        `env:"NINJA_CONFIG"`
	SessionSecret string        `env:"NINJA_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"NINJA_SESSION_TTL"           envDefault:"720h"`
	SecureCookie  bool          `env:"NINJA_SESSION_SECURE_COOKIE" envDefault:"false"`
	BattleTTL     time.Duration `env:"NINJA_BATTLE_TTL"            envDefault:"30m"`
	LogLevel      string        `env:"NINJA_LOG_LEVEL"             envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env with its defaults applied and rejects non-positive
// durations.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.BattleTTL <= 0 {
		return Env{}, fmt.Errorf("%w: NINJA_BATTLE_TTL must be positive, got %s", ErrInvalidEnv, e.BattleTTL)
	}
	if e.SessionTTL <= 0 {
		return Env{}, fmt.Errorf("%w: NINJA_SESSION_TTL must be positive, got %s", ErrInvalidEnv, e.SessionTTL)
	}
	return e, nil
}
