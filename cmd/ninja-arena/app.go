package main

import (
	"math/rand"
	"time"

	"github.com/ericogr/ninja-arena/internal/config"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/progression"
	"github.com/ericogr/ninja-arena/internal/service"
	"github.com/ericogr/ninja-arena/internal/storage"
)

func loadEnvOrExit() config.Env {
	e, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	return e
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path, "hint": "provide a JSON or YAML file with a 'fighter_list' array (id,name,max_hp,attack_min,attack_max,special_multiplier,special_required) and optional weapon_list, max_upgrade_level, win_reward_base, server.address"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

func newArena(cfg *config.LoadedConfig, repo storage.Repository) *service.Arena {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return service.NewArena(service.Options{
		Repo:      repo,
		Catalog:   cfg.Catalog,
		Evaluator: progression.NewEvaluator(rand.New(rand.NewSource(rng.Int63())), cfg.WinRewardBase),
		Rand:      rng,
	})
}
