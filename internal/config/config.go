package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/progression"
	"github.com/ericogr/ninja-arena/internal/roster"

	"gopkg.in/yaml.v3"
)

const defaultServerAddress = ":8080"

type rawConfig struct {
	FighterList     []game.FighterDefinition `json:"fighter_list" yaml:"fighter_list"`
	WeaponList      []game.Weapon            `json:"weapon_list" yaml:"weapon_list"`
	MaxUpgradeLevel int                      `json:"max_upgrade_level" yaml:"max_upgrade_level"`
	WinRewardBase   int                      `json:"win_reward_base" yaml:"win_reward_base"`
	Server          *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
}

// LoadedConfig contains the roster catalog and server settings.
type LoadedConfig struct {
	Catalog       *roster.Catalog
	ServerAddress string
	WinRewardBase int
}

// Default returns the built-in roster and weapon table.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Catalog:       roster.Default(),
		ServerAddress: defaultServerAddress,
		WinRewardBase: progression.DefaultWinRewardBase,
	}
}

// LoadConfig reads the configuration file at path. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON. The key `fighter_list` is
// required; `weapon_list` falls back to the built-in weapons. An empty path
// returns Default().
func LoadConfig(path string) (*LoadedConfig, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.FighterList) == 0 {
		return nil, fmt.Errorf("config file %s: fighter_list is empty (provide 'fighter_list' array)", path)
	}
	weapons := rc.WeaponList
	if len(weapons) == 0 {
		weapons = roster.DefaultWeapons()
	}
	if rc.MaxUpgradeLevel < 0 {
		return nil, fmt.Errorf("config file %s: max_upgrade_level must not be negative", path)
	}
	if rc.WinRewardBase < 0 {
		return nil, fmt.Errorf("config file %s: win_reward_base must not be negative", path)
	}
	catalog, err := roster.New(rc.FighterList, weapons, rc.MaxUpgradeLevel)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	out := Default()
	out.Catalog = catalog
	if rc.WinRewardBase > 0 {
		out.WinRewardBase = rc.WinRewardBase
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	return out, nil
}
