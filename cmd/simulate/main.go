package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/ericogr/ninja-arena/internal/config"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/roster"
)

// summary aggregates a batch of auto-played battles.
type summary struct {
	Fighter      string  `json:"fighter"`
	Opponent     string  `json:"opponent,omitempty"`
	Difficulty   int     `json:"difficulty"`
	Battles      int     `json:"battles"`
	Wins         int     `json:"wins"`
	WinRate      float64 `json:"win_rate"`
	AvgTurns     float64 `json:"avg_turns"`
	HighestHit   int     `json:"highest_hit"`
	SpecialsUsed int     `json:"specials_used"`
}

type options struct {
	fighter    string
	opponent   string
	difficulty int
	battles    int
	seed       int64
	levels     int
}

// simulate plays o.battles auto-mode battles. An empty opponent picks a
// random one per battle.
func simulate(cat *roster.Catalog, o options) (summary, error) {
	fighter, err := cat.Get(o.fighter)
	if err != nil {
		return summary{}, err
	}
	if err := engine.ValidateDifficulty(o.difficulty); err != nil {
		return summary{}, err
	}
	levels := map[string]int{}
	for _, w := range cat.Weapons() {
		levels[w.ID] = o.levels
	}
	rng := rand.New(rand.NewSource(o.seed))
	s := summary{Fighter: fighter.ID, Opponent: o.opponent, Difficulty: o.difficulty}
	turns := 0
	for i := 0; i < o.battles; i++ {
		var opp game.FighterDefinition
		if o.opponent != "" {
			opp, err = cat.Get(o.opponent)
		} else {
			opp, err = cat.RandomOpponent(rng, fighter.ID)
		}
		if err != nil {
			return summary{}, err
		}
		out, err := playAuto(engine.Options{
			ID:           fmt.Sprintf("sim-%d", i),
			Player:       fighter,
			Opponent:     opp,
			PlayerLevels: levels,
			Armory:       cat.Armory(),
			Difficulty:   o.difficulty,
			Rand:         rand.New(rand.NewSource(rng.Int63())),
		})
		if err != nil {
			return summary{}, err
		}
		s.Battles++
		if out.PlayerWon() {
			s.Wins++
		}
		turns += out.Turns
		s.SpecialsUsed += out.PlayerSpecials
		if out.HighestHit > s.HighestHit {
			s.HighestHit = out.HighestHit
		}
	}
	if s.Battles > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Battles)
		s.AvgTurns = float64(turns) / float64(s.Battles)
	}
	return s, nil
}

func playAuto(opts engine.Options) (engine.Outcome, error) {
	b, err := engine.NewBattle(opts)
	if err != nil {
		return engine.Outcome{}, err
	}
	if err := b.SetAutoMode(true); err != nil {
		return engine.Outcome{}, err
	}
	for !b.Resolved() {
		if _, err := b.Advance(); err != nil {
			return engine.Outcome{}, err
		}
	}
	return b.Outcome()
}

func writeSummary(w io.Writer, s summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func main() {
	var o options
	configPath := flag.String("config", os.Getenv("NINJA_CONFIG"), "roster config file (JSON or YAML); built-in roster when empty")
	flag.StringVar(&o.fighter, "fighter", "lloyd", "player fighter id")
	flag.StringVar(&o.opponent, "opponent", "", "opponent fighter id; random when empty")
	flag.IntVar(&o.difficulty, "difficulty", game.DefaultDifficulty, "difficulty 1..10")
	flag.IntVar(&o.battles, "n", 1000, "number of battles")
	flag.Int64Var(&o.seed, "seed", time.Now().UnixNano(), "random seed")
	flag.IntVar(&o.levels, "levels", 0, "upgrade level applied to every weapon")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": *configPath})
	}
	s, err := simulate(cfg.Catalog, o)
	if err != nil {
		logging.Fatal("Simulation failed", err, nil)
	}
	if err := writeSummary(os.Stdout, s); err != nil {
		logging.Fatal("Failed to write summary", err, nil)
	}
}
