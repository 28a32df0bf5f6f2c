package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ericogr/ninja-arena/internal/dedupe"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/progression"
	"github.com/ericogr/ninja-arena/internal/roster"
	"github.com/ericogr/ninja-arena/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBattleNotFound  = errors.New("battle not found")
	ErrBattleNotYours  = errors.New("battle belongs to another account")
	ErrInvalidName     = errors.New("invalid display name")
)

// ProfileRepo is the persistence the arena needs. storage.Repository
// satisfies it.
type ProfileRepo interface {
	GetProfile(accountID string) (*game.Profile, error)
	SaveProfile(p *game.Profile) error
	SaveOutcome(p *game.Profile, rec *game.BattleRecord) error
}

type Options struct {
	Repo      ProfileRepo
	Catalog   *roster.Catalog
	Evaluator *progression.Evaluator
	// Rand seeds opponent picks and per-battle generators.
	Rand  *rand.Rand
	Now   func() time.Time
	NewID func() string
}

// Arena owns the live battles of the process and the profile operations
// around them.
type Arena struct {
	repo      ProfileRepo
	catalog   *roster.Catalog
	evaluator *progression.Evaluator
	shop      *progression.Shop
	now       func() time.Time
	newID     func() string

	rngMu sync.Mutex
	rng   *rand.Rand

	battles *registry
	locks   *keyedMutex
}

func NewArena(opts Options) *Arena {
	if opts.Catalog == nil {
		opts.Catalog = roster.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Evaluator == nil {
		opts.Evaluator = progression.NewEvaluator(rand.New(rand.NewSource(opts.Rand.Int63())), 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Arena{
		repo:      opts.Repo,
		catalog:   opts.Catalog,
		evaluator: opts.Evaluator,
		shop:      &progression.Shop{Catalog: opts.Catalog, Evaluator: opts.Evaluator},
		now:       opts.Now,
		newID:     opts.NewID,
		rng:       opts.Rand,
		battles:   newRegistry(),
		locks:     newKeyedMutex(),
	}
}

func (a *Arena) Catalog() *roster.Catalog { return a.catalog }

// ActiveBattles returns the number of battles held in memory.
func (a *Arena) ActiveBattles() int { return a.battles.len() }

// loadProfile reads a profile for display, collapsing concurrent loads of
// the same account. Each caller receives its own copy.
func (a *Arena) loadProfile(accountID string) (*game.Profile, error) {
	v, err, _ := dedupe.ProfileGroup.Do(dedupe.ProfileKey(accountID), func() (interface{}, error) {
		return a.repo.GetProfile(accountID)
	})
	if err != nil {
		return nil, mapProfileErr(err)
	}
	p, _ := v.(*game.Profile)
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

// fetchProfile reads a profile for a write under the account lock. It skips
// the singleflight group so an in-flight read started before the lock was
// taken cannot hand back a stale row.
func (a *Arena) fetchProfile(accountID string) (*game.Profile, error) {
	p, err := a.repo.GetProfile(accountID)
	if err != nil {
		return nil, mapProfileErr(err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	p.EnsureCollections()
	return p, nil
}

func mapProfileErr(err error) error {
	if errors.Is(err, storage.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	return err
}

func (a *Arena) newRand() *rand.Rand {
	a.rngMu.Lock()
	seed := a.rng.Int63()
	a.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}
