package storage

import (
	"errors"

	"github.com/ericogr/ninja-arena/internal/game"

	"gorm.io/gorm"
)

const (
	defaultLeaderboardLimit = 10
	defaultHistoryLimit     = 20
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetProfile(accountID string) (*game.Profile, error) {
	var p game.Profile
	if err := r.db.Where("account_id = ?", accountID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	p.EnsureCollections()
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.Profile) error {
	return saveProfile(r.db, p)
}

func (r *sqliteRepository) SaveOutcome(p *game.Profile, rec *game.BattleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := saveProfile(tx, p); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
}

// saveProfile adopts the primary key of an existing row for the same account
// so Save updates instead of violating the unique account index.
func saveProfile(db *gorm.DB, p *game.Profile) error {
	if p.ID == 0 {
		var existing game.Profile
		err := db.Select("id", "created_at").Where("account_id = ?", p.AccountID).First(&existing).Error
		switch {
		case err == nil:
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	return db.Save(p).Error
}

// GetTopProfiles returns top N profiles ordered by wins desc, then lifetime
// coins desc.
func (r *sqliteRepository) GetTopProfiles(limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	var profiles []game.Profile
	if err := r.db.Model(&game.Profile{}).
		Order("stats_wins DESC").
		Order("lifetime_coins DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) GetRecentBattles(accountID string, limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var recs []game.BattleRecord
	if err := r.db.Where("account_id = ?", accountID).
		Order("finished_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
