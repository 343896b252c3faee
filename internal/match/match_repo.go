package match

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines methods to interact with match scoring data.
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	UpdateMatch(m *Match) error
	DeleteMatch(id uint) error
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)
	GetMatchesForTeam(teamID uint, status string) ([]Match, error)

	CreateInnings(inn *Innings) error
	GetInningsByID(id uint) (*Innings, error)
	// GetInningsForUpdate loads the innings row under a SELECT ... FOR
	// UPDATE lock so concurrent scorer submissions serialize.
	GetInningsForUpdate(id uint) (*Innings, error)
	GetInningsForMatch(matchID uint) ([]Innings, error)
	UpdateInnings(inn *Innings) error

	CreateDelivery(d *BallDelivery) error
	GetDeliveryByKey(key string) (*BallDelivery, error)
	GetDeliveriesForInnings(inningsID uint) ([]BallDelivery, error)
	GetDeliveriesForOver(inningsID uint, overNumber int) ([]BallDelivery, error)

	CreateFallOfWicket(f *FallOfWicket) error
	GetFallOfWickets(inningsID uint) ([]FallOfWicket, error)

	CreateBattingEntry(e *BattingEntry) error
	UpdateBattingEntry(e *BattingEntry) error
	GetBattingEntry(inningsID, playerID uint) (*BattingEntry, error)
	GetBattingEntries(inningsID uint) ([]BattingEntry, error)
	CountBattingEntries(inningsID uint) (int64, error)

	CreateBowlingFigures(f *BowlingFigures) error
	UpdateBowlingFigures(f *BowlingFigures) error
	GetBowlingFigures(inningsID, playerID uint) (*BowlingFigures, error)
	GetAllBowlingFigures(inningsID uint) ([]BowlingFigures, error)

	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormMatchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	err := r.db.Preload("HomeTeam").Preload("AwayTeam").Preload("Venue").Preload("Innings").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *GormMatchRepository) UpdateMatch(m *Match) error {
	return r.db.Save(m).Error
}

func (r *GormMatchRepository) DeleteMatch(id uint) error {
	return r.db.Delete(&Match{}, id).Error
}

func (r *GormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	for key, value := range filters {
		if args, ok := value.([]interface{}); ok {
			query = query.Where(key, args...)
		} else {
			query = query.Where(key, value)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("HomeTeam").Preload("AwayTeam").Preload("Venue").
		Order("scheduled_at DESC").Offset(offset).Limit(pageSize).Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *GormMatchRepository) GetMatchesForTeam(teamID uint, status string) ([]Match, error) {
	var matches []Match
	query := r.db.Where("home_team_id = ? OR away_team_id = ?", teamID, teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("scheduled_at DESC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *GormMatchRepository) CreateInnings(inn *Innings) error {
	return r.db.Create(inn).Error
}

func (r *GormMatchRepository) GetInningsByID(id uint) (*Innings, error) {
	var inn Innings
	if err := r.db.First(&inn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inn, nil
}

func (r *GormMatchRepository) GetInningsForUpdate(id uint) (*Innings, error) {
	var inn Innings
	query := r.db
	// SQLite serializes writers on its own and rejects FOR UPDATE syntax.
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&inn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inn, nil
}

func (r *GormMatchRepository) GetInningsForMatch(matchID uint) ([]Innings, error) {
	var innings []Innings
	if err := r.db.Where("match_id = ?", matchID).Order("innings_number ASC").Find(&innings).Error; err != nil {
		return nil, err
	}
	return innings, nil
}

func (r *GormMatchRepository) UpdateInnings(inn *Innings) error {
	return r.db.Save(inn).Error
}

func (r *GormMatchRepository) CreateDelivery(d *BallDelivery) error {
	return r.db.Create(d).Error
}

func (r *GormMatchRepository) GetDeliveryByKey(key string) (*BallDelivery, error) {
	var d BallDelivery
	if err := r.db.Where("delivery_key = ?", key).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *GormMatchRepository) GetDeliveriesForInnings(inningsID uint) ([]BallDelivery, error) {
	var deliveries []BallDelivery
	err := r.db.Where("innings_id = ?", inningsID).Order("id ASC").Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormMatchRepository) GetDeliveriesForOver(inningsID uint, overNumber int) ([]BallDelivery, error) {
	var deliveries []BallDelivery
	err := r.db.Where("innings_id = ? AND over_number = ?", inningsID, overNumber).Order("id ASC").Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormMatchRepository) CreateFallOfWicket(f *FallOfWicket) error {
	return r.db.Create(f).Error
}

func (r *GormMatchRepository) GetFallOfWickets(inningsID uint) ([]FallOfWicket, error) {
	var fows []FallOfWicket
	err := r.db.Where("innings_id = ?", inningsID).Order("wicket_number ASC").Find(&fows).Error
	if err != nil {
		return nil, err
	}
	return fows, nil
}

func (r *GormMatchRepository) CreateBattingEntry(e *BattingEntry) error {
	return r.db.Create(e).Error
}

func (r *GormMatchRepository) UpdateBattingEntry(e *BattingEntry) error {
	return r.db.Save(e).Error
}

func (r *GormMatchRepository) GetBattingEntry(inningsID, playerID uint) (*BattingEntry, error) {
	var e BattingEntry
	err := r.db.Where("innings_id = ? AND player_id = ?", inningsID, playerID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *GormMatchRepository) GetBattingEntries(inningsID uint) ([]BattingEntry, error) {
	var entries []BattingEntry
	err := r.db.Preload("Player").Where("innings_id = ?", inningsID).Order("position ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormMatchRepository) CountBattingEntries(inningsID uint) (int64, error) {
	var count int64
	err := r.db.Model(&BattingEntry{}).Where("innings_id = ?", inningsID).Count(&count).Error
	return count, err
}

func (r *GormMatchRepository) CreateBowlingFigures(f *BowlingFigures) error {
	return r.db.Create(f).Error
}

func (r *GormMatchRepository) UpdateBowlingFigures(f *BowlingFigures) error {
	return r.db.Save(f).Error
}

func (r *GormMatchRepository) GetBowlingFigures(inningsID, playerID uint) (*BowlingFigures, error) {
	var f BowlingFigures
	err := r.db.Where("innings_id = ? AND player_id = ?", inningsID, playerID).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *GormMatchRepository) GetAllBowlingFigures(inningsID uint) ([]BowlingFigures, error) {
	var figures []BowlingFigures
	err := r.db.Preload("Player").Where("innings_id = ?", inningsID).Find(&figures).Error
	if err != nil {
		return nil, err
	}
	return figures, nil
}
