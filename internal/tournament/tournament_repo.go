package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// TournamentRepository defines methods to interact with tournament data.
type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	UpdateTournament(t *Tournament) error
	DeleteTournament(id uint) error
	GetTournaments(filters map[string]interface{}, page, pageSize int) ([]Tournament, int64, error)

	AddTeam(entry *TournamentTeam) error
	RemoveTeam(tournamentID, teamID uint) error
	GetEntry(tournamentID, teamID uint) (*TournamentTeam, error)
	GetEntries(tournamentID uint) ([]TournamentTeam, error)

	WithTransaction(txFunc func(TournamentRepository) error) error
}

// GormTournamentRepository implements TournamentRepository using GORM.
type GormTournamentRepository struct {
	db *gorm.DB
}

func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) WithTransaction(txFunc func(TournamentRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormTournamentRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormTournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *GormTournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var t Tournament
	err := r.db.Preload("Teams.Team").First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) UpdateTournament(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *GormTournamentRepository) DeleteTournament(id uint) error {
	return r.db.Delete(&Tournament{}, id).Error
}

func (r *GormTournamentRepository) GetTournaments(filters map[string]interface{}, page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_date DESC").Offset(offset).Limit(pageSize).Find(&tournaments).Error
	if err != nil {
		return nil, 0, err
	}
	return tournaments, total, nil
}

func (r *GormTournamentRepository) AddTeam(entry *TournamentTeam) error {
	return r.db.Create(entry).Error
}

func (r *GormTournamentRepository) RemoveTeam(tournamentID, teamID uint) error {
	return r.db.Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).
		Delete(&TournamentTeam{}).Error
}

func (r *GormTournamentRepository) GetEntry(tournamentID, teamID uint) (*TournamentTeam, error) {
	var entry TournamentTeam
	err := r.db.Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *GormTournamentRepository) GetEntries(tournamentID uint) ([]TournamentTeam, error) {
	var entries []TournamentTeam
	err := r.db.Preload("Team").Where("tournament_id = ?", tournamentID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
