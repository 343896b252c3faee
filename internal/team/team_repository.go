package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines methods to interact with team and contract data.
type TeamRepository interface {
	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamsByIDs(ids []uint) ([]Team, error)
	UpdateTeam(t *Team) error
	DeleteTeam(id uint) error
	GetTeams(filters map[string]interface{}, page, pageSize int) ([]Team, int64, error)

	CreateContract(c *Contract) error
	UpdateContract(c *Contract) error
	GetContractByID(id uint) (*Contract, error)
	GetActiveContract(teamID, playerID uint) (*Contract, error)
	GetActiveContractForPlayer(playerID uint) (*Contract, error)
	GetActiveContracts(teamID uint) ([]Contract, error)
	GetContractHistory(playerID uint) ([]Contract, error)

	WithTransaction(txFunc func(TeamRepository) error) error
}

// GormTeamRepository implements TeamRepository using GORM.
type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormTeamRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormTeamRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *GormTeamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	err := r.db.Preload("Captain").Preload("ViceCaptain").First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTeamRepository) GetTeamsByIDs(ids []uint) ([]Team, error) {
	var teams []Team
	if len(ids) == 0 {
		return teams, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *GormTeamRepository) UpdateTeam(t *Team) error {
	return r.db.Save(t).Error
}

func (r *GormTeamRepository) DeleteTeam(id uint) error {
	return r.db.Delete(&Team{}, id).Error
}

func (r *GormTeamRepository) GetTeams(filters map[string]interface{}, page, pageSize int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *GormTeamRepository) CreateContract(c *Contract) error {
	return r.db.Create(c).Error
}

func (r *GormTeamRepository) UpdateContract(c *Contract) error {
	return r.db.Save(c).Error
}

func (r *GormTeamRepository) GetContractByID(id uint) (*Contract, error) {
	var c Contract
	if err := r.db.Preload("Player").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *GormTeamRepository) GetActiveContract(teamID, playerID uint) (*Contract, error) {
	var c Contract
	err := r.db.Where("team_id = ? AND player_id = ? AND is_active = ?", teamID, playerID, true).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *GormTeamRepository) GetActiveContractForPlayer(playerID uint) (*Contract, error) {
	var c Contract
	err := r.db.Where("player_id = ? AND is_active = ?", playerID, true).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *GormTeamRepository) GetActiveContracts(teamID uint) ([]Contract, error) {
	var contracts []Contract
	err := r.db.Preload("Player").Where("team_id = ? AND is_active = ?", teamID, true).Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *GormTeamRepository) GetContractHistory(playerID uint) ([]Contract, error) {
	var contracts []Contract
	err := r.db.Where("player_id = ?", playerID).Order("start_date DESC").Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
