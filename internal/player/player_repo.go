package player

import (
	"errors"

	"gorm.io/gorm"
)

// PlayerRepository defines methods to interact with player data.
type PlayerRepository interface {
	CreatePlayer(p *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetPlayersByIDs(ids []uint) ([]Player, error)
	UpdatePlayer(p *Player) error
	DeletePlayer(id uint) error
	GetPlayers(filters map[string]interface{}, page, pageSize int) ([]Player, int64, error)
}

// GormPlayerRepository implements PlayerRepository using GORM.
type GormPlayerRepository struct {
	db *gorm.DB
}

func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

func (r *GormPlayerRepository) CreatePlayer(p *Player) error {
	return r.db.Create(p).Error
}

func (r *GormPlayerRepository) GetPlayerByID(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormPlayerRepository) GetPlayersByIDs(ids []uint) ([]Player, error) {
	var players []Player
	if len(ids) == 0 {
		return players, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *GormPlayerRepository) UpdatePlayer(p *Player) error {
	return r.db.Save(p).Error
}

func (r *GormPlayerRepository) DeletePlayer(id uint) error {
	return r.db.Delete(&Player{}, id).Error
}

func (r *GormPlayerRepository) GetPlayers(filters map[string]interface{}, page, pageSize int) ([]Player, int64, error) {
	var players []Player
	var total int64

	query := r.db.Model(&Player{})
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
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&players).Error; err != nil {
		return nil, 0, err
	}
	return players, total, nil
}
