package venue

import (
	"errors"

	"gorm.io/gorm"
)

type VenueRepository interface {
	CreateVenue(v *Venue) error
	GetVenueByID(id uint) (*Venue, error)
	UpdateVenue(v *Venue) error
	DeleteVenue(id uint) error
	GetVenues(filters map[string]interface{}, page, pageSize int) ([]Venue, int64, error)
}

type GormVenueRepository struct {
	db *gorm.DB
}

func NewGormVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

func (r *GormVenueRepository) CreateVenue(v *Venue) error {
	return r.db.Create(v).Error
}

func (r *GormVenueRepository) GetVenueByID(id uint) (*Venue, error) {
	var v Venue
	if err := r.db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *GormVenueRepository) UpdateVenue(v *Venue) error {
	return r.db.Save(v).Error
}

func (r *GormVenueRepository) DeleteVenue(id uint) error {
	return r.db.Delete(&Venue{}, id).Error
}

func (r *GormVenueRepository) GetVenues(filters map[string]interface{}, page, pageSize int) ([]Venue, int64, error) {
	var venues []Venue
	var total int64

	query := r.db.Model(&Venue{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&venues).Error; err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}
