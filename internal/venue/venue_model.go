package venue

import "gorm.io/gorm"

// Venue is a ground where matches are played.
type Venue struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	City      string `json:"city" gorm:"index"`
	Country   string `json:"country"`
	Capacity  int    `json:"capacity" gorm:"default:0"`
	PitchType string `json:"pitch_type,omitempty"` // "green", "dry", "dusty", "flat"
	Ends      string `json:"ends,omitempty"`       // e.g. "Pavilion End / Media End"
}

type CreateVenueRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=150"`
	City      string `json:"city" binding:"required,max=100"`
	Country   string `json:"country,omitempty" binding:"max=100"`
	Capacity  int    `json:"capacity,omitempty" binding:"omitempty,min=0"`
	PitchType string `json:"pitch_type,omitempty" binding:"omitempty,oneof=green dry dusty flat"`
	Ends      string `json:"ends,omitempty" binding:"max=150"`
}

type UpdateVenueRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	City      *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Country   *string `json:"country,omitempty" binding:"omitempty,max=100"`
	Capacity  *int    `json:"capacity,omitempty" binding:"omitempty,min=0"`
	PitchType *string `json:"pitch_type,omitempty" binding:"omitempty,oneof=green dry dusty flat"`
	Ends      *string `json:"ends,omitempty" binding:"omitempty,max=150"`
}
