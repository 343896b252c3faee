package team

import (
	"time"

	"github.com/crichq/pavilion/internal/player"
	"gorm.io/gorm"
)

// Team represents a franchise in the league.
type Team struct {
	gorm.Model
	Name          string  `json:"name" gorm:"uniqueIndex;not null"`
	ShortName     string  `json:"short_name" gorm:"size:8"`
	City          string  `json:"city"`
	Logo          string  `json:"logo,omitempty"`
	OwnerName     string  `json:"owner_name,omitempty"`
	Budget        float64 `json:"budget" gorm:"default:0"`

	CaptainID     *uint          `json:"captain_id,omitempty" gorm:"index"`
	Captain       *player.Player `json:"captain,omitempty" gorm:"foreignKey:CaptainID"`
	ViceCaptainID *uint          `json:"vice_captain_id,omitempty" gorm:"index"`
	ViceCaptain   *player.Player `json:"vice_captain,omitempty" gorm:"foreignKey:ViceCaptainID"`
}

// Contract links a player to a team for a date range. The roster of a team
// is the set of its active contracts. A player holds at most one active
// contract at a time, enforced at signing.
type Contract struct {
	gorm.Model
	TeamID    uint          `json:"team_id" gorm:"index;not null"`
	Team      Team          `json:"-" gorm:"foreignKey:TeamID"`
	PlayerID  uint          `json:"player_id" gorm:"index;not null"`
	Player    player.Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	StartDate time.Time     `json:"start_date" gorm:"not null"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	Fee       float64       `json:"fee" gorm:"default:0"`
	IsActive  bool          `json:"is_active" gorm:"index;default:true"`
}

type CreateTeamRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	ShortName string  `json:"short_name,omitempty" binding:"omitempty,min=2,max=8"`
	City      string  `json:"city,omitempty" binding:"max=100"`
	Logo      string  `json:"logo,omitempty"`
	OwnerName string  `json:"owner_name,omitempty" binding:"max=100"`
	Budget    float64 `json:"budget,omitempty" binding:"omitempty,min=0"`
}

type UpdateTeamRequest struct {
	Name      *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	ShortName *string  `json:"short_name,omitempty" binding:"omitempty,min=2,max=8"`
	City      *string  `json:"city,omitempty" binding:"omitempty,max=100"`
	Logo      *string  `json:"logo,omitempty"`
	OwnerName *string  `json:"owner_name,omitempty" binding:"omitempty,max=100"`
	Budget    *float64 `json:"budget,omitempty" binding:"omitempty,min=0"`
}

type SignPlayerRequest struct {
	PlayerID  uint       `json:"player_id" binding:"required"`
	Fee       float64    `json:"fee,omitempty" binding:"omitempty,min=0"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type SetCaptainRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}
