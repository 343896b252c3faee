package player

import (
	"time"

	"gorm.io/gorm"
)

// Role labels are derived from capability flags rather than stored as a
// hierarchy: which statistics matter for a player is a function of what
// they do on the field.
type Role string

const (
	RoleBatsman      Role = "batsman"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "all_rounder"
	RoleWicketkeeper Role = "wicketkeeper"
)

// Player is a league cricketer. Career columns are written only by the
// statistics finalizer after a match completes; they are never touched
// mid-match.
type Player struct {
	gorm.Model
	Name         string     `json:"name" gorm:"not null;index"`
	Nationality  string     `json:"nationality" gorm:"index"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	BattingStyle string     `json:"batting_style,omitempty"` // "right_hand", "left_hand"
	BowlingStyle string     `json:"bowling_style,omitempty"` // e.g. "right_arm_fast", "left_arm_orthodox"

	CanBat      bool `json:"can_bat" gorm:"default:true"`
	CanBowl     bool `json:"can_bowl" gorm:"default:false"`
	KeepsWicket bool `json:"keeps_wicket" gorm:"default:false"`

	// Batting career figures.
	MatchesPlayed      int     `json:"matches_played" gorm:"default:0"`
	BattingInnings     int     `json:"batting_innings" gorm:"default:0"`
	RunsScored         int     `json:"runs_scored" gorm:"default:0"`
	BallsFaced         int     `json:"balls_faced" gorm:"default:0"`
	NotOuts            int     `json:"not_outs" gorm:"default:0"`
	HighestScore       int     `json:"highest_score" gorm:"default:0"`
	Hundreds           int     `json:"hundreds" gorm:"default:0"`
	Fifties            int     `json:"fifties" gorm:"default:0"`
	Fours              int     `json:"fours" gorm:"default:0"`
	Sixes              int     `json:"sixes" gorm:"default:0"`
	BattingAverage     float64 `json:"batting_average" gorm:"default:0"`
	BattingStrikeRate  float64 `json:"batting_strike_rate" gorm:"default:0"`

	// Bowling career figures.
	BowlingInnings      int     `json:"bowling_innings" gorm:"default:0"`
	BallsBowled         int     `json:"balls_bowled" gorm:"default:0"`
	RunsConceded        int     `json:"runs_conceded" gorm:"default:0"`
	WicketsTaken        int     `json:"wickets_taken" gorm:"default:0"`
	Maidens             int     `json:"maidens" gorm:"default:0"`
	BowlingAverage      float64 `json:"bowling_average" gorm:"default:0"`
	EconomyRate         float64 `json:"economy_rate" gorm:"default:0"`
	BestBowlingWickets  int     `json:"best_bowling_wickets" gorm:"default:0"`
	BestBowlingRuns     int     `json:"best_bowling_runs" gorm:"default:0"`
	FiveWicketHauls     int     `json:"five_wicket_hauls" gorm:"default:0"`

	// Fielding career figures.
	Catches   int `json:"catches" gorm:"default:0"`
	Stumpings int `json:"stumpings" gorm:"default:0"`
	RunOuts   int `json:"run_outs" gorm:"default:0"`

	StatsUpdatedAt *time.Time `json:"stats_updated_at,omitempty"`
}

// RoleLabel derives the display role from the capability flags.
func (p *Player) RoleLabel() Role {
	switch {
	case p.KeepsWicket:
		return RoleWicketkeeper
	case p.CanBat && p.CanBowl:
		return RoleAllRounder
	case p.CanBowl:
		return RoleBowler
	default:
		return RoleBatsman
	}
}

type CreatePlayerRequest struct {
	Name         string     `json:"name" binding:"required,min=2,max=100"`
	Nationality  string     `json:"nationality,omitempty" binding:"max=60"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	BattingStyle string     `json:"batting_style,omitempty" binding:"omitempty,oneof=right_hand left_hand"`
	BowlingStyle string     `json:"bowling_style,omitempty" binding:"max=60"`
	Role         string     `json:"role" binding:"required,oneof=batsman bowler all_rounder wicketkeeper"`
}

type UpdatePlayerRequest struct {
	Name         *string    `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Nationality  *string    `json:"nationality,omitempty" binding:"omitempty,max=60"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	BattingStyle *string    `json:"batting_style,omitempty" binding:"omitempty,oneof=right_hand left_hand"`
	BowlingStyle *string    `json:"bowling_style,omitempty" binding:"omitempty,max=60"`
	Role         *string    `json:"role,omitempty" binding:"omitempty,oneof=batsman bowler all_rounder wicketkeeper"`
}

// ApplyRole sets the capability flags for a role label.
func (p *Player) ApplyRole(role Role) {
	switch role {
	case RoleBatsman:
		p.CanBat, p.CanBowl, p.KeepsWicket = true, false, false
	case RoleBowler:
		p.CanBat, p.CanBowl, p.KeepsWicket = false, true, false
	case RoleAllRounder:
		p.CanBat, p.CanBowl, p.KeepsWicket = true, true, false
	case RoleWicketkeeper:
		p.CanBat, p.CanBowl, p.KeepsWicket = true, false, true
	}
}
