package tournament

import (
	"time"

	"github.com/crichq/pavilion/internal/team"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TournamentFormat string

const (
	FormatT20  TournamentFormat = "T20"
	FormatODI  TournamentFormat = "ODI"
	FormatTest TournamentFormat = "TEST"
)

// DefaultOversLimit is the overs allotment matches inherit from the format.
// Test matches get a per-day allotment since the scoring pipeline counts
// overs regardless of format.
func (f TournamentFormat) DefaultOversLimit() int {
	switch f {
	case FormatODI:
		return 50
	case FormatTest:
		return 90
	default:
		return 20
	}
}

// DefaultPowerplay is the format's fielding-restriction overs.
func (f TournamentFormat) DefaultPowerplay() int {
	switch f {
	case FormatODI:
		return 10
	case FormatTest:
		return 0
	default:
		return 6
	}
}

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is a round-robin competition between entered teams.
type Tournament struct {
	gorm.Model
	Name   string           `json:"name" gorm:"not null;index"`
	Season string           `json:"season,omitempty"`
	Format TournamentFormat `json:"format" gorm:"not null;default:'T20'"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Status TournamentStatus `json:"status" gorm:"index;default:'upcoming'"`

	// FormatDetails carries format overrides as free-form JSON, e.g.
	// {"overs_limit": 10, "powerplay_overs": 3} for a shortened exhibition.
	FormatDetails datatypes.JSON `json:"format_details,omitempty"`

	Teams []TournamentTeam `json:"teams,omitempty" gorm:"foreignKey:TournamentID"`
}

// TournamentTeam is a team's entry into a tournament.
type TournamentTeam struct {
	gorm.Model
	TournamentID uint      `json:"tournament_id" gorm:"index;not null;uniqueIndex:idx_tournament_team"`
	TeamID       uint      `json:"team_id" gorm:"index;not null;uniqueIndex:idx_tournament_team"`
	Team         team.Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// --- Request DTOs ---

type CreateTournamentRequest struct {
	Name          string           `json:"name" binding:"required,min=3,max=100"`
	Season        string           `json:"season,omitempty"`
	Format        TournamentFormat `json:"format" binding:"required,oneof=T20 ODI TEST"`
	StartDate     time.Time        `json:"start_date" binding:"required"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	FormatDetails datatypes.JSON   `json:"format_details,omitempty"`
}

type UpdateTournamentRequest struct {
	Name      *string           `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Season    *string           `json:"season,omitempty"`
	StartDate *time.Time        `json:"start_date,omitempty"`
	EndDate   *time.Time        `json:"end_date,omitempty"`
	Status    *TournamentStatus `json:"status,omitempty" binding:"omitempty,oneof=upcoming ongoing completed"`
}

type AddTeamRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

type GenerateFixturesRequest struct {
	// FirstMatchAt anchors the schedule; defaults to the tournament start date.
	FirstMatchAt *time.Time `json:"first_match_at,omitempty"`
	// GapHours spaces consecutive fixtures; defaults to 24.
	GapHours int   `json:"gap_hours,omitempty" binding:"omitempty,min=1,max=336"`
	VenueID  *uint `json:"venue_id,omitempty"`
	// DoubleRoundRobin schedules home and away legs.
	DoubleRoundRobin bool `json:"double_round_robin,omitempty"`
}
