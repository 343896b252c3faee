package match

import (
	"fmt"
	"time"

	"github.com/crichq/pavilion/internal/player"
	"github.com/crichq/pavilion/internal/team"
	"github.com/crichq/pavilion/internal/venue"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
	StatusAbandoned MatchStatus = "abandoned"
)

type InningsStatus string

const (
	InningsInProgress InningsStatus = "in_progress"
	InningsCompleted  InningsStatus = "completed"
)

// DismissalType covers the ways a batter can be out.
type DismissalType string

const (
	DismissalBowled      DismissalType = "bowled"
	DismissalCaught      DismissalType = "caught"
	DismissalLBW         DismissalType = "lbw"
	DismissalRunOut      DismissalType = "run_out"
	DismissalStumped     DismissalType = "stumped"
	DismissalHitWicket   DismissalType = "hit_wicket"
	DismissalRetiredOut  DismissalType = "retired_out"
	DismissalObstructing DismissalType = "obstructing_the_field"
	DismissalTimedOut    DismissalType = "timed_out"
)

// CreditsBowler reports whether the dismissal counts as the bowler's wicket.
func (d DismissalType) CreditsBowler() bool {
	switch d {
	case DismissalBowled, DismissalCaught, DismissalLBW, DismissalStumped, DismissalHitWicket:
		return true
	}
	return false
}

// ExtraType for runs not scored off the bat.
type ExtraType string

const (
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

// ConsumesBall reports whether a delivery carrying this extra counts as one
// of the over's six legal balls. Wides and no-balls must be re-bowled.
func (e ExtraType) ConsumesBall() bool {
	return e != ExtraWide && e != ExtraNoBall
}

// ChargedToBowler reports whether the extra runs count against the bowler's
// figures. Byes and leg-byes do not.
func (e ExtraType) ChargedToBowler() bool {
	return e == ExtraWide || e == ExtraNoBall
}

// Match is a fixture between two teams.
type Match struct {
	gorm.Model
	HomeTeamID uint      `json:"home_team_id" gorm:"index;not null"`
	HomeTeam   team.Team `json:"home_team,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayTeamID uint      `json:"away_team_id" gorm:"index;not null"`
	AwayTeam   team.Team `json:"away_team,omitempty" gorm:"foreignKey:AwayTeamID"`

	VenueID *uint        `json:"venue_id,omitempty" gorm:"index"`
	Venue   *venue.Venue `json:"venue,omitempty" gorm:"foreignKey:VenueID"`

	// TournamentID is a plain reference; tournament scheduling owns the
	// relationship.
	TournamentID *uint `json:"tournament_id,omitempty" gorm:"index"`

	ScheduledAt time.Time  `json:"scheduled_at" gorm:"index"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// OversLimit and PowerplayOvers are fixed at scheduling time, inherited
	// from the tournament format when the match belongs to one.
	OversLimit     int `json:"overs_limit" gorm:"not null"`
	PowerplayOvers int `json:"powerplay_overs" gorm:"default:6"`

	Status MatchStatus `json:"status" gorm:"index;default:'scheduled'"`

	TossWinnerTeamID *uint  `json:"toss_winner_team_id,omitempty" gorm:"index"`
	TossDecision     string `json:"toss_decision,omitempty"` // "bat" or "bowl"

	WinningTeamID *uint  `json:"winning_team_id,omitempty" gorm:"index"`
	ResultSummary string `json:"result_summary,omitempty" gorm:"type:text"`

	CustomRules datatypes.JSON `json:"custom_rules,omitempty"`

	Innings          []Innings `json:"innings,omitempty" gorm:"foreignKey:MatchID"`
	CurrentInningsID *uint     `json:"current_innings_id,omitempty"`
}

// Innings is one team's batting session. Balls is the canonical progress
// counter; Overs is its x.y rendering (10.2 = 10 overs and 2 balls).
type Innings struct {
	gorm.Model
	MatchID       uint      `json:"match_id" gorm:"index;not null"`
	InningsNumber int       `json:"innings_number" gorm:"not null"`
	BattingTeamID uint      `json:"batting_team_id" gorm:"index;not null"`
	BattingTeam   team.Team `json:"-" gorm:"foreignKey:BattingTeamID"`
	BowlingTeamID uint      `json:"bowling_team_id" gorm:"index;not null"`
	BowlingTeam   team.Team `json:"-" gorm:"foreignKey:BowlingTeamID"`

	TotalRuns    int     `json:"total_runs" gorm:"default:0"`
	TotalWickets int     `json:"total_wickets" gorm:"default:0"`
	Balls        int     `json:"balls" gorm:"default:0"`
	Overs        float64 `json:"overs" gorm:"default:0"`

	OversLimit  int           `json:"overs_limit" gorm:"not null"`
	TargetScore *int          `json:"target_score,omitempty"`
	Status      InningsStatus `json:"status" gorm:"index;default:'in_progress'"`

	// Extras breakdown.
	Extras      int `json:"extras" gorm:"default:0"`
	WideRuns    int `json:"wide_runs" gorm:"default:0"`
	NoBallRuns  int `json:"no_ball_runs" gorm:"default:0"`
	ByeRuns     int `json:"bye_runs" gorm:"default:0"`
	LegByeRuns  int `json:"leg_bye_runs" gorm:"default:0"`
	PenaltyRuns int `json:"penalty_runs" gorm:"default:0"`

	CurrentStrikerID    *uint `json:"current_striker_id,omitempty" gorm:"index"`
	CurrentNonStrikerID *uint `json:"current_non_striker_id,omitempty" gorm:"index"`

	// CurrentOverDeliveries counts every delivery of the over in progress,
	// wides and no-balls included; it resets when the over completes.
	CurrentOverDeliveries int `json:"current_over_deliveries" gorm:"default:0"`

	Deliveries    []BallDelivery `json:"deliveries,omitempty" gorm:"foreignKey:InningsID"`
	FallOfWickets []FallOfWicket `json:"fall_of_wickets,omitempty" gorm:"foreignKey:InningsID"`
}

// TableName pins the table explicitly since "innings" is its own plural.
func (Innings) TableName() string { return "innings" }

// OversFromBalls renders a legal-ball count in cricket overs notation.
func OversFromBalls(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/10
}

// DecimalOvers converts a legal-ball count to true decimal overs for rate
// arithmetic (10.3 overs notation = 10.5 decimal).
func DecimalOvers(balls int) float64 {
	return float64(balls) / 6.0
}

// BallDelivery records every ball bowled in an innings. This append-only
// log is the source of truth all charts and cards derive from.
type BallDelivery struct {
	gorm.Model
	InningsID uint `json:"innings_id" gorm:"index;not null"`

	// DeliveryKey is a client-generated UUID; its unique index makes replay
	// of the same scoring submission a conflict rather than a double count.
	DeliveryKey string `json:"delivery_key" gorm:"uniqueIndex;not null"`

	OverNumber       int `json:"over_number" gorm:"not null"`          // 1-indexed
	BallNumberInOver int `json:"ball_number_in_over" gorm:"not null"`  // 1-6, legal balls only
	DeliveryInOver   int `json:"delivery_in_over" gorm:"not null"`     // raw sequence incl. wides/no-balls

	BowlerID     uint          `json:"bowler_id" gorm:"index;not null"`
	Bowler       player.Player `json:"-" gorm:"foreignKey:BowlerID"`
	StrikerID    uint          `json:"striker_id" gorm:"index;not null"`
	Striker      player.Player `json:"-" gorm:"foreignKey:StrikerID"`
	NonStrikerID uint          `json:"non_striker_id" gorm:"index;not null"`
	NonStriker   player.Player `json:"-" gorm:"foreignKey:NonStrikerID"`

	RunsOffBat int        `json:"runs_off_bat" gorm:"default:0"`
	IsFour     bool       `json:"is_four" gorm:"default:false"`
	IsSix      bool       `json:"is_six" gorm:"default:false"`
	ExtraType  *ExtraType `json:"extra_type,omitempty"`
	ExtraRuns  int        `json:"extra_runs" gorm:"default:0"`

	IsWicket      bool           `json:"is_wicket" gorm:"default:false"`
	DismissalType *DismissalType `json:"dismissal_type,omitempty"`
	PlayerOutID   *uint          `json:"player_out_id,omitempty" gorm:"index"`
	FielderID     *uint          `json:"fielder_id,omitempty" gorm:"index"`

	IsLegal bool `json:"is_legal" gorm:"default:true"`

	// Presentation coordinates recorded by the scorer, reshaped (never
	// derived) by the wagon wheel and pitch map views.
	ShotAngle    *float64 `json:"shot_angle,omitempty"`    // degrees, 0 = straight down the ground
	ShotDistance *float64 `json:"shot_distance,omitempty"` // metres from the crease
	PitchLine    *string  `json:"pitch_line,omitempty"`    // "off", "middle", "leg", "wide_off", "wide_leg"
	PitchLength  *string  `json:"pitch_length,omitempty"`  // "full", "good", "short", "yorker", "bouncer"

	Commentary string `json:"commentary,omitempty" gorm:"type:text"`
}

// TotalRuns is everything the batting side scored off this delivery.
func (b *BallDelivery) TotalRuns() int {
	return b.RunsOffBat + b.ExtraRuns
}

// FallOfWicket records when and how a wicket fell.
type FallOfWicket struct {
	gorm.Model
	InningsID      uint          `json:"innings_id" gorm:"index;not null"`
	PlayerOutID    uint          `json:"player_out_id" gorm:"index;not null"`
	PlayerOut      player.Player `json:"-" gorm:"foreignKey:PlayerOutID"`
	ScoreAtWicket  int           `json:"score_at_wicket" gorm:"not null"`
	OversAtWicket  float64       `json:"overs_at_wicket" gorm:"not null"`
	WicketNumber   int           `json:"wicket_number" gorm:"not null"`
	BallDeliveryID uint          `json:"ball_delivery_id" gorm:"index;unique"`
}

// BattingEntry is a batter's card for one innings, maintained incrementally
// as deliveries are recorded and frozen when the innings completes.
type BattingEntry struct {
	gorm.Model
	InningsID uint          `json:"innings_id" gorm:"index;not null;uniqueIndex:idx_innings_batter"`
	PlayerID  uint          `json:"player_id" gorm:"index;not null;uniqueIndex:idx_innings_batter"`
	Player    player.Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Position  int           `json:"position" gorm:"not null"` // batting order, 1-indexed

	RunsScored int     `json:"runs_scored" gorm:"default:0"`
	BallsFaced int     `json:"balls_faced" gorm:"default:0"`
	Fours      int     `json:"fours" gorm:"default:0"`
	Sixes      int     `json:"sixes" gorm:"default:0"`
	StrikeRate float64 `json:"strike_rate" gorm:"default:0"`

	NotOut        bool           `json:"not_out" gorm:"default:true"`
	HowOut        *DismissalType `json:"how_out,omitempty"`
	BowlerID      *uint          `json:"bowler_id,omitempty" gorm:"index"` // dismissing bowler
	FielderID     *uint          `json:"fielder_id,omitempty" gorm:"index"`
}

// BowlingFigures is a bowler's card for one innings.
type BowlingFigures struct {
	gorm.Model
	InningsID uint          `json:"innings_id" gorm:"index;not null;uniqueIndex:idx_innings_bowler"`
	PlayerID  uint          `json:"player_id" gorm:"index;not null;uniqueIndex:idx_innings_bowler"`
	Player    player.Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`

	BallsBowled  int     `json:"balls_bowled" gorm:"default:0"`
	OversBowled  float64 `json:"overs_bowled" gorm:"default:0"`
	Maidens      int     `json:"maidens" gorm:"default:0"`
	RunsConceded int     `json:"runs_conceded" gorm:"default:0"`
	Wickets      int     `json:"wickets" gorm:"default:0"`
	EconomyRate  float64 `json:"economy_rate" gorm:"default:0"`
	Wides        int     `json:"wides" gorm:"default:0"`
	NoBalls      int     `json:"no_balls" gorm:"default:0"`
	Dots         int     `json:"dots" gorm:"default:0"`
}

// Figures renders classic bowling figures, e.g. "3/24".
func (bf *BowlingFigures) Figures() string {
	return fmt.Sprintf("%d/%d", bf.Wickets, bf.RunsConceded)
}

// --- Request DTOs ---

type CreateMatchRequest struct {
	HomeTeamID     uint      `json:"home_team_id" binding:"required"`
	AwayTeamID     uint      `json:"away_team_id" binding:"required"`
	VenueID        *uint     `json:"venue_id,omitempty"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
	OversLimit     int       `json:"overs_limit" binding:"required,min=1,max=50"`
	PowerplayOvers int       `json:"powerplay_overs,omitempty" binding:"omitempty,min=0,max=10"`
	TournamentID   *uint     `json:"tournament_id,omitempty"`
}

type UpdateMatchRequest struct {
	VenueID     *uint      `json:"venue_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	OversLimit  *int       `json:"overs_limit,omitempty" binding:"omitempty,min=1,max=50"`
}

type RecordTossRequest struct {
	WinnerTeamID uint   `json:"winner_team_id" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=bat bowl"`
}

type StartInningsRequest struct {
	StrikerID     uint `json:"striker_id" binding:"required"`
	NonStrikerID  uint `json:"non_striker_id" binding:"required"`
}

type ExtraInput struct {
	Type ExtraType `json:"type" binding:"required,oneof=wide no_ball bye leg_bye penalty"`
	Runs int       `json:"runs" binding:"required,min=1,max=7"`
}

type WicketInput struct {
	DismissalType DismissalType `json:"dismissal_type" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket retired_out obstructing_the_field timed_out"`
	PlayerOutID   *uint         `json:"player_out_id,omitempty"` // defaults to the striker
	FielderID     *uint         `json:"fielder_id,omitempty"`
}

type RecordDeliveryRequest struct {
	DeliveryKey string `json:"delivery_key" binding:"required,uuid"`

	BowlerID   uint `json:"bowler_id" binding:"required"`
	BatsmanID  uint `json:"batsman_id" binding:"required"` // must be the batter on strike
	RunsOffBat int  `json:"runs_off_bat" binding:"min=0,max=6"`

	Extra  *ExtraInput  `json:"extra,omitempty"`
	Wicket *WicketInput `json:"wicket,omitempty"`

	// NewBatsmanID replaces the dismissed batter; required when a wicket
	// falls and the innings continues.
	NewBatsmanID *uint `json:"new_batsman_id,omitempty"`

	ShotAngle    *float64 `json:"shot_angle,omitempty" binding:"omitempty,min=0,max=360"`
	ShotDistance *float64 `json:"shot_distance,omitempty" binding:"omitempty,min=0,max=120"`
	PitchLine    *string  `json:"pitch_line,omitempty" binding:"omitempty,oneof=off middle leg wide_off wide_leg"`
	PitchLength  *string  `json:"pitch_length,omitempty" binding:"omitempty,oneof=full good short yorker bouncer"`

	Commentary string `json:"commentary,omitempty"`
}
