package stats

import (
	"errors"

	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/player"
	"github.com/crichq/pavilion/internal/tournament"
	"gorm.io/gorm"
)

// StatsRepository is the read side of the statistics module, plus the one
// write it owns: persisting recomputed career rows.
type StatsRepository interface {
	GetPlayer(id uint) (*player.Player, error)
	SavePlayer(p *player.Player) error

	GetMatch(id uint) (*match.Match, error)
	GetInningsForMatch(matchID uint) ([]match.Innings, error)
	GetInningsByIDs(ids []uint) ([]match.Innings, error)
	GetBattingEntries(inningsID uint) ([]match.BattingEntry, error)
	GetBowlingFigures(inningsID uint) ([]match.BowlingFigures, error)
	GetDeliveries(inningsID uint) ([]match.BallDelivery, error)
	GetFallOfWickets(inningsID uint) ([]match.FallOfWicket, error)

	// Career folds scan only finalized data: completed matches.
	GetCareerBattingEntries(playerID uint) ([]match.BattingEntry, error)
	GetCareerBowlingFigures(playerID uint) ([]match.BowlingFigures, error)
	GetFieldingDeliveries(playerID uint) ([]match.BallDelivery, error)

	GetCompletedMatchesForTeam(teamID uint) ([]match.Match, error)
	GetCompletedMatchesForTournament(tournamentID uint) ([]match.Match, error)
	GetTournamentEntries(tournamentID uint) ([]tournament.TournamentTeam, error)
	GetAbandonedMatchesForTournament(tournamentID uint) ([]match.Match, error)
}

// GormStatsRepository implements StatsRepository using GORM.
type GormStatsRepository struct {
	db *gorm.DB
}

func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) GetPlayer(id uint) (*player.Player, error) {
	var p player.Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormStatsRepository) SavePlayer(p *player.Player) error {
	return r.db.Save(p).Error
}

func (r *GormStatsRepository) GetMatch(id uint) (*match.Match, error) {
	var m match.Match
	err := r.db.Preload("HomeTeam").Preload("AwayTeam").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *GormStatsRepository) GetInningsForMatch(matchID uint) ([]match.Innings, error) {
	var innings []match.Innings
	err := r.db.Where("match_id = ?", matchID).Order("innings_number ASC").Find(&innings).Error
	if err != nil {
		return nil, err
	}
	return innings, nil
}

func (r *GormStatsRepository) GetInningsByIDs(ids []uint) ([]match.Innings, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var innings []match.Innings
	if err := r.db.Where("id IN ?", ids).Find(&innings).Error; err != nil {
		return nil, err
	}
	return innings, nil
}

func (r *GormStatsRepository) GetBattingEntries(inningsID uint) ([]match.BattingEntry, error) {
	var entries []match.BattingEntry
	err := r.db.Preload("Player").Where("innings_id = ?", inningsID).Order("position ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormStatsRepository) GetBowlingFigures(inningsID uint) ([]match.BowlingFigures, error) {
	var figures []match.BowlingFigures
	err := r.db.Preload("Player").Where("innings_id = ?", inningsID).Find(&figures).Error
	if err != nil {
		return nil, err
	}
	return figures, nil
}

func (r *GormStatsRepository) GetDeliveries(inningsID uint) ([]match.BallDelivery, error) {
	var deliveries []match.BallDelivery
	err := r.db.Where("innings_id = ?", inningsID).Order("id ASC").Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormStatsRepository) GetFallOfWickets(inningsID uint) ([]match.FallOfWicket, error) {
	var fows []match.FallOfWicket
	err := r.db.Where("innings_id = ?", inningsID).Order("wicket_number ASC").Find(&fows).Error
	if err != nil {
		return nil, err
	}
	return fows, nil
}

func (r *GormStatsRepository) GetCareerBattingEntries(playerID uint) ([]match.BattingEntry, error) {
	var entries []match.BattingEntry
	err := r.db.
		Joins("JOIN innings ON innings.id = batting_entries.innings_id").
		Joins("JOIN matches ON matches.id = innings.match_id").
		Where("batting_entries.player_id = ? AND matches.status = ?", playerID, match.StatusCompleted).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormStatsRepository) GetCareerBowlingFigures(playerID uint) ([]match.BowlingFigures, error) {
	var figures []match.BowlingFigures
	err := r.db.
		Joins("JOIN innings ON innings.id = bowling_figures.innings_id").
		Joins("JOIN matches ON matches.id = innings.match_id").
		Where("bowling_figures.player_id = ? AND matches.status = ?", playerID, match.StatusCompleted).
		Find(&figures).Error
	if err != nil {
		return nil, err
	}
	return figures, nil
}

func (r *GormStatsRepository) GetFieldingDeliveries(playerID uint) ([]match.BallDelivery, error) {
	var deliveries []match.BallDelivery
	err := r.db.
		Joins("JOIN innings ON innings.id = ball_deliveries.innings_id").
		Joins("JOIN matches ON matches.id = innings.match_id").
		Where("ball_deliveries.fielder_id = ? AND ball_deliveries.is_wicket = ? AND matches.status = ?",
			playerID, true, match.StatusCompleted).
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormStatsRepository) GetCompletedMatchesForTeam(teamID uint) ([]match.Match, error) {
	var matches []match.Match
	err := r.db.
		Where("(home_team_id = ? OR away_team_id = ?) AND status = ?", teamID, teamID, match.StatusCompleted).
		Order("completed_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *GormStatsRepository) GetCompletedMatchesForTournament(tournamentID uint) ([]match.Match, error) {
	var matches []match.Match
	err := r.db.
		Where("tournament_id = ? AND status = ?", tournamentID, match.StatusCompleted).
		Order("completed_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *GormStatsRepository) GetAbandonedMatchesForTournament(tournamentID uint) ([]match.Match, error) {
	var matches []match.Match
	err := r.db.
		Where("tournament_id = ? AND status = ?", tournamentID, match.StatusAbandoned).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *GormStatsRepository) GetTournamentEntries(tournamentID uint) ([]tournament.TournamentTeam, error) {
	var entries []tournament.TournamentTeam
	err := r.db.Preload("Team").Where("tournament_id = ?", tournamentID).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
