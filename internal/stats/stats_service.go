package stats

import (
	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/player"
)

// StatsService is the read side over finalized scoring data, plus the
// post-match finalizer. Reads never mutate, so repeating one returns the
// same numbers until another match completes.
type StatsService struct {
	repo       StatsRepository
	formLength int
}

func NewStatsService(repo StatsRepository, cfg *config.Config) *StatsService {
	return &StatsService{repo: repo, formLength: cfg.Cricket.FormStringLength}
}

// PlayerCareer is the full career view computed as a live fold.
type PlayerCareer struct {
	Player        *player.Player `json:"player"`
	MatchesPlayed int            `json:"matches_played"`
	Batting       BattingCareer  `json:"batting"`
	Bowling       BowlingCareer  `json:"bowling"`
	Fielding      FieldingCareer `json:"fielding"`
}

// GetPlayerCareer folds the player's finalized cards on demand. The same
// arithmetic the finalizer persists, so the two views always agree.
func (s *StatsService) GetPlayerCareer(playerID uint) (*PlayerCareer, error) {
	p, err := s.repo.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.NewNotFound("player", playerID)
	}

	battingEntries, err := s.repo.GetCareerBattingEntries(playerID)
	if err != nil {
		return nil, err
	}
	bowlingFigures, err := s.repo.GetCareerBowlingFigures(playerID)
	if err != nil {
		return nil, err
	}
	fieldingDeliveries, err := s.repo.GetFieldingDeliveries(playerID)
	if err != nil {
		return nil, err
	}
	matchesPlayed, err := s.countMatchesPlayed(battingEntries, bowlingFigures)
	if err != nil {
		return nil, err
	}

	return &PlayerCareer{
		Player:        p,
		MatchesPlayed: matchesPlayed,
		Batting:       FoldBattingCareer(battingEntries),
		Bowling:       FoldBowlingCareer(bowlingFigures),
		Fielding:      FoldFieldingCredits(fieldingDeliveries),
	}, nil
}

// GetTeamSummary computes a team's completed-match record and recent form.
func (s *StatsService) GetTeamSummary(teamID uint) (*TeamSummary, error) {
	matches, err := s.repo.GetCompletedMatchesForTeam(teamID)
	if err != nil {
		return nil, err
	}
	summary := ComputeTeamSummary(teamID, matches, s.formLength)
	return &summary, nil
}

// GetPointsTable builds the tournament standings with net run rate.
func (s *StatsService) GetPointsTable(tournamentID uint) ([]PointsRow, error) {
	entries, err := s.repo.GetTournamentEntries(tournamentID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, common.NewNotFound("tournament", tournamentID)
	}

	completed, err := s.repo.GetCompletedMatchesForTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	abandoned, err := s.repo.GetAbandonedMatchesForTournament(tournamentID)
	if err != nil {
		return nil, err
	}

	inningsByMatch := make(map[uint][]match.Innings, len(completed))
	for _, m := range completed {
		innings, err := s.repo.GetInningsForMatch(m.ID)
		if err != nil {
			return nil, err
		}
		inningsByMatch[m.ID] = innings
	}

	return ComputePointsTable(entries, completed, inningsByMatch, abandoned), nil
}

// InningsPhases pairs an innings with its phase breakdown.
type InningsPhases struct {
	InningsID     uint    `json:"innings_id"`
	InningsNumber int     `json:"innings_number"`
	BattingTeamID uint    `json:"batting_team_id"`
	Phases        []Phase `json:"phases"`
}

// GetMatchPhases breaks every innings of the match into powerplay, middle
// and death phases.
func (s *StatsService) GetMatchPhases(matchID uint) ([]InningsPhases, error) {
	m, err := s.repo.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}

	innings, err := s.repo.GetInningsForMatch(matchID)
	if err != nil {
		return nil, err
	}

	result := make([]InningsPhases, 0, len(innings))
	for _, inn := range innings {
		deliveries, err := s.repo.GetDeliveries(inn.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, InningsPhases{
			InningsID:     inn.ID,
			InningsNumber: inn.InningsNumber,
			BattingTeamID: inn.BattingTeamID,
			Phases:        ComputePhases(deliveries, inn.OversLimit, m.PowerplayOvers),
		})
	}
	return result, nil
}

func (s *StatsService) inningsDeliveries(inningsID uint) ([]match.BallDelivery, error) {
	deliveries, err := s.repo.GetDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	if len(deliveries) == 0 {
		return nil, nil
	}
	return deliveries, nil
}

// GetPartnerships returns the stand-by-stand walk of an innings.
func (s *StatsService) GetPartnerships(inningsID uint) ([]Partnership, error) {
	deliveries, err := s.inningsDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	return ComputePartnerships(deliveries), nil
}

// GetManhattan returns the per-over bars for an innings.
func (s *StatsService) GetManhattan(inningsID uint) ([]OverSummary, error) {
	deliveries, err := s.inningsDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	return ComputeManhattan(deliveries), nil
}

// GetWorm returns the cumulative score line for an innings.
func (s *StatsService) GetWorm(inningsID uint) ([]WormPoint, error) {
	deliveries, err := s.inningsDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	return ComputeWorm(deliveries), nil
}

// GetWagonWheel returns the filtered shot chart for an innings.
func (s *StatsService) GetWagonWheel(inningsID uint, filter WagonWheelFilter) ([]WagonWheelShot, error) {
	deliveries, err := s.inningsDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	return ComputeWagonWheel(deliveries, filter), nil
}

// GetPitchMap returns the landing-zone chart for an innings.
func (s *StatsService) GetPitchMap(inningsID uint, bowlerID uint) ([]PitchMapBall, error) {
	deliveries, err := s.inningsDeliveries(inningsID)
	if err != nil {
		return nil, err
	}
	return ComputePitchMap(deliveries, bowlerID), nil
}
