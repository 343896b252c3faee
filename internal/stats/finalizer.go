package stats

import (
	"time"

	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/match"
)

// FinalizeMatch folds the completed match into career statistics. Every
// player who appears in the match has their career row recomputed from
// scratch over all finalized cards, so a re-run converges to the same
// numbers instead of drifting.
func (s *StatsService) FinalizeMatch(matchID uint) error {
	m, err := s.repo.GetMatch(matchID)
	if err != nil {
		return err
	}
	if m == nil {
		return common.NewNotFound("match", matchID)
	}
	if m.Status != match.StatusCompleted {
		return common.NewState("match", string(m.Status), "finalize statistics")
	}

	playerIDs, err := s.matchParticipants(matchID)
	if err != nil {
		return err
	}

	for playerID := range playerIDs {
		if err := s.RecomputeCareer(playerID); err != nil {
			return err
		}
	}

	config.Log.WithField("match_id", matchID).
		WithField("players", len(playerIDs)).
		Info("career statistics recomputed")
	return nil
}

// matchParticipants collects every player id appearing on a card or as a
// credited fielder in the match.
func (s *StatsService) matchParticipants(matchID uint) (map[uint]struct{}, error) {
	innings, err := s.repo.GetInningsForMatch(matchID)
	if err != nil {
		return nil, err
	}

	ids := make(map[uint]struct{})
	for _, inn := range innings {
		batting, err := s.repo.GetBattingEntries(inn.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range batting {
			ids[e.PlayerID] = struct{}{}
		}

		bowling, err := s.repo.GetBowlingFigures(inn.ID)
		if err != nil {
			return nil, err
		}
		for _, f := range bowling {
			ids[f.PlayerID] = struct{}{}
		}

		deliveries, err := s.repo.GetDeliveries(inn.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range deliveries {
			if d.IsWicket && d.FielderID != nil {
				ids[*d.FielderID] = struct{}{}
			}
		}
	}
	return ids, nil
}

// RecomputeCareer rebuilds one player's career columns as a full fold over
// their finalized cards.
func (s *StatsService) RecomputeCareer(playerID uint) error {
	p, err := s.repo.GetPlayer(playerID)
	if err != nil {
		return err
	}
	if p == nil {
		return common.NewNotFound("player", playerID)
	}

	battingEntries, err := s.repo.GetCareerBattingEntries(playerID)
	if err != nil {
		return err
	}
	bowlingFigures, err := s.repo.GetCareerBowlingFigures(playerID)
	if err != nil {
		return err
	}
	fieldingDeliveries, err := s.repo.GetFieldingDeliveries(playerID)
	if err != nil {
		return err
	}

	matchesPlayed, err := s.countMatchesPlayed(battingEntries, bowlingFigures)
	if err != nil {
		return err
	}

	batting := FoldBattingCareer(battingEntries)
	bowling := FoldBowlingCareer(bowlingFigures)
	fielding := FoldFieldingCredits(fieldingDeliveries)

	p.MatchesPlayed = matchesPlayed
	p.BattingInnings = batting.Innings
	p.RunsScored = batting.Runs
	p.BallsFaced = batting.Balls
	p.NotOuts = batting.NotOuts
	p.HighestScore = batting.HighestScore
	p.Hundreds = batting.Hundreds
	p.Fifties = batting.Fifties
	p.Fours = batting.Fours
	p.Sixes = batting.Sixes
	p.BattingAverage = batting.Average
	p.BattingStrikeRate = batting.StrikeRate

	p.BowlingInnings = bowling.Innings
	p.BallsBowled = bowling.Balls
	p.RunsConceded = bowling.RunsConceded
	p.WicketsTaken = bowling.Wickets
	p.Maidens = bowling.Maidens
	p.BowlingAverage = bowling.Average
	p.EconomyRate = bowling.Economy
	p.BestBowlingWickets = bowling.BestWickets
	p.BestBowlingRuns = bowling.BestRuns
	p.FiveWicketHauls = bowling.FiveWicketHauls

	p.Catches = fielding.Catches
	p.Stumpings = fielding.Stumpings
	p.RunOuts = fielding.RunOuts

	now := time.Now()
	p.StatsUpdatedAt = &now
	return s.repo.SavePlayer(p)
}

// countMatchesPlayed counts distinct completed matches the player appeared
// in with bat or ball.
func (s *StatsService) countMatchesPlayed(entries []match.BattingEntry, figures []match.BowlingFigures) (int, error) {
	inningsIDs := make(map[uint]struct{})
	for _, e := range entries {
		inningsIDs[e.InningsID] = struct{}{}
	}
	for _, f := range figures {
		inningsIDs[f.InningsID] = struct{}{}
	}
	if len(inningsIDs) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(inningsIDs))
	for id := range inningsIDs {
		ids = append(ids, id)
	}
	innings, err := s.repo.GetInningsByIDs(ids)
	if err != nil {
		return 0, err
	}

	matchIDs := make(map[uint]struct{})
	for _, inn := range innings {
		matchIDs[inn.MatchID] = struct{}{}
	}
	return len(matchIDs), nil
}
