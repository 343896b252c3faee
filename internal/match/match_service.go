package match

import (
	"fmt"
	"time"

	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/team"
)

// ContractChecker answers roster membership questions. The team service
// implements it.
type ContractChecker interface {
	IsContracted(teamID, playerID uint) (bool, error)
}

// Finalizer runs after a match completes, folding the finalized scorecards
// into career aggregates. Implemented by the stats module and wired in at
// router setup.
type Finalizer interface {
	FinalizeMatch(matchID uint) error
}

// MatchService drives the match lifecycle and the ball-by-ball scoring
// pipeline.
type MatchService struct {
	repo      MatchRepository
	teams     team.TeamRepository
	roster    ContractChecker
	finalizer Finalizer
	cfg       *config.Config
}

func NewMatchService(repo MatchRepository, teams team.TeamRepository, roster ContractChecker, cfg *config.Config) *MatchService {
	return &MatchService{repo: repo, teams: teams, roster: roster, cfg: cfg}
}

// SetFinalizer attaches the post-match aggregation hook. Wired separately
// because the stats module depends on this package.
func (s *MatchService) SetFinalizer(f Finalizer) {
	s.finalizer = f
}

// CreateMatch schedules a fixture.
func (s *MatchService) CreateMatch(req CreateMatchRequest) (*Match, error) {
	if req.HomeTeamID == req.AwayTeamID {
		return nil, common.NewValidation("away_team_id", "a team cannot play itself")
	}

	for _, teamID := range []uint{req.HomeTeamID, req.AwayTeamID} {
		t, err := s.teams.GetTeamByID(teamID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, common.NewNotFound("team", teamID)
		}
	}

	powerplay := req.PowerplayOvers
	if powerplay == 0 {
		powerplay = s.cfg.Cricket.DefaultPowerplay
	}
	if powerplay > req.OversLimit {
		return nil, common.NewValidation("powerplay_overs", "powerplay cannot exceed the overs limit")
	}

	m := &Match{
		HomeTeamID:     req.HomeTeamID,
		AwayTeamID:     req.AwayTeamID,
		VenueID:        req.VenueID,
		TournamentID:   req.TournamentID,
		ScheduledAt:    req.ScheduledAt,
		OversLimit:     req.OversLimit,
		PowerplayOvers: powerplay,
		Status:         StatusScheduled,
	}
	if err := s.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMatch amends schedule details. Only scheduled matches can change.
func (s *MatchService) UpdateMatch(id uint, req UpdateMatchRequest) (*Match, error) {
	m, err := s.repo.GetMatchByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", id)
	}
	if m.Status != StatusScheduled {
		return nil, common.NewState("match", string(m.Status), "update schedule")
	}

	if req.VenueID != nil {
		m.VenueID = req.VenueID
	}
	if req.ScheduledAt != nil {
		m.ScheduledAt = *req.ScheduledAt
	}
	if req.OversLimit != nil {
		m.OversLimit = *req.OversLimit
	}
	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMatch removes a fixture that has not started. Played matches stay on
// record so career stats remain reproducible.
func (s *MatchService) DeleteMatch(id uint) error {
	m, err := s.repo.GetMatchByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return common.NewNotFound("match", id)
	}
	if m.Status != StatusScheduled {
		return common.NewState("match", string(m.Status), "delete")
	}
	return s.repo.DeleteMatch(id)
}

// RecordToss moves a scheduled match live and opens the first innings. The
// toss decision fixes which side bats first.
func (s *MatchService) RecordToss(matchID uint, req RecordTossRequest) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}
	if m.Status != StatusScheduled {
		return nil, common.NewState("match", string(m.Status), "record toss")
	}
	if req.WinnerTeamID != m.HomeTeamID && req.WinnerTeamID != m.AwayTeamID {
		return nil, common.NewValidation("winner_team_id", "toss winner must be one of the two competing teams")
	}

	battingTeamID := req.WinnerTeamID
	if req.Decision == "bowl" {
		battingTeamID = m.HomeTeamID
		if battingTeamID == req.WinnerTeamID {
			battingTeamID = m.AwayTeamID
		}
	}
	bowlingTeamID := m.HomeTeamID
	if bowlingTeamID == battingTeamID {
		bowlingTeamID = m.AwayTeamID
	}

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		inn := &Innings{
			MatchID:       m.ID,
			InningsNumber: 1,
			BattingTeamID: battingTeamID,
			BowlingTeamID: bowlingTeamID,
			OversLimit:    m.OversLimit,
			Status:        InningsInProgress,
		}
		if err := tx.CreateInnings(inn); err != nil {
			return err
		}

		now := time.Now()
		m.Status = StatusLive
		m.StartedAt = &now
		m.TossWinnerTeamID = &req.WinnerTeamID
		m.TossDecision = req.Decision
		m.CurrentInningsID = &inn.ID
		return tx.UpdateMatch(m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// StartInnings puts the two openers at the crease of the current innings.
// Both must hold active contracts with the batting team.
func (s *MatchService) StartInnings(matchID uint, req StartInningsRequest) (*Innings, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}
	if m.Status != StatusLive || m.CurrentInningsID == nil {
		return nil, common.NewState("match", string(m.Status), "start innings")
	}

	inn, err := s.repo.GetInningsByID(*m.CurrentInningsID)
	if err != nil {
		return nil, err
	}
	if inn == nil {
		return nil, common.NewNotFound("innings", *m.CurrentInningsID)
	}
	if inn.Status != InningsInProgress {
		return nil, common.NewState("innings", string(inn.Status), "start innings")
	}
	if inn.CurrentStrikerID != nil {
		return nil, common.NewState("innings", "already underway", "start innings")
	}
	if req.StrikerID == req.NonStrikerID {
		return nil, common.NewValidation("non_striker_id", "openers must be two different players")
	}

	for _, playerID := range []uint{req.StrikerID, req.NonStrikerID} {
		ok, err := s.roster.IsContracted(inn.BattingTeamID, playerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, common.NewValidation("striker_id", fmt.Sprintf("player %d is not contracted to the batting team", playerID))
		}
	}

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		for i, playerID := range []uint{req.StrikerID, req.NonStrikerID} {
			entry := &BattingEntry{
				InningsID: inn.ID,
				PlayerID:  playerID,
				Position:  i + 1,
				NotOut:    true,
			}
			if err := tx.CreateBattingEntry(entry); err != nil {
				return err
			}
		}
		inn.CurrentStrikerID = &req.StrikerID
		inn.CurrentNonStrikerID = &req.NonStrikerID
		return tx.UpdateInnings(inn)
	})
	if err != nil {
		return nil, err
	}
	return inn, nil
}

// DeliveryResult is what the scorer gets back after a ball is recorded.
type DeliveryResult struct {
	Delivery *BallDelivery   `json:"delivery"`
	Innings  *Innings        `json:"innings"`
	Outcome  DeliveryOutcome `json:"outcome"`
	Match    *Match          `json:"match,omitempty"`
}

// RecordDelivery is the heart of the scoring pipeline. It applies one ball
// atomically: the innings row is locked for the duration of the transaction,
// and the delivery key's unique index turns a replayed submission into a
// conflict instead of a double count.
func (s *MatchService) RecordDelivery(matchID uint, req RecordDeliveryRequest) (*DeliveryResult, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}
	if m.Status != StatusLive || m.CurrentInningsID == nil {
		return nil, common.NewState("match", string(m.Status), "record delivery")
	}

	result := &DeliveryResult{}
	var matchCompleted bool

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		inn, err := tx.GetInningsForUpdate(*m.CurrentInningsID)
		if err != nil {
			return err
		}
		if inn == nil {
			return common.NewNotFound("innings", *m.CurrentInningsID)
		}

		if existing, err := tx.GetDeliveryByKey(req.DeliveryKey); err != nil {
			return err
		} else if existing != nil {
			return common.NewConflict("delivery key already recorded")
		}

		in := DeliveryInput{
			BowlerID:   req.BowlerID,
			RunsOffBat: req.RunsOffBat,
			Extra:      req.Extra,
			Wicket:     req.Wicket,
		}
		if err := ValidateDelivery(inn, in); err != nil {
			return err
		}
		if req.BatsmanID != *inn.CurrentStrikerID {
			return common.NewValidation("batsman_id", "submitted batsman is not the batter on strike")
		}

		ok, err := s.roster.IsContracted(inn.BowlingTeamID, req.BowlerID)
		if err != nil {
			return err
		}
		if !ok {
			return common.NewValidation("bowler_id", "bowler is not contracted to the bowling team")
		}

		strikerID := *inn.CurrentStrikerID
		nonStrikerID := *inn.CurrentNonStrikerID

		striker, err := tx.GetBattingEntry(inn.ID, strikerID)
		if err != nil {
			return err
		}
		if striker == nil {
			return common.NewNotFound("batting entry", strikerID)
		}

		figures, err := tx.GetBowlingFigures(inn.ID, req.BowlerID)
		if err != nil {
			return err
		}
		if figures == nil {
			figures = &BowlingFigures{InningsID: inn.ID, PlayerID: req.BowlerID}
			if err := tx.CreateBowlingFigures(figures); err != nil {
				return err
			}
		}

		// The dismissed batter's card, when a wicket falls.
		outEntry := striker
		if req.Wicket != nil && req.Wicket.PlayerOutID != nil && *req.Wicket.PlayerOutID != strikerID {
			outEntry, err = tx.GetBattingEntry(inn.ID, *req.Wicket.PlayerOutID)
			if err != nil {
				return err
			}
			if outEntry == nil {
				return common.NewNotFound("batting entry", *req.Wicket.PlayerOutID)
			}
		}

		outcome := ApplyDelivery(inn, striker, outEntry, figures, in)
		result.Outcome = outcome

		delivery := &BallDelivery{
			InningsID:        inn.ID,
			DeliveryKey:      req.DeliveryKey,
			OverNumber:       outcome.OverNumber,
			BallNumberInOver: outcome.BallNumberInOver,
			DeliveryInOver:   outcome.DeliveryInOver,
			BowlerID:         req.BowlerID,
			StrikerID:        strikerID,
			NonStrikerID:     nonStrikerID,
			RunsOffBat:       req.RunsOffBat,
			IsFour:           req.RunsOffBat == 4,
			IsSix:            req.RunsOffBat == 6,
			IsLegal:          outcome.Legal,
			ShotAngle:        req.ShotAngle,
			ShotDistance:     req.ShotDistance,
			PitchLine:        req.PitchLine,
			PitchLength:      req.PitchLength,
			Commentary:       req.Commentary,
		}
		if req.Extra != nil {
			et := req.Extra.Type
			delivery.ExtraType = &et
			delivery.ExtraRuns = req.Extra.Runs
		}
		if req.Wicket != nil {
			dt := req.Wicket.DismissalType
			delivery.IsWicket = true
			delivery.DismissalType = &dt
			delivery.PlayerOutID = &outcome.PlayerOutID
			delivery.FielderID = req.Wicket.FielderID
		}
		if err := tx.CreateDelivery(delivery); err != nil {
			return err
		}
		result.Delivery = delivery

		if outcome.WicketFell {
			fow := &FallOfWicket{
				InningsID:      inn.ID,
				PlayerOutID:    outcome.PlayerOutID,
				ScoreAtWicket:  inn.TotalRuns,
				OversAtWicket:  inn.Overs,
				WicketNumber:   inn.TotalWickets,
				BallDeliveryID: delivery.ID,
			}
			if err := tx.CreateFallOfWicket(fow); err != nil {
				return err
			}
			if err := tx.UpdateBattingEntry(outEntry); err != nil {
				return err
			}

			if !outcome.InningsComplete {
				if req.NewBatsmanID == nil {
					return common.NewValidation("new_batsman_id", "a replacement batter is required when a wicket falls mid-innings")
				}
				if err := s.bringInNewBatter(tx, inn, outcome.PlayerOutID, *req.NewBatsmanID); err != nil {
					return err
				}
			}
		}

		if outEntry.PlayerID != striker.PlayerID {
			if err := tx.UpdateBattingEntry(striker); err != nil {
				return err
			}
		} else if !outcome.WicketFell {
			if err := tx.UpdateBattingEntry(striker); err != nil {
				return err
			}
		}

		if outcome.OverCompleted {
			if err := s.creditMaiden(tx, inn.ID, outcome.OverNumber, figures); err != nil {
				return err
			}
		}
		if err := tx.UpdateBowlingFigures(figures); err != nil {
			return err
		}

		if err := tx.UpdateInnings(inn); err != nil {
			return err
		}
		result.Innings = inn

		if outcome.InningsComplete {
			completed, err := s.closeInnings(tx, m, inn)
			if err != nil {
				return err
			}
			matchCompleted = completed
			result.Match = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if matchCompleted {
		s.runFinalizer(m.ID)
	}
	return result, nil
}

// bringInNewBatter validates the replacement and seats them at the end the
// dismissed batter vacated.
func (s *MatchService) bringInNewBatter(tx MatchRepository, inn *Innings, outID, newID uint) error {
	ok, err := s.roster.IsContracted(inn.BattingTeamID, newID)
	if err != nil {
		return err
	}
	if !ok {
		return common.NewValidation("new_batsman_id", "replacement batter is not contracted to the batting team")
	}

	if existing, err := tx.GetBattingEntry(inn.ID, newID); err != nil {
		return err
	} else if existing != nil {
		return common.NewValidation("new_batsman_id", "replacement batter has already batted in this innings")
	}

	count, err := tx.CountBattingEntries(inn.ID)
	if err != nil {
		return err
	}
	entry := &BattingEntry{
		InningsID: inn.ID,
		PlayerID:  newID,
		Position:  int(count) + 1,
		NotOut:    true,
	}
	if err := tx.CreateBattingEntry(entry); err != nil {
		return err
	}

	// Strike rotation already ran, but the dismissed id is still parked in
	// whichever slot it ended up in.
	if inn.CurrentStrikerID != nil && *inn.CurrentStrikerID == outID {
		inn.CurrentStrikerID = &newID
	} else if inn.CurrentNonStrikerID != nil && *inn.CurrentNonStrikerID == outID {
		inn.CurrentNonStrikerID = &newID
	}
	return nil
}

// creditMaiden bumps the bowler's maiden count when the over just finished
// conceded nothing off the bat or via wides and no-balls. Byes and leg-byes
// do not spoil a maiden.
func (s *MatchService) creditMaiden(tx MatchRepository, inningsID uint, overNumber int, figures *BowlingFigures) error {
	deliveries, err := tx.GetDeliveriesForOver(inningsID, overNumber)
	if err != nil {
		return err
	}
	for _, d := range deliveries {
		if d.BowlerID != figures.PlayerID {
			return nil
		}
		if d.RunsOffBat > 0 {
			return nil
		}
		if d.ExtraType != nil && d.ExtraType.ChargedToBowler() {
			return nil
		}
	}
	figures.Maidens++
	return nil
}

// closeInnings handles what follows a completed innings: the second innings
// shell with its chase target after the first, the result after the second.
// Returns true when the match is over.
func (s *MatchService) closeInnings(tx MatchRepository, m *Match, inn *Innings) (bool, error) {
	if inn.InningsNumber == 1 {
		target := inn.TotalRuns + 1
		second := &Innings{
			MatchID:       m.ID,
			InningsNumber: 2,
			BattingTeamID: inn.BowlingTeamID,
			BowlingTeamID: inn.BattingTeamID,
			OversLimit:    m.OversLimit,
			TargetScore:   &target,
			Status:        InningsInProgress,
		}
		if err := tx.CreateInnings(second); err != nil {
			return false, err
		}
		m.CurrentInningsID = &second.ID
		return false, tx.UpdateMatch(m)
	}

	first, err := tx.GetInningsForMatch(m.ID)
	if err != nil {
		return false, err
	}
	var firstInnings *Innings
	for i := range first {
		if first[i].InningsNumber == 1 {
			firstInnings = &first[i]
			break
		}
	}
	if firstInnings == nil {
		return false, common.NewNotFound("first innings", m.ID)
	}

	s.computeResult(m, firstInnings, inn)
	now := time.Now()
	m.Status = StatusCompleted
	m.CompletedAt = &now
	m.CurrentInningsID = nil
	return true, tx.UpdateMatch(m)
}

// computeResult writes the winner and a summary line. The chasing side wins
// by wickets in hand, the defending side by the run margin, and equal scores
// are a tie.
func (s *MatchService) computeResult(m *Match, first, second *Innings) {
	chasingName := s.teamName(m, second.BattingTeamID)
	defendingName := s.teamName(m, first.BattingTeamID)

	switch {
	case second.TotalRuns > first.TotalRuns:
		winner := second.BattingTeamID
		m.WinningTeamID = &winner
		m.ResultSummary = fmt.Sprintf("%s won by %d wickets", chasingName, 10-second.TotalWickets)
	case second.TotalRuns < first.TotalRuns:
		winner := first.BattingTeamID
		m.WinningTeamID = &winner
		m.ResultSummary = fmt.Sprintf("%s won by %d runs", defendingName, first.TotalRuns-second.TotalRuns)
	default:
		m.WinningTeamID = nil
		m.ResultSummary = "Match tied"
	}
}

func (s *MatchService) teamName(m *Match, teamID uint) string {
	if m.HomeTeamID == teamID {
		if m.HomeTeam.Name != "" {
			return m.HomeTeam.Name
		}
	} else if m.AwayTeam.Name != "" {
		return m.AwayTeam.Name
	}
	return fmt.Sprintf("Team %d", teamID)
}

// CompleteInnings closes the current innings by declaration or umpire call,
// without waiting for a completion trigger.
func (s *MatchService) CompleteInnings(matchID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}
	if m.Status != StatusLive || m.CurrentInningsID == nil {
		return nil, common.NewState("match", string(m.Status), "complete innings")
	}

	var matchCompleted bool
	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		inn, err := tx.GetInningsForUpdate(*m.CurrentInningsID)
		if err != nil {
			return err
		}
		if inn == nil {
			return common.NewNotFound("innings", *m.CurrentInningsID)
		}
		if inn.Status != InningsInProgress {
			return common.NewState("innings", string(inn.Status), "complete innings")
		}

		inn.Status = InningsCompleted
		if err := tx.UpdateInnings(inn); err != nil {
			return err
		}

		matchCompleted, err = s.closeInnings(tx, m, inn)
		return err
	})
	if err != nil {
		return nil, err
	}

	if matchCompleted {
		s.runFinalizer(m.ID)
	}
	return m, nil
}

// AbandonMatch voids a fixture before or during play. No result is awarded
// and no career statistics accrue.
func (s *MatchService) AbandonMatch(matchID uint, reason string) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.NewNotFound("match", matchID)
	}
	if m.Status != StatusScheduled && m.Status != StatusLive {
		return nil, common.NewState("match", string(m.Status), "abandon match")
	}

	m.Status = StatusAbandoned
	m.ResultSummary = "Match abandoned"
	if reason != "" {
		m.ResultSummary = "Match abandoned: " + reason
	}
	m.CurrentInningsID = nil
	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MatchService) runFinalizer(matchID uint) {
	if s.finalizer == nil {
		return
	}
	if err := s.finalizer.FinalizeMatch(matchID); err != nil {
		config.Log.WithError(err).WithField("match_id", matchID).Error("post-match aggregation failed")
	}
}

// InningsCard bundles one innings with its cards for the scorecard view.
type InningsCard struct {
	Innings        Innings          `json:"innings"`
	BattingEntries []BattingEntry   `json:"batting_entries"`
	BowlingFigures []BowlingFigures `json:"bowling_figures"`
	FallOfWickets  []FallOfWicket   `json:"fall_of_wickets"`
}

// Scorecard assembles the full card for a match.
type Scorecard struct {
	Match   *Match        `json:"match"`
	Innings []InningsCard `json:"innings"`
}

// GetScorecard returns the match with per-innings batting, bowling and fall
// of wicket detail.
func (s *MatchService) GetScorecard(matchID uint) (*Scorecard, error) {
	m, err := s.repo.GetMatchByID(matchID)
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

	card := &Scorecard{Match: m}
	for _, inn := range innings {
		batting, err := s.repo.GetBattingEntries(inn.ID)
		if err != nil {
			return nil, err
		}
		bowling, err := s.repo.GetAllBowlingFigures(inn.ID)
		if err != nil {
			return nil, err
		}
		fows, err := s.repo.GetFallOfWickets(inn.ID)
		if err != nil {
			return nil, err
		}
		card.Innings = append(card.Innings, InningsCard{
			Innings:        inn,
			BattingEntries: batting,
			BowlingFigures: bowling,
			FallOfWickets:  fows,
		})
	}
	return card, nil
}
