package tournament

import (
	"encoding/json"
	"time"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/team"
)

// TournamentService manages the competition lifecycle and fixture
// generation. Fixtures are real match rows owned by the match module.
type TournamentService struct {
	repo      TournamentRepository
	teams     team.TeamRepository
	matchRepo match.MatchRepository
}

func NewTournamentService(repo TournamentRepository, teams team.TeamRepository, matchRepo match.MatchRepository) *TournamentService {
	return &TournamentService{repo: repo, teams: teams, matchRepo: matchRepo}
}

// formatOverrides are optional per-tournament tweaks carried in FormatDetails.
type formatOverrides struct {
	OversLimit     *int `json:"overs_limit,omitempty"`
	PowerplayOvers *int `json:"powerplay_overs,omitempty"`
}

// matchSettings resolves the overs and powerplay a fixture inherits, format
// defaults overridden by FormatDetails.
func (s *TournamentService) matchSettings(t *Tournament) (oversLimit, powerplay int, err error) {
	oversLimit = t.Format.DefaultOversLimit()
	powerplay = t.Format.DefaultPowerplay()

	if len(t.FormatDetails) > 0 {
		var overrides formatOverrides
		if err := json.Unmarshal(t.FormatDetails, &overrides); err != nil {
			return 0, 0, common.NewValidation("format_details", "must be a JSON object")
		}
		if overrides.OversLimit != nil {
			oversLimit = *overrides.OversLimit
		}
		if overrides.PowerplayOvers != nil {
			powerplay = *overrides.PowerplayOvers
		}
	}

	if oversLimit < 1 {
		return 0, 0, common.NewValidation("format_details.overs_limit", "must be at least 1")
	}
	if powerplay < 0 || powerplay > oversLimit {
		return 0, 0, common.NewValidation("format_details.powerplay_overs", "must fit within the overs limit")
	}
	return oversLimit, powerplay, nil
}

func (s *TournamentService) CreateTournament(req CreateTournamentRequest) (*Tournament, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, common.NewValidation("end_date", "cannot precede the start date")
	}

	t := &Tournament{
		Name:          req.Name,
		Season:        req.Season,
		Format:        req.Format,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        TournamentUpcoming,
		FormatDetails: req.FormatDetails,
	}
	if _, _, err := s.matchSettings(t); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTournament(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TournamentService) UpdateTournament(id uint, req UpdateTournamentRequest) (*Tournament, error) {
	t, err := s.repo.GetTournamentByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("tournament", id)
	}
	if t.Status == TournamentCompleted {
		return nil, common.NewState("tournament", string(t.Status), "update")
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Season != nil {
		t.Season = *req.Season
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if err := s.repo.UpdateTournament(t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddTeam enters a team into an upcoming tournament.
func (s *TournamentService) AddTeam(tournamentID uint, req AddTeamRequest) (*TournamentTeam, error) {
	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("tournament", tournamentID)
	}
	if t.Status != TournamentUpcoming {
		return nil, common.NewState("tournament", string(t.Status), "add team")
	}

	tm, err := s.teams.GetTeamByID(req.TeamID)
	if err != nil {
		return nil, err
	}
	if tm == nil {
		return nil, common.NewNotFound("team", req.TeamID)
	}

	existing, err := s.repo.GetEntry(tournamentID, req.TeamID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewConflict("team is already entered in this tournament")
	}

	entry := &TournamentTeam{TournamentID: tournamentID, TeamID: req.TeamID}
	if err := s.repo.AddTeam(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveTeam withdraws a team before the tournament starts.
func (s *TournamentService) RemoveTeam(tournamentID, teamID uint) error {
	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		return err
	}
	if t == nil {
		return common.NewNotFound("tournament", tournamentID)
	}
	if t.Status != TournamentUpcoming {
		return common.NewState("tournament", string(t.Status), "remove team")
	}

	entry, err := s.repo.GetEntry(tournamentID, teamID)
	if err != nil {
		return err
	}
	if entry == nil {
		return common.NewNotFound("tournament entry", teamID)
	}
	return s.repo.RemoveTeam(tournamentID, teamID)
}

// GenerateFixtures builds the round-robin schedule and creates a match row
// per pairing. The tournament moves to ongoing once fixtures exist.
func (s *TournamentService) GenerateFixtures(tournamentID uint, req GenerateFixturesRequest) ([]match.Match, error) {
	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("tournament", tournamentID)
	}
	if t.Status != TournamentUpcoming {
		return nil, common.NewState("tournament", string(t.Status), "generate fixtures")
	}

	entries, err := s.repo.GetEntries(tournamentID)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return nil, common.NewValidation("teams", "at least two entered teams are required to generate fixtures")
	}

	existing, _, err := s.matchRepo.GetMatches(map[string]interface{}{"tournament_id = ?": tournamentID}, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, common.NewConflict("fixtures have already been generated for this tournament")
	}

	oversLimit, powerplay, err := s.matchSettings(t)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]uint, len(entries))
	for i, e := range entries {
		teamIDs[i] = e.TeamID
	}

	var pairings []Pairing
	if req.DoubleRoundRobin {
		pairings = DoubleRoundRobinPairings(teamIDs)
	} else {
		pairings = RoundRobinPairings(teamIDs)
	}

	firstMatchAt := t.StartDate
	if req.FirstMatchAt != nil {
		firstMatchAt = *req.FirstMatchAt
	}
	gap := 24 * time.Hour
	if req.GapHours > 0 {
		gap = time.Duration(req.GapHours) * time.Hour
	}

	matches := make([]match.Match, 0, len(pairings))
	err = s.matchRepo.WithTransaction(func(tx match.MatchRepository) error {
		for i, p := range pairings {
			m := match.Match{
				HomeTeamID:     p.HomeTeamID,
				AwayTeamID:     p.AwayTeamID,
				VenueID:        req.VenueID,
				TournamentID:   &tournamentID,
				ScheduledAt:    firstMatchAt.Add(time.Duration(i) * gap),
				OversLimit:     oversLimit,
				PowerplayOvers: powerplay,
				Status:         match.StatusScheduled,
			}
			if err := tx.CreateMatch(&m); err != nil {
				return err
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Status = TournamentOngoing
	if err := s.repo.UpdateTournament(t); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetFixtures lists the tournament's matches.
func (s *TournamentService) GetFixtures(tournamentID uint) ([]match.Match, error) {
	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("tournament", tournamentID)
	}

	matches, _, err := s.matchRepo.GetMatches(map[string]interface{}{"tournament_id = ?": tournamentID}, 1, 1000)
	if err != nil {
		return nil, err
	}
	return matches, nil
}
