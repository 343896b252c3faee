package team

import (
	"time"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/player"
)

// TeamService enforces roster invariants: one active contract per player
// across the league, and captaincy restricted to contracted players.
type TeamService struct {
	repo       TeamRepository
	playerRepo player.PlayerRepository
}

func NewTeamService(repo TeamRepository, playerRepo player.PlayerRepository) *TeamService {
	return &TeamService{repo: repo, playerRepo: playerRepo}
}

// SignPlayer creates an active contract between the team and the player.
func (s *TeamService) SignPlayer(teamID uint, req SignPlayerRequest) (*Contract, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("team", teamID)
	}

	p, err := s.playerRepo.GetPlayerByID(req.PlayerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.NewNotFound("player", req.PlayerID)
	}

	if req.Fee > t.Budget {
		return nil, common.NewValidation("fee", "contract fee exceeds remaining team budget")
	}

	var contract *Contract
	err = s.repo.WithTransaction(func(tx TeamRepository) error {
		existing, err := tx.GetActiveContractForPlayer(req.PlayerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return common.NewConflict("player already holds an active contract")
		}

		start := time.Now()
		if req.StartDate != nil {
			start = *req.StartDate
		}
		contract = &Contract{
			TeamID:    teamID,
			PlayerID:  req.PlayerID,
			StartDate: start,
			EndDate:   req.EndDate,
			Fee:       req.Fee,
			IsActive:  true,
		}
		if err := tx.CreateContract(contract); err != nil {
			return err
		}

		t.Budget -= req.Fee
		return tx.UpdateTeam(t)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// ReleasePlayer deactivates the player's contract with the team. A released
// captain or vice-captain also loses the armband.
func (s *TeamService) ReleasePlayer(teamID, playerID uint) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return common.NewNotFound("team", teamID)
	}

	return s.repo.WithTransaction(func(tx TeamRepository) error {
		contract, err := tx.GetActiveContract(teamID, playerID)
		if err != nil {
			return err
		}
		if contract == nil {
			return common.NewNotFound("active contract", 0)
		}

		now := time.Now()
		contract.IsActive = false
		contract.EndDate = &now
		if err := tx.UpdateContract(contract); err != nil {
			return err
		}

		changed := false
		if t.CaptainID != nil && *t.CaptainID == playerID {
			t.CaptainID = nil
			changed = true
		}
		if t.ViceCaptainID != nil && *t.ViceCaptainID == playerID {
			t.ViceCaptainID = nil
			changed = true
		}
		if changed {
			return tx.UpdateTeam(t)
		}
		return nil
	})
}

// SetCaptain assigns the captaincy. The player must hold an active contract
// with the team.
func (s *TeamService) SetCaptain(teamID, playerID uint, vice bool) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return common.NewNotFound("team", teamID)
	}

	contract, err := s.repo.GetActiveContract(teamID, playerID)
	if err != nil {
		return err
	}
	if contract == nil {
		return common.NewState("player", "not under contract", "assign captaincy")
	}

	if vice {
		if t.CaptainID != nil && *t.CaptainID == playerID {
			return common.NewValidation("player_id", "captain and vice-captain must be different players")
		}
		t.ViceCaptainID = &playerID
	} else {
		if t.ViceCaptainID != nil && *t.ViceCaptainID == playerID {
			return common.NewValidation("player_id", "captain and vice-captain must be different players")
		}
		t.CaptainID = &playerID
	}
	return s.repo.UpdateTeam(t)
}

// Roster returns the team's active contracts with player records preloaded.
func (s *TeamService) Roster(teamID uint) ([]Contract, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, common.NewNotFound("team", teamID)
	}
	return s.repo.GetActiveContracts(teamID)
}

// IsContracted reports whether the player holds an active contract with the
// team. Used by the scoring pipeline to validate delivery participants.
func (s *TeamService) IsContracted(teamID, playerID uint) (bool, error) {
	contract, err := s.repo.GetActiveContract(teamID, playerID)
	if err != nil {
		return false, err
	}
	return contract != nil, nil
}
