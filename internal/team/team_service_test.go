package team

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/player"
)

func setupTeamTest(t *testing.T) (*TeamService, *GormTeamRepository, player.PlayerRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&player.Player{}, &Team{}, &Contract{}))

	playerRepo := player.NewGormPlayerRepository(db)
	teamRepo := NewGormTeamRepository(db)
	service := NewTeamService(teamRepo, playerRepo)
	return service, teamRepo, playerRepo
}

func seedTeam(t *testing.T, repo *GormTeamRepository, name string, budget float64) *Team {
	t.Helper()
	tm := &Team{Name: name, Budget: budget}
	require.NoError(t, repo.CreateTeam(tm))
	return tm
}

func seedPlayer(t *testing.T, repo player.PlayerRepository, name string) *player.Player {
	t.Helper()
	p := &player.Player{Name: name, CanBat: true}
	require.NoError(t, repo.CreatePlayer(p))
	return p
}

func TestSignPlayerCreatesActiveContractAndDebitsBudget(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	tm := seedTeam(t, teamRepo, "Harbour Kings", 100)
	p := seedPlayer(t, playerRepo, "Opening Bat")

	contract, err := service.SignPlayer(tm.ID, SignPlayerRequest{PlayerID: p.ID, Fee: 40})
	require.NoError(t, err)
	assert.True(t, contract.IsActive)
	assert.Equal(t, 40.0, contract.Fee)

	updated, err := teamRepo.GetTeamByID(tm.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.Budget)
}

func TestSecondActiveContractIsConflict(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	first := seedTeam(t, teamRepo, "Harbour Kings", 100)
	second := seedTeam(t, teamRepo, "Valley Strikers", 100)
	p := seedPlayer(t, playerRepo, "Wanted Allrounder")

	_, err := service.SignPlayer(first.ID, SignPlayerRequest{PlayerID: p.ID})
	require.NoError(t, err)

	// A second team cannot sign the same player, and neither can the first
	// team twice.
	_, err = service.SignPlayer(second.ID, SignPlayerRequest{PlayerID: p.ID})
	var ce *common.ConflictError
	require.ErrorAs(t, err, &ce)

	_, err = service.SignPlayer(first.ID, SignPlayerRequest{PlayerID: p.ID})
	require.ErrorAs(t, err, &ce)
}

func TestReleaseThenResignElsewhere(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	first := seedTeam(t, teamRepo, "Harbour Kings", 100)
	second := seedTeam(t, teamRepo, "Valley Strikers", 100)
	p := seedPlayer(t, playerRepo, "Journeyman")

	_, err := service.SignPlayer(first.ID, SignPlayerRequest{PlayerID: p.ID})
	require.NoError(t, err)
	require.NoError(t, service.ReleasePlayer(first.ID, p.ID))

	contract, err := service.SignPlayer(second.ID, SignPlayerRequest{PlayerID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, contract.TeamID)

	history, err := teamRepo.GetContractHistory(p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSignPlayerFeeExceedsBudget(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	tm := seedTeam(t, teamRepo, "Shoestring XI", 10)
	p := seedPlayer(t, playerRepo, "Marquee Name")

	_, err := service.SignPlayer(tm.ID, SignPlayerRequest{PlayerID: p.ID, Fee: 50})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCaptainMustBeContracted(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	tm := seedTeam(t, teamRepo, "Harbour Kings", 100)
	outsider := seedPlayer(t, playerRepo, "Free Agent")

	err := service.SetCaptain(tm.ID, outsider.ID, false)
	var se *common.StateError
	require.ErrorAs(t, err, &se)
}

func TestReleasedCaptainLosesArmband(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	tm := seedTeam(t, teamRepo, "Harbour Kings", 100)
	p := seedPlayer(t, playerRepo, "Skipper")

	_, err := service.SignPlayer(tm.ID, SignPlayerRequest{PlayerID: p.ID})
	require.NoError(t, err)
	require.NoError(t, service.SetCaptain(tm.ID, p.ID, false))

	require.NoError(t, service.ReleasePlayer(tm.ID, p.ID))

	updated, err := teamRepo.GetTeamByID(tm.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.CaptainID)

	contracted, err := service.IsContracted(tm.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, contracted)
}

func TestCaptainAndViceMustDiffer(t *testing.T) {
	service, teamRepo, playerRepo := setupTeamTest(t)
	tm := seedTeam(t, teamRepo, "Harbour Kings", 100)
	p := seedPlayer(t, playerRepo, "Leader")

	_, err := service.SignPlayer(tm.ID, SignPlayerRequest{PlayerID: p.ID})
	require.NoError(t, err)
	require.NoError(t, service.SetCaptain(tm.ID, p.ID, false))

	err = service.SetCaptain(tm.ID, p.ID, true)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}
