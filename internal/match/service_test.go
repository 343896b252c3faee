package match

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/internal/player"
	"github.com/crichq/pavilion/internal/team"
)

// fixture bundles the seeded world a scoring test runs against: two teams
// of four contracted players each.
type fixture struct {
	service *MatchService
	repo    MatchRepository

	homeTeam team.Team
	awayTeam team.Team
	// homePlayers[i] / awayPlayers[i] are contracted to their team.
	homePlayers []player.Player
	awayPlayers []player.Player
}

type recordingFinalizer struct {
	finalized []uint
}

func (f *recordingFinalizer) FinalizeMatch(matchID uint) error {
	f.finalized = append(f.finalized, matchID)
	return nil
}

func setupFixture(t *testing.T) (*fixture, *recordingFinalizer) {
	t.Helper()

	// A named shared-cache DB keeps every pooled connection on the same
	// in-memory database, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&player.Player{},
		&team.Team{},
		&team.Contract{},
		&Match{},
		&Innings{},
		&BallDelivery{},
		&FallOfWicket{},
		&BattingEntry{},
		&BowlingFigures{},
	))

	cfg := &config.Config{}
	cfg.Cricket.DefaultOvers = 20
	cfg.Cricket.DefaultPowerplay = 6

	playerRepo := player.NewGormPlayerRepository(db)
	teamRepo := team.NewGormTeamRepository(db)
	teamService := team.NewTeamService(teamRepo, playerRepo)
	matchRepo := NewGormMatchRepository(db)
	service := NewMatchService(matchRepo, teamRepo, teamService, cfg)

	finalizer := &recordingFinalizer{}
	service.SetFinalizer(finalizer)

	f := &fixture{service: service, repo: matchRepo}

	f.homeTeam = team.Team{Name: "Harbour Kings", Budget: 1000}
	f.awayTeam = team.Team{Name: "Valley Strikers", Budget: 1000}
	require.NoError(t, teamRepo.CreateTeam(&f.homeTeam))
	require.NoError(t, teamRepo.CreateTeam(&f.awayTeam))

	for i := 0; i < 4; i++ {
		hp := player.Player{Name: fmt.Sprintf("Home Player %d", i+1), CanBat: true, CanBowl: true}
		ap := player.Player{Name: fmt.Sprintf("Away Player %d", i+1), CanBat: true, CanBowl: true}
		require.NoError(t, playerRepo.CreatePlayer(&hp))
		require.NoError(t, playerRepo.CreatePlayer(&ap))
		f.homePlayers = append(f.homePlayers, hp)
		f.awayPlayers = append(f.awayPlayers, ap)

		_, err := teamService.SignPlayer(f.homeTeam.ID, team.SignPlayerRequest{PlayerID: hp.ID})
		require.NoError(t, err)
		_, err = teamService.SignPlayer(f.awayTeam.ID, team.SignPlayerRequest{PlayerID: ap.ID})
		require.NoError(t, err)
	}

	return f, finalizer
}

// liveMatch schedules a one-over match, records the toss with the home side
// batting, and seats the openers.
func (f *fixture) liveMatch(t *testing.T, oversLimit int) *Match {
	t.Helper()

	m, err := f.service.CreateMatch(CreateMatchRequest{
		HomeTeamID:     f.homeTeam.ID,
		AwayTeamID:     f.awayTeam.ID,
		ScheduledAt:    time.Now(),
		OversLimit:     oversLimit,
		PowerplayOvers: 1,
	})
	require.NoError(t, err)

	m, err = f.service.RecordToss(m.ID, RecordTossRequest{
		WinnerTeamID: f.homeTeam.ID,
		Decision:     "bat",
	})
	require.NoError(t, err)
	require.Equal(t, StatusLive, m.Status)

	_, err = f.service.StartInnings(m.ID, StartInningsRequest{
		StrikerID:    f.homePlayers[0].ID,
		NonStrikerID: f.homePlayers[1].ID,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) ball(t *testing.T, matchID uint, req RecordDeliveryRequest) *DeliveryResult {
	t.Helper()
	if req.DeliveryKey == "" {
		req.DeliveryKey = uuid.NewString()
	}
	result, err := f.service.RecordDelivery(matchID, req)
	require.NoError(t, err)
	return result
}

func TestDuplicateDeliveryKeyIsConflict(t *testing.T) {
	f, _ := setupFixture(t)
	m := f.liveMatch(t, 1)

	key := uuid.NewString()
	req := RecordDeliveryRequest{
		DeliveryKey: key,
		BowlerID:    f.awayPlayers[0].ID,
		BatsmanID:   f.homePlayers[0].ID,
		RunsOffBat:  4,
	}
	first, err := f.service.RecordDelivery(m.ID, req)
	require.NoError(t, err)
	require.Equal(t, 4, first.Innings.TotalRuns)

	// Same key replayed, even with a different payload.
	req.RunsOffBat = 6
	_, err = f.service.RecordDelivery(m.ID, req)
	var ce *common.ConflictError
	require.ErrorAs(t, err, &ce)

	// Nothing double counted.
	inn, err := f.repo.GetInningsByID(first.Innings.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, inn.TotalRuns)
	assert.Equal(t, 1, inn.Balls)
}

func TestWrongStrikerRejected(t *testing.T) {
	f, _ := setupFixture(t)
	m := f.liveMatch(t, 1)

	_, err := f.service.RecordDelivery(m.ID, RecordDeliveryRequest{
		DeliveryKey: uuid.NewString(),
		BowlerID:    f.awayPlayers[0].ID,
		BatsmanID:   f.homePlayers[1].ID, // the non-striker
		RunsOffBat:  1,
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUncontractedBowlerRejected(t *testing.T) {
	f, _ := setupFixture(t)
	m := f.liveMatch(t, 1)

	_, err := f.service.RecordDelivery(m.ID, RecordDeliveryRequest{
		DeliveryKey: uuid.NewString(),
		BowlerID:    f.homePlayers[3].ID, // batting side player
		BatsmanID:   f.homePlayers[0].ID,
		RunsOffBat:  0,
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestWicketRequiresReplacementMidInnings(t *testing.T) {
	f, _ := setupFixture(t)
	m := f.liveMatch(t, 1)

	_, err := f.service.RecordDelivery(m.ID, RecordDeliveryRequest{
		DeliveryKey: uuid.NewString(),
		BowlerID:    f.awayPlayers[0].ID,
		BatsmanID:   f.homePlayers[0].ID,
		Wicket:      &WicketInput{DismissalType: DismissalBowled},
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestOneOverMatchEndToEnd(t *testing.T) {
	f, finalizer := setupFixture(t)
	m := f.liveMatch(t, 1)

	bowler := f.awayPlayers[0].ID

	// First innings: 1, 4, 0, 2, 6, 1 = 14. The over ends the innings.
	var result *DeliveryResult
	striker := f.homePlayers[0].ID
	nonStriker := f.homePlayers[1].ID
	for _, r := range []int{1, 4, 0, 2, 6, 1} {
		result = f.ball(t, m.ID, RecordDeliveryRequest{
			BowlerID:   bowler,
			BatsmanID:  striker,
			RunsOffBat: r,
		})
		if r%2 == 1 {
			striker, nonStriker = nonStriker, striker
		}
	}

	require.True(t, result.Outcome.InningsComplete)
	require.Equal(t, CompletionOvers, result.Outcome.Reason)
	assert.Equal(t, 14, result.Innings.TotalRuns)

	// The second innings shell exists with the chase target.
	require.NotNil(t, result.Match)
	require.NotNil(t, result.Match.CurrentInningsID)
	second, err := f.repo.GetInningsByID(*result.Match.CurrentInningsID)
	require.NoError(t, err)
	require.NotNil(t, second.TargetScore)
	assert.Equal(t, 15, *second.TargetScore)
	assert.Equal(t, f.awayTeam.ID, second.BattingTeamID)

	// Chase: the away side clears the target with sixes.
	_, err = f.service.StartInnings(m.ID, StartInningsRequest{
		StrikerID:    f.awayPlayers[0].ID,
		NonStrikerID: f.awayPlayers[1].ID,
	})
	require.NoError(t, err)

	homeBowler := f.homePlayers[0].ID
	for i := 0; i < 3; i++ {
		result = f.ball(t, m.ID, RecordDeliveryRequest{
			BowlerID:   homeBowler,
			BatsmanID:  f.awayPlayers[0].ID,
			RunsOffBat: 6,
		})
	}

	require.True(t, result.Outcome.InningsComplete)
	require.Equal(t, CompletionTargetReached, result.Outcome.Reason)
	require.NotNil(t, result.Match)
	assert.Equal(t, StatusCompleted, result.Match.Status)
	require.NotNil(t, result.Match.WinningTeamID)
	assert.Equal(t, f.awayTeam.ID, *result.Match.WinningTeamID)
	assert.Equal(t, "Valley Strikers won by 10 wickets", result.Match.ResultSummary)

	require.Len(t, finalizer.finalized, 1)
	assert.Equal(t, m.ID, finalizer.finalized[0])
}

func TestWicketPersistsFallAndReplacement(t *testing.T) {
	f, _ := setupFixture(t)
	m := f.liveMatch(t, 2)

	bowler := f.awayPlayers[0].ID
	f.ball(t, m.ID, RecordDeliveryRequest{
		BowlerID:   bowler,
		BatsmanID:  f.homePlayers[0].ID,
		RunsOffBat: 4,
	})

	newBatter := f.homePlayers[2].ID
	result := f.ball(t, m.ID, RecordDeliveryRequest{
		BowlerID:     bowler,
		BatsmanID:    f.homePlayers[0].ID,
		Wicket:       &WicketInput{DismissalType: DismissalBowled},
		NewBatsmanID: &newBatter,
	})

	require.True(t, result.Outcome.WicketFell)
	assert.Equal(t, f.homePlayers[0].ID, result.Outcome.PlayerOutID)
	assert.Equal(t, newBatter, *result.Innings.CurrentStrikerID)

	fows, err := f.repo.GetFallOfWickets(result.Innings.ID)
	require.NoError(t, err)
	require.Len(t, fows, 1)
	assert.Equal(t, 1, fows[0].WicketNumber)
	assert.Equal(t, 4, fows[0].ScoreAtWicket)

	outCard, err := f.repo.GetBattingEntry(result.Innings.ID, f.homePlayers[0].ID)
	require.NoError(t, err)
	assert.False(t, outCard.NotOut)

	figures, err := f.repo.GetBowlingFigures(result.Innings.ID, bowler)
	require.NoError(t, err)
	assert.Equal(t, 1, figures.Wickets)
	assert.Equal(t, "1/4", figures.Figures())
}

func TestAbandonMatch(t *testing.T) {
	f, finalizer := setupFixture(t)
	m := f.liveMatch(t, 1)

	m, err := f.service.AbandonMatch(m.ID, "rain")
	require.NoError(t, err)
	assert.Equal(t, StatusAbandoned, m.Status)
	assert.Equal(t, "Match abandoned: rain", m.ResultSummary)
	assert.Empty(t, finalizer.finalized)

	// No further scoring once abandoned.
	_, err = f.service.RecordDelivery(m.ID, RecordDeliveryRequest{
		DeliveryKey: uuid.NewString(),
		BowlerID:    f.awayPlayers[0].ID,
		BatsmanID:   f.homePlayers[0].ID,
	})
	var se *common.StateError
	require.ErrorAs(t, err, &se)
}

func TestTossBowlDecisionSwapsBattingSide(t *testing.T) {
	f, _ := setupFixture(t)

	m, err := f.service.CreateMatch(CreateMatchRequest{
		HomeTeamID:  f.homeTeam.ID,
		AwayTeamID:  f.awayTeam.ID,
		ScheduledAt: time.Now(),
		OversLimit:  20,
	})
	require.NoError(t, err)

	m, err = f.service.RecordToss(m.ID, RecordTossRequest{
		WinnerTeamID: f.homeTeam.ID,
		Decision:     "bowl",
	})
	require.NoError(t, err)

	inn, err := f.repo.GetInningsByID(*m.CurrentInningsID)
	require.NoError(t, err)
	assert.Equal(t, f.awayTeam.ID, inn.BattingTeamID)
	assert.Equal(t, f.homeTeam.ID, inn.BowlingTeamID)
}

func TestDeleteMatchOnlyWhileScheduled(t *testing.T) {
	f, _ := setupFixture(t)

	m, err := f.service.CreateMatch(CreateMatchRequest{
		HomeTeamID:  f.homeTeam.ID,
		AwayTeamID:  f.awayTeam.ID,
		ScheduledAt: time.Now(),
		OversLimit:  20,
	})
	require.NoError(t, err)
	require.NoError(t, f.service.DeleteMatch(m.ID))

	gone, err := f.repo.GetMatchByID(m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	live := f.liveMatch(t, 1)
	err = f.service.DeleteMatch(live.ID)
	var se *common.StateError
	require.ErrorAs(t, err, &se)
}
