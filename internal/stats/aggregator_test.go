package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/team"
	"github.com/crichq/pavilion/internal/tournament"
)

func TestBattingAverageWithoutDismissalsIsRawRuns(t *testing.T) {
	entries := []match.BattingEntry{
		{RunsScored: 70, BallsFaced: 50, NotOut: true},
		{RunsScored: 50, BallsFaced: 40, NotOut: true},
	}

	c := FoldBattingCareer(entries)

	assert.Equal(t, 120, c.Runs)
	assert.Equal(t, 2, c.NotOuts)
	assert.Equal(t, 120.0, c.Average)
	assert.InDelta(t, 133.33, c.StrikeRate, 0.01)
}

func TestBattingCareerMilestones(t *testing.T) {
	entries := []match.BattingEntry{
		{RunsScored: 104, BallsFaced: 60, NotOut: false},
		{RunsScored: 67, BallsFaced: 45, NotOut: false},
		{RunsScored: 3, BallsFaced: 8, NotOut: true},
		{RunsScored: 50, BallsFaced: 30, NotOut: false},
	}

	c := FoldBattingCareer(entries)

	assert.Equal(t, 4, c.Innings)
	assert.Equal(t, 1, c.Hundreds)
	assert.Equal(t, 2, c.Fifties)
	assert.Equal(t, 104, c.HighestScore)
	// 224 runs over 3 dismissals.
	assert.InDelta(t, 74.67, c.Average, 0.01)
}

func TestBattingCareerZeroBallsZeroStrikeRate(t *testing.T) {
	c := FoldBattingCareer(nil)
	assert.Equal(t, 0.0, c.StrikeRate)
	assert.Equal(t, 0.0, c.Average)
}

func TestBowlingCareerFold(t *testing.T) {
	figures := []match.BowlingFigures{
		{BallsBowled: 24, RunsConceded: 30, Wickets: 3, Maidens: 1},
		{BallsBowled: 24, RunsConceded: 20, Wickets: 5},
		{BallsBowled: 12, RunsConceded: 25, Wickets: 0},
	}

	c := FoldBowlingCareer(figures)

	assert.Equal(t, 3, c.Innings)
	assert.Equal(t, 60, c.Balls)
	assert.Equal(t, 8, c.Wickets)
	assert.Equal(t, 1, c.FiveWicketHauls)
	assert.Equal(t, 5, c.BestWickets)
	assert.Equal(t, 20, c.BestRuns)
	assert.InDelta(t, 9.375, c.Average, 0.001)
	assert.InDelta(t, 7.5, c.Economy, 0.001)
}

func TestBowlingCareerZeroGuards(t *testing.T) {
	c := FoldBowlingCareer(nil)
	assert.Equal(t, 0.0, c.Economy)
	assert.Equal(t, 0.0, c.Average)

	// Wicketless figures still guard the average.
	c = FoldBowlingCareer([]match.BowlingFigures{{BallsBowled: 6, RunsConceded: 10}})
	assert.Equal(t, 0.0, c.Average)
	assert.InDelta(t, 10.0, c.Economy, 0.001)
}

func TestFieldingCredits(t *testing.T) {
	caught := match.DismissalCaught
	stumped := match.DismissalStumped
	runOut := match.DismissalRunOut

	c := FoldFieldingCredits([]match.BallDelivery{
		{IsWicket: true, DismissalType: &caught},
		{IsWicket: true, DismissalType: &caught},
		{IsWicket: true, DismissalType: &stumped},
		{IsWicket: true, DismissalType: &runOut},
		{IsWicket: false},
	})

	assert.Equal(t, 2, c.Catches)
	assert.Equal(t, 1, c.Stumpings)
	assert.Equal(t, 1, c.RunOuts)
}

func completedMatch(id, home, away uint, winner *uint) match.Match {
	m := match.Match{
		HomeTeamID:    home,
		AwayTeamID:    away,
		Status:        match.StatusCompleted,
		WinningTeamID: winner,
	}
	m.ID = id
	return m
}

func TestTeamSummaryAndForm(t *testing.T) {
	teamA, teamB := uint(1), uint(2)

	// Oldest first: W, W, L, T, W.
	matches := []match.Match{
		completedMatch(10, teamA, teamB, &teamA),
		completedMatch(11, teamA, teamB, &teamA),
		completedMatch(12, teamB, teamA, &teamB),
		completedMatch(13, teamA, teamB, nil),
		completedMatch(14, teamB, teamA, &teamA),
	}

	s := ComputeTeamSummary(teamA, matches, 3)

	assert.Equal(t, 5, s.Played)
	assert.Equal(t, 3, s.Won)
	assert.Equal(t, 1, s.Lost)
	assert.Equal(t, 1, s.Tied)
	assert.InDelta(t, 60.0, s.WinPercentage, 0.001)
	// Most recent first, trimmed to length 3.
	assert.Equal(t, "WTL", s.Form)
}

func tournamentEntry(teamID uint, name string) tournament.TournamentTeam {
	return tournament.TournamentTeam{TeamID: teamID, Team: team.Team{Name: name}}
}

func TestPointsTableTwoWinsOneLoss(t *testing.T) {
	a, b, c := uint(1), uint(2), uint(3)
	entries := []tournament.TournamentTeam{
		tournamentEntry(a, "Alpha"),
		tournamentEntry(b, "Beta"),
		tournamentEntry(c, "Gamma"),
	}

	completed := []match.Match{
		completedMatch(10, a, b, &a),
		completedMatch(11, a, c, &a),
		completedMatch(12, b, c, &b),
	}

	innings := map[uint][]match.Innings{
		10: {
			{MatchID: 10, BattingTeamID: a, BowlingTeamID: b, TotalRuns: 160, Balls: 120, OversLimit: 20},
			{MatchID: 10, BattingTeamID: b, BowlingTeamID: a, TotalRuns: 140, Balls: 120, OversLimit: 20},
		},
		11: {
			{MatchID: 11, BattingTeamID: a, BowlingTeamID: c, TotalRuns: 150, Balls: 120, OversLimit: 20},
			{MatchID: 11, BattingTeamID: c, BowlingTeamID: a, TotalRuns: 120, Balls: 120, OversLimit: 20},
		},
		12: {
			{MatchID: 12, BattingTeamID: b, BowlingTeamID: c, TotalRuns: 170, Balls: 120, OversLimit: 20},
			{MatchID: 12, BattingTeamID: c, BowlingTeamID: b, TotalRuns: 150, Balls: 120, OversLimit: 20},
		},
	}

	table := ComputePointsTable(entries, completed, innings, nil)

	require.Len(t, table, 3)
	assert.Equal(t, "Alpha", table[0].TeamName)
	assert.Equal(t, 4, table[0].Points)
	assert.Equal(t, 2, table[0].Won)
	assert.Equal(t, "Beta", table[1].TeamName)
	assert.Equal(t, 2, table[1].Points)
	assert.Equal(t, "Gamma", table[2].TeamName)
	assert.Equal(t, 0, table[2].Points)

	// Alpha: 310 for, 260 against over 20 overs each way.
	assert.InDelta(t, (310.0-260.0)/20.0, table[0].NetRunRate, 0.0001)
}

// Net run rate is zero sum for a two-team head-to-head with full overs.
func TestNetRunRateSymmetry(t *testing.T) {
	a, b := uint(1), uint(2)
	entries := []tournament.TournamentTeam{
		tournamentEntry(a, "Alpha"),
		tournamentEntry(b, "Beta"),
	}

	completed := []match.Match{completedMatch(10, a, b, &a)}
	innings := map[uint][]match.Innings{
		10: {
			{MatchID: 10, BattingTeamID: a, BowlingTeamID: b, TotalRuns: 180, Balls: 120, OversLimit: 20},
			{MatchID: 10, BattingTeamID: b, BowlingTeamID: a, TotalRuns: 150, Balls: 120, OversLimit: 20},
		},
	}

	table := ComputePointsTable(entries, completed, innings, nil)

	require.Len(t, table, 2)
	assert.InDelta(t, table[0].NetRunRate, -table[1].NetRunRate, 0.0001)
}

func TestPointsTableAllOutChargedFullOvers(t *testing.T) {
	a, b := uint(1), uint(2)
	entries := []tournament.TournamentTeam{
		tournamentEntry(a, "Alpha"),
		tournamentEntry(b, "Beta"),
	}

	completed := []match.Match{completedMatch(10, a, b, &a)}
	// Beta all out in 15 overs: their rate divides by the full 20.
	innings := map[uint][]match.Innings{
		10: {
			{MatchID: 10, BattingTeamID: a, BowlingTeamID: b, TotalRuns: 160, Balls: 120, OversLimit: 20},
			{MatchID: 10, BattingTeamID: b, BowlingTeamID: a, TotalRuns: 100, Balls: 90, TotalWickets: 10, OversLimit: 20},
		},
	}

	table := ComputePointsTable(entries, completed, innings, nil)

	require.Equal(t, "Alpha", table[0].TeamName)
	assert.InDelta(t, 160.0/20.0-100.0/20.0, table[0].NetRunRate, 0.0001)
}

func TestPointsTableNoResult(t *testing.T) {
	a, b := uint(1), uint(2)
	entries := []tournament.TournamentTeam{
		tournamentEntry(a, "Alpha"),
		tournamentEntry(b, "Beta"),
	}

	abandoned := match.Match{HomeTeamID: a, AwayTeamID: b, Status: match.StatusAbandoned}
	abandoned.ID = 10

	table := ComputePointsTable(entries, nil, nil, []match.Match{abandoned})

	require.Len(t, table, 2)
	for _, row := range table {
		assert.Equal(t, 1, row.Played)
		assert.Equal(t, 1, row.NoResults)
		assert.Equal(t, 1, row.Points)
	}
}

// Pure folds over the same rows return the same numbers.
func TestFoldsAreReadIdempotent(t *testing.T) {
	entries := []match.BattingEntry{
		{RunsScored: 70, BallsFaced: 50, NotOut: false},
		{RunsScored: 31, BallsFaced: 22, NotOut: true},
	}

	first := FoldBattingCareer(entries)
	second := FoldBattingCareer(entries)
	assert.Equal(t, first, second)
}
