package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crichq/pavilion/internal/match"
)

func legalBall(over int, striker, nonStriker uint, runsOffBat int) match.BallDelivery {
	return match.BallDelivery{
		OverNumber:   over,
		StrikerID:    striker,
		NonStrikerID: nonStriker,
		BowlerID:     50,
		RunsOffBat:   runsOffBat,
		IsLegal:      true,
		IsFour:       runsOffBat == 4,
		IsSix:        runsOffBat == 6,
	}
}

func wicketBall(over int, striker, nonStriker uint) match.BallDelivery {
	d := legalBall(over, striker, nonStriker, 0)
	dt := match.DismissalBowled
	d.IsWicket = true
	d.DismissalType = &dt
	out := striker
	d.PlayerOutID = &out
	return d
}

func TestComputePhases(t *testing.T) {
	var deliveries []match.BallDelivery
	// Powerplay overs 1-6: 12 runs per over off the bat.
	for over := 1; over <= 6; over++ {
		for b := 0; b < 6; b++ {
			deliveries = append(deliveries, legalBall(over, 1, 2, 2))
		}
	}
	// Middle over 7: a wicket and nothing else.
	deliveries = append(deliveries, wicketBall(7, 1, 2))
	// Death over 16: a six.
	deliveries = append(deliveries, legalBall(16, 1, 2, 6))

	phases := ComputePhases(deliveries, 20, 6)

	require.Len(t, phases, 3)
	powerplay, middle, death := phases[0], phases[1], phases[2]

	assert.Equal(t, "powerplay", powerplay.Name)
	assert.Equal(t, 72, powerplay.Runs)
	assert.Equal(t, 36, powerplay.Balls)
	assert.InDelta(t, 12.0, powerplay.RunRate, 0.001)

	assert.Equal(t, "middle", middle.Name)
	assert.Equal(t, 1, middle.Wickets)
	assert.Equal(t, 1, middle.DotBalls)

	assert.Equal(t, "death", death.Name)
	assert.Equal(t, 16, death.FromOver)
	assert.Equal(t, 6, death.Runs)
	assert.Equal(t, 1, death.Sixes)
}

func TestComputePartnerships(t *testing.T) {
	deliveries := []match.BallDelivery{
		legalBall(1, 1, 2, 4),
		legalBall(1, 2, 1, 2), // same pair, other end
		wicketBall(1, 2, 1),   // batter 2 out, stand of 6
		legalBall(1, 3, 1, 1),
		legalBall(1, 1, 3, 6),
	}

	partnerships := ComputePartnerships(deliveries)

	require.Len(t, partnerships, 2)
	assert.Equal(t, 6, partnerships[0].Runs)
	assert.Equal(t, 3, partnerships[0].Balls)
	assert.False(t, partnerships[0].Unbroken)

	assert.Equal(t, 7, partnerships[1].Runs)
	assert.True(t, partnerships[1].Unbroken)
}

func TestPartnershipIncludesExtras(t *testing.T) {
	wide := match.ExtraWide
	deliveries := []match.BallDelivery{
		legalBall(1, 1, 2, 1),
		{OverNumber: 1, StrikerID: 2, NonStrikerID: 1, BowlerID: 50, ExtraType: &wide, ExtraRuns: 1, IsLegal: false},
	}

	partnerships := ComputePartnerships(deliveries)

	require.Len(t, partnerships, 1)
	assert.Equal(t, 2, partnerships[0].Runs)
	// The wide is not a legal ball.
	assert.Equal(t, 1, partnerships[0].Balls)
}

func TestComputeManhattanAndWorm(t *testing.T) {
	deliveries := []match.BallDelivery{
		legalBall(1, 1, 2, 4),
		legalBall(1, 1, 2, 0),
		wicketBall(2, 1, 2),
		legalBall(2, 3, 2, 6),
		legalBall(3, 3, 2, 1),
	}

	overs := ComputeManhattan(deliveries)
	require.Len(t, overs, 3)
	assert.Equal(t, 4, overs[0].Runs)
	assert.Equal(t, 6, overs[1].Runs)
	assert.Equal(t, 1, overs[1].Wickets)
	assert.Equal(t, 1, overs[2].Runs)

	worm := ComputeWorm(deliveries)
	require.Len(t, worm, 3)
	assert.Equal(t, 4, worm[0].Runs)
	assert.Equal(t, 10, worm[1].Runs)
	assert.Equal(t, 11, worm[2].Runs)
	assert.Equal(t, 1, worm[2].Wickets)

	// The worm never dips.
	for i := 1; i < len(worm); i++ {
		assert.GreaterOrEqual(t, worm[i].Runs, worm[i-1].Runs)
		assert.GreaterOrEqual(t, worm[i].Wickets, worm[i-1].Wickets)
	}
}

func TestManhattanFillsSkippedOvers(t *testing.T) {
	deliveries := []match.BallDelivery{
		legalBall(1, 1, 2, 4),
		legalBall(3, 1, 2, 2),
	}

	overs := ComputeManhattan(deliveries)

	require.Len(t, overs, 3)
	assert.Equal(t, 0, overs[1].Runs)
	assert.Equal(t, 2, overs[1].OverNumber)
}

func angleBall(striker, bowler uint, runs int, angle, distance float64) match.BallDelivery {
	d := legalBall(1, striker, 99, runs)
	d.BowlerID = bowler
	d.ShotAngle = &angle
	d.ShotDistance = &distance
	return d
}

func TestWagonWheelFilters(t *testing.T) {
	deliveries := []match.BallDelivery{
		angleBall(1, 50, 4, 45, 60),
		angleBall(1, 51, 1, 120, 20),
		angleBall(2, 50, 6, 300, 75),
		legalBall(1, 1, 2, 4), // no coordinates, always excluded
	}

	all := ComputeWagonWheel(deliveries, WagonWheelFilter{})
	assert.Len(t, all, 3)

	byBatter := ComputeWagonWheel(deliveries, WagonWheelFilter{BatterID: 1})
	assert.Len(t, byBatter, 2)

	byBowler := ComputeWagonWheel(deliveries, WagonWheelFilter{BowlerID: 50})
	assert.Len(t, byBowler, 2)

	boundaries := ComputeWagonWheel(deliveries, WagonWheelFilter{MinRuns: 4})
	require.Len(t, boundaries, 2)
	for _, s := range boundaries {
		assert.GreaterOrEqual(t, s.Runs, 4)
	}
}

func TestPitchMapFilter(t *testing.T) {
	line, length := "off", "good"
	short := "short"
	d1 := legalBall(1, 1, 2, 0)
	d1.BowlerID = 50
	d1.PitchLine = &line
	d1.PitchLength = &length

	d2 := wicketBall(1, 1, 2)
	d2.BowlerID = 51
	d2.PitchLine = &line
	d2.PitchLength = &short

	d3 := legalBall(1, 1, 2, 4) // no coordinates

	balls := ComputePitchMap([]match.BallDelivery{d1, d2, d3}, 0)
	assert.Len(t, balls, 2)

	filtered := ComputePitchMap([]match.BallDelivery{d1, d2, d3}, 51)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].IsWicket)
	assert.Equal(t, "short", filtered[0].Length)
}
