package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairKey(a, b uint) [2]uint {
	if a > b {
		a, b = b, a
	}
	return [2]uint{a, b}
}

func TestRoundRobinEveryPairPlaysOnce(t *testing.T) {
	teams := []uint{1, 2, 3, 4}

	pairings := RoundRobinPairings(teams)

	// n(n-1)/2 fixtures for n teams.
	require.Len(t, pairings, 6)

	seen := make(map[[2]uint]int)
	for _, p := range pairings {
		assert.NotEqual(t, p.HomeTeamID, p.AwayTeamID)
		seen[pairKey(p.HomeTeamID, p.AwayTeamID)]++
	}
	assert.Len(t, seen, 6)
	for pair, count := range seen {
		assert.Equal(t, 1, count, "pair %v scheduled %d times", pair, count)
	}
}

func TestRoundRobinOddTeamCountGetsByes(t *testing.T) {
	teams := []uint{1, 2, 3, 4, 5}

	pairings := RoundRobinPairings(teams)

	require.Len(t, pairings, 10)
	for _, p := range pairings {
		assert.NotZero(t, p.HomeTeamID)
		assert.NotZero(t, p.AwayTeamID)
	}
}

func TestRoundRobinNoTeamPlaysTwiceInARound(t *testing.T) {
	teams := []uint{1, 2, 3, 4, 5, 6}

	pairings := RoundRobinPairings(teams)

	byRound := make(map[int]map[uint]bool)
	for _, p := range pairings {
		if byRound[p.Round] == nil {
			byRound[p.Round] = make(map[uint]bool)
		}
		round := byRound[p.Round]
		assert.False(t, round[p.HomeTeamID], "team %d has two fixtures in round %d", p.HomeTeamID, p.Round)
		assert.False(t, round[p.AwayTeamID], "team %d has two fixtures in round %d", p.AwayTeamID, p.Round)
		round[p.HomeTeamID] = true
		round[p.AwayTeamID] = true
	}
}

func TestRoundRobinTooFewTeams(t *testing.T) {
	assert.Nil(t, RoundRobinPairings(nil))
	assert.Nil(t, RoundRobinPairings([]uint{7}))
}

func TestDoubleRoundRobinSwapsLegs(t *testing.T) {
	teams := []uint{1, 2, 3}

	pairings := DoubleRoundRobinPairings(teams)

	require.Len(t, pairings, 6)

	// Every ordered pairing appears exactly once: home and away legs.
	ordered := make(map[[2]uint]int)
	for _, p := range pairings {
		ordered[[2]uint{p.HomeTeamID, p.AwayTeamID}]++
	}
	assert.Len(t, ordered, 6)
	for pair, count := range ordered {
		assert.Equal(t, 1, count, "ordered pair %v scheduled %d times", pair, count)
	}
}

func TestFormatDefaults(t *testing.T) {
	assert.Equal(t, 20, FormatT20.DefaultOversLimit())
	assert.Equal(t, 6, FormatT20.DefaultPowerplay())
	assert.Equal(t, 50, FormatODI.DefaultOversLimit())
	assert.Equal(t, 10, FormatODI.DefaultPowerplay())
	assert.Equal(t, 90, FormatTest.DefaultOversLimit())
	assert.Equal(t, 0, FormatTest.DefaultPowerplay())
}
