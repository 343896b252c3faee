package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crichq/pavilion/internal/common"
)

// scoringHarness holds the in-memory state ApplyDelivery mutates, tracking
// a card per batter and figures per bowler like the service does.
type scoringHarness struct {
	inn     *Innings
	entries map[uint]*BattingEntry
	figures map[uint]*BowlingFigures
	nextID  uint
}

func newHarness(oversLimit int) *scoringHarness {
	striker, nonStriker := uint(1), uint(2)
	h := &scoringHarness{
		inn: &Innings{
			InningsNumber:       1,
			BattingTeamID:       100,
			BowlingTeamID:       200,
			OversLimit:          oversLimit,
			Status:              InningsInProgress,
			CurrentStrikerID:    &striker,
			CurrentNonStrikerID: &nonStriker,
		},
		entries: map[uint]*BattingEntry{
			striker:    {PlayerID: striker, Position: 1, NotOut: true},
			nonStriker: {PlayerID: nonStriker, Position: 2, NotOut: true},
		},
		figures: map[uint]*BowlingFigures{},
		nextID:  3,
	}
	return h
}

func (h *scoringHarness) bowl(t *testing.T, in DeliveryInput) DeliveryOutcome {
	t.Helper()
	require.NoError(t, ValidateDelivery(h.inn, in))

	striker := h.entries[*h.inn.CurrentStrikerID]
	figures, ok := h.figures[in.BowlerID]
	if !ok {
		figures = &BowlingFigures{PlayerID: in.BowlerID}
		h.figures[in.BowlerID] = figures
	}

	outEntry := striker
	if in.Wicket != nil && in.Wicket.PlayerOutID != nil {
		outEntry = h.entries[*in.Wicket.PlayerOutID]
	}

	out := ApplyDelivery(h.inn, striker, outEntry, figures, in)

	if out.WicketFell && !out.InningsComplete {
		replacement := h.nextID
		h.nextID++
		h.entries[replacement] = &BattingEntry{PlayerID: replacement, NotOut: true}
		if *h.inn.CurrentStrikerID == out.PlayerOutID {
			h.inn.CurrentStrikerID = &replacement
		} else {
			h.inn.CurrentNonStrikerID = &replacement
		}
	}
	return out
}

func runs(n int) DeliveryInput {
	return DeliveryInput{BowlerID: 50, RunsOffBat: n}
}

func TestSimpleOverTotalsAndRotation(t *testing.T) {
	h := newHarness(20)

	sequence := []int{1, 4, 0, 2, 6, 1}
	var last DeliveryOutcome
	for _, r := range sequence {
		last = h.bowl(t, runs(r))
	}

	assert.Equal(t, 14, h.inn.TotalRuns)
	assert.Equal(t, 0, h.inn.TotalWickets)
	assert.Equal(t, 6, h.inn.Balls)
	assert.Equal(t, 1.0, h.inn.Overs)
	assert.True(t, last.OverCompleted)
	assert.False(t, last.InningsComplete)

	// Singles off balls 1 and 6 swap the strike, the over end swaps back.
	// Player 1: balls 1 and 6. Player 2: balls 2 through 5.
	assert.Equal(t, 2, h.entries[1].RunsScored)
	assert.Equal(t, 2, h.entries[1].BallsFaced)
	assert.Equal(t, 12, h.entries[2].RunsScored)
	assert.Equal(t, 4, h.entries[2].BallsFaced)
	assert.Equal(t, 1, h.entries[2].Fours)
	assert.Equal(t, 1, h.entries[2].Sixes)

	// Over-end swap leaves player 2 on strike for the next over.
	assert.Equal(t, uint(2), *h.inn.CurrentStrikerID)

	fig := h.figures[50]
	assert.Equal(t, 6, fig.BallsBowled)
	assert.Equal(t, 14, fig.RunsConceded)
	assert.Equal(t, 1, fig.Dots)
	assert.InDelta(t, 14.0, fig.EconomyRate, 0.001)
}

func TestWideDoesNotConsumeBallOrCountAsFaced(t *testing.T) {
	h := newHarness(20)

	out := h.bowl(t, DeliveryInput{
		BowlerID: 50,
		Extra:    &ExtraInput{Type: ExtraWide, Runs: 1},
	})

	assert.False(t, out.Legal)
	assert.Equal(t, 0, h.inn.Balls)
	assert.Equal(t, 1, h.inn.TotalRuns)
	assert.Equal(t, 1, h.inn.WideRuns)
	assert.Equal(t, 0, h.entries[1].BallsFaced)

	fig := h.figures[50]
	assert.Equal(t, 0, fig.BallsBowled)
	assert.Equal(t, 1, fig.Wides)
	assert.Equal(t, 1, fig.RunsConceded)
}

func TestNoBallWithBatRuns(t *testing.T) {
	h := newHarness(20)

	out := h.bowl(t, DeliveryInput{
		BowlerID:   50,
		RunsOffBat: 4,
		Extra:      &ExtraInput{Type: ExtraNoBall, Runs: 1},
	})

	assert.False(t, out.Legal)
	assert.Equal(t, 5, out.TotalRuns)
	assert.Equal(t, 0, h.inn.Balls)
	assert.Equal(t, 5, h.inn.TotalRuns)
	assert.Equal(t, 1, h.inn.NoBallRuns)

	// The batter faces a no-ball and keeps the boundary.
	assert.Equal(t, 1, h.entries[1].BallsFaced)
	assert.Equal(t, 4, h.entries[1].RunsScored)
	assert.Equal(t, 1, h.entries[1].Fours)

	fig := h.figures[50]
	assert.Equal(t, 1, fig.NoBalls)
	assert.Equal(t, 5, fig.RunsConceded)
}

func TestByesNotChargedToBowler(t *testing.T) {
	h := newHarness(20)

	h.bowl(t, DeliveryInput{
		BowlerID: 50,
		Extra:    &ExtraInput{Type: ExtraBye, Runs: 2},
	})

	assert.Equal(t, 1, h.inn.Balls)
	assert.Equal(t, 2, h.inn.TotalRuns)
	assert.Equal(t, 2, h.inn.ByeRuns)
	assert.Equal(t, 0, h.figures[50].RunsConceded)
	assert.Equal(t, 1, h.figures[50].BallsBowled)
}

func TestOddRunsRotateStrike(t *testing.T) {
	h := newHarness(20)

	h.bowl(t, runs(1))
	assert.Equal(t, uint(2), *h.inn.CurrentStrikerID)

	h.bowl(t, runs(2))
	assert.Equal(t, uint(2), *h.inn.CurrentStrikerID)

	h.bowl(t, runs(3))
	assert.Equal(t, uint(1), *h.inn.CurrentStrikerID)

	// A single leg-bye is physically run, so it rotates the strike too.
	h.bowl(t, DeliveryInput{BowlerID: 50, Extra: &ExtraInput{Type: ExtraLegBye, Runs: 1}})
	assert.Equal(t, uint(2), *h.inn.CurrentStrikerID)
}

func TestWicketMidOver(t *testing.T) {
	h := newHarness(20)

	h.bowl(t, runs(4))
	fielder := uint(77)
	out := h.bowl(t, DeliveryInput{
		BowlerID: 50,
		Wicket:   &WicketInput{DismissalType: DismissalCaught, FielderID: &fielder},
	})

	require.True(t, out.WicketFell)
	assert.Equal(t, uint(1), out.PlayerOutID)
	assert.True(t, out.BowlerCredited)
	assert.Equal(t, 1, h.inn.TotalWickets)
	assert.Equal(t, 1, h.figures[50].Wickets)

	outCard := h.entries[1]
	assert.False(t, outCard.NotOut)
	require.NotNil(t, outCard.HowOut)
	assert.Equal(t, DismissalCaught, *outCard.HowOut)
	require.NotNil(t, outCard.BowlerID)
	assert.Equal(t, uint(50), *outCard.BowlerID)

	// The replacement takes the vacated end.
	assert.Equal(t, uint(3), *h.inn.CurrentStrikerID)
	assert.Equal(t, uint(2), *h.inn.CurrentNonStrikerID)
}

func TestRunOutDoesNotCreditBowler(t *testing.T) {
	h := newHarness(20)

	out := h.bowl(t, DeliveryInput{
		BowlerID:   50,
		RunsOffBat: 1,
		Wicket:     &WicketInput{DismissalType: DismissalRunOut},
	})

	assert.True(t, out.WicketFell)
	assert.False(t, out.BowlerCredited)
	assert.Equal(t, 0, h.figures[50].Wickets)
	assert.Equal(t, 1, h.inn.TotalWickets)
}

func TestTenthWicketCompletesInnings(t *testing.T) {
	h := newHarness(20)
	h.inn.TotalWickets = 9

	out := h.bowl(t, DeliveryInput{
		BowlerID: 50,
		Wicket:   &WicketInput{DismissalType: DismissalBowled},
	})

	assert.True(t, out.InningsComplete)
	assert.Equal(t, CompletionAllOut, out.Reason)
	assert.Equal(t, InningsCompleted, h.inn.Status)
}

func TestAllOutRejectsFurtherDeliveries(t *testing.T) {
	h := newHarness(20)
	h.inn.TotalWickets = 10

	err := ValidateDelivery(h.inn, runs(1))
	var se *common.StateError
	require.ErrorAs(t, err, &se)
}

func TestOversExhaustedCompletesInnings(t *testing.T) {
	h := newHarness(1)

	var last DeliveryOutcome
	for i := 0; i < 6; i++ {
		last = h.bowl(t, runs(0))
	}

	assert.True(t, last.InningsComplete)
	assert.Equal(t, CompletionOvers, last.Reason)
}

func TestTargetReachedCompletesInnings(t *testing.T) {
	h := newHarness(20)
	target := 5
	h.inn.TargetScore = &target

	out := h.bowl(t, runs(6))

	assert.True(t, out.InningsComplete)
	assert.Equal(t, CompletionTargetReached, out.Reason)
}

func TestWideWithBatRunsRejected(t *testing.T) {
	h := newHarness(20)

	err := ValidateDelivery(h.inn, DeliveryInput{
		BowlerID:   50,
		RunsOffBat: 2,
		Extra:      &ExtraInput{Type: ExtraWide, Runs: 1},
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestNonStrikerCannotBeBowled(t *testing.T) {
	h := newHarness(20)
	nonStriker := uint(2)

	err := ValidateDelivery(h.inn, DeliveryInput{
		BowlerID: 50,
		Wicket:   &WicketInput{DismissalType: DismissalBowled, PlayerOutID: &nonStriker},
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRunsConservation(t *testing.T) {
	h := newHarness(20)

	inputs := []DeliveryInput{
		runs(1),
		runs(4),
		{BowlerID: 50, Extra: &ExtraInput{Type: ExtraWide, Runs: 1}},
		runs(0),
		{BowlerID: 50, Extra: &ExtraInput{Type: ExtraNoBall, Runs: 1}, RunsOffBat: 2},
		{BowlerID: 50, Extra: &ExtraInput{Type: ExtraLegBye, Runs: 2}},
		runs(6),
		{BowlerID: 50, Extra: &ExtraInput{Type: ExtraBye, Runs: 1}},
	}

	for _, in := range inputs {
		h.bowl(t, in)
	}

	batRuns := 0
	for _, e := range h.entries {
		batRuns += e.RunsScored
	}
	assert.Equal(t, batRuns+h.inn.Extras, h.inn.TotalRuns)
	assert.Equal(t,
		h.inn.WideRuns+h.inn.NoBallRuns+h.inn.ByeRuns+h.inn.LegByeRuns+h.inn.PenaltyRuns,
		h.inn.Extras)
}

func TestWicketsAndOversMonotonic(t *testing.T) {
	h := newHarness(20)

	prevWickets, prevBalls := 0, 0
	inputs := []DeliveryInput{
		runs(2),
		{BowlerID: 50, Extra: &ExtraInput{Type: ExtraWide, Runs: 1}},
		{BowlerID: 50, Wicket: &WicketInput{DismissalType: DismissalLBW}},
		runs(0),
		runs(1),
	}
	for _, in := range inputs {
		h.bowl(t, in)
		assert.GreaterOrEqual(t, h.inn.TotalWickets, prevWickets)
		assert.GreaterOrEqual(t, h.inn.Balls, prevBalls)
		prevWickets, prevBalls = h.inn.TotalWickets, h.inn.Balls
	}
}

func TestOversNotation(t *testing.T) {
	assert.Equal(t, 0.0, OversFromBalls(0))
	assert.InDelta(t, 0.3, OversFromBalls(3), 0.0001)
	assert.Equal(t, 1.0, OversFromBalls(6))
	assert.InDelta(t, 10.2, OversFromBalls(62), 0.0001)
	assert.InDelta(t, 10.5, DecimalOvers(63), 0.0001)
}
