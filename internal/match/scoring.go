package match

import (
	"github.com/crichq/pavilion/internal/common"
)

// CompletionReason says why an innings closed.
type CompletionReason string

const (
	CompletionAllOut        CompletionReason = "all_out"
	CompletionOvers         CompletionReason = "overs_exhausted"
	CompletionTargetReached CompletionReason = "target_reached"
	CompletionDeclared      CompletionReason = "declared"
)

// DeliveryInput is one delivery's outcome as submitted by the scorer,
// already resolved to ids.
type DeliveryInput struct {
	BowlerID   uint
	RunsOffBat int
	Extra      *ExtraInput
	Wicket     *WicketInput
}

// DeliveryOutcome reports what applying a delivery did to the innings.
type DeliveryOutcome struct {
	Legal            bool
	TotalRuns        int
	OverNumber       int
	BallNumberInOver int
	DeliveryInOver   int
	OverCompleted    bool
	WicketFell       bool
	PlayerOutID      uint
	BowlerCredited   bool
	InningsComplete  bool
	Reason           CompletionReason
}

// ValidateDelivery rejects a delivery before any state is touched. The
// striker check against the submitted batsman id lives in the service,
// which resolves the ids.
func ValidateDelivery(inn *Innings, in DeliveryInput) error {
	if inn.Status != InningsInProgress {
		return common.NewState("innings", string(inn.Status), "record delivery")
	}
	if inn.TotalWickets >= 10 {
		return common.NewState("innings", "all out", "record delivery")
	}
	if inn.CurrentStrikerID == nil || inn.CurrentNonStrikerID == nil {
		return common.NewState("innings", "without batters at the crease", "record delivery")
	}
	if in.RunsOffBat < 0 || in.RunsOffBat > 6 {
		return common.NewValidation("runs_off_bat", "must be between 0 and 6")
	}
	if in.Extra != nil {
		if in.Extra.Runs < 1 {
			return common.NewValidation("extra.runs", "must be at least 1")
		}
		if in.Extra.Type == ExtraWide && in.RunsOffBat > 0 {
			return common.NewValidation("runs_off_bat", "cannot score off the bat from a wide")
		}
		if (in.Extra.Type == ExtraBye || in.Extra.Type == ExtraLegBye) && in.RunsOffBat > 0 {
			return common.NewValidation("runs_off_bat", "byes and leg-byes cannot coexist with bat runs on one delivery")
		}
	}
	if in.Wicket != nil {
		outID := *inn.CurrentStrikerID
		if in.Wicket.PlayerOutID != nil {
			outID = *in.Wicket.PlayerOutID
		}
		if outID != *inn.CurrentStrikerID && outID != *inn.CurrentNonStrikerID {
			return common.NewValidation("wicket.player_out_id", "dismissed player must be one of the batters at the crease")
		}
		if outID == *inn.CurrentNonStrikerID && in.Wicket.DismissalType.CreditsBowler() {
			return common.NewValidation("wicket.dismissal_type", "non-striker can only be out run out, retired, timed out or obstructing")
		}
	}
	return nil
}

// runsPhysicallyRun is how many times the batters crossed, which decides
// strike rotation. The one-run penalty baked into a wide or no-ball is not
// a crossing.
func runsPhysicallyRun(in DeliveryInput) int {
	runs := in.RunsOffBat
	if in.Extra != nil {
		switch in.Extra.Type {
		case ExtraWide, ExtraNoBall:
			if in.Extra.Runs > 1 {
				runs += in.Extra.Runs - 1
			}
		case ExtraBye, ExtraLegBye:
			runs += in.Extra.Runs
		}
	}
	return runs
}

// ApplyDelivery folds one validated delivery into the innings, the
// striker's batting entry and the bowler's figures. outEntry is the card of
// the dismissed batter when a wicket falls (usually the striker), nil
// otherwise. All mutations are in-memory; the caller persists them in one
// transaction.
func ApplyDelivery(inn *Innings, striker *BattingEntry, outEntry *BattingEntry, figures *BowlingFigures, in DeliveryInput) DeliveryOutcome {
	var out DeliveryOutcome

	out.Legal = in.Extra == nil || in.Extra.Type.ConsumesBall()
	extraRuns := 0
	if in.Extra != nil {
		extraRuns = in.Extra.Runs
	}
	out.TotalRuns = in.RunsOffBat + extraRuns
	out.OverNumber = inn.Balls/6 + 1
	out.BallNumberInOver = inn.Balls%6 + 1

	inn.CurrentOverDeliveries++
	out.DeliveryInOver = inn.CurrentOverDeliveries

	// Innings totals and extras breakdown.
	inn.TotalRuns += out.TotalRuns
	if in.Extra != nil {
		inn.Extras += in.Extra.Runs
		switch in.Extra.Type {
		case ExtraWide:
			inn.WideRuns += in.Extra.Runs
		case ExtraNoBall:
			inn.NoBallRuns += in.Extra.Runs
		case ExtraBye:
			inn.ByeRuns += in.Extra.Runs
		case ExtraLegBye:
			inn.LegByeRuns += in.Extra.Runs
		case ExtraPenalty:
			inn.PenaltyRuns += in.Extra.Runs
		}
	}

	if out.Legal {
		inn.Balls++
		inn.Overs = OversFromBalls(inn.Balls)
	}

	// Striker's card. A wide is the only delivery the batter does not face.
	if in.Extra == nil || in.Extra.Type != ExtraWide {
		striker.BallsFaced++
	}
	striker.RunsScored += in.RunsOffBat
	if in.RunsOffBat == 4 {
		striker.Fours++
	}
	if in.RunsOffBat == 6 {
		striker.Sixes++
	}
	striker.StrikeRate = strikeRate(striker.RunsScored, striker.BallsFaced)

	// Bowler's figures. Byes and leg-byes are not the bowler's fault.
	if out.Legal {
		figures.BallsBowled++
		figures.OversBowled = OversFromBalls(figures.BallsBowled)
	}
	conceded := in.RunsOffBat
	if in.Extra != nil && in.Extra.Type.ChargedToBowler() {
		conceded += in.Extra.Runs
	}
	figures.RunsConceded += conceded
	if in.Extra != nil {
		switch in.Extra.Type {
		case ExtraWide:
			figures.Wides++
		case ExtraNoBall:
			figures.NoBalls++
		}
	}
	if out.Legal && out.TotalRuns == 0 {
		figures.Dots++
	}
	figures.EconomyRate = economyRate(figures.RunsConceded, figures.BallsBowled)

	// Wicket.
	if in.Wicket != nil {
		out.WicketFell = true
		out.PlayerOutID = *inn.CurrentStrikerID
		if in.Wicket.PlayerOutID != nil {
			out.PlayerOutID = *in.Wicket.PlayerOutID
		}
		out.BowlerCredited = in.Wicket.DismissalType.CreditsBowler()

		inn.TotalWickets++
		if out.BowlerCredited {
			figures.Wickets++
		}
		if outEntry != nil {
			dt := in.Wicket.DismissalType
			outEntry.NotOut = false
			outEntry.HowOut = &dt
			outEntry.FielderID = in.Wicket.FielderID
			if out.BowlerCredited {
				bowlerID := in.BowlerID
				outEntry.BowlerID = &bowlerID
			}
		}
	}

	// Strike rotation: odd completed runs swap the batters, and the end of
	// an over swaps them back.
	if runsPhysicallyRun(in)%2 == 1 {
		swapStrike(inn)
	}
	if out.Legal && inn.Balls%6 == 0 {
		out.OverCompleted = true
		inn.CurrentOverDeliveries = 0
		swapStrike(inn)
	}

	// Completion triggers.
	switch {
	case inn.TotalWickets >= 10:
		out.InningsComplete = true
		out.Reason = CompletionAllOut
	case inn.Balls >= inn.OversLimit*6:
		out.InningsComplete = true
		out.Reason = CompletionOvers
	case inn.TargetScore != nil && inn.TotalRuns >= *inn.TargetScore:
		out.InningsComplete = true
		out.Reason = CompletionTargetReached
	}
	if out.InningsComplete {
		inn.Status = InningsCompleted
	}

	return out
}

func swapStrike(inn *Innings) {
	inn.CurrentStrikerID, inn.CurrentNonStrikerID = inn.CurrentNonStrikerID, inn.CurrentStrikerID
}

func strikeRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

func economyRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) / DecimalOvers(balls)
}
