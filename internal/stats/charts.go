package stats

import (
	"github.com/crichq/pavilion/internal/match"
)

// Phase partitions a limited-overs innings: the powerplay up front, the
// death at the back, the middle between.
type Phase struct {
	Name      string  `json:"name"` // "powerplay", "middle", "death"
	FromOver  int     `json:"from_over"`
	ToOver    int     `json:"to_over"`
	Runs      int     `json:"runs"`
	Wickets   int     `json:"wickets"`
	Balls     int     `json:"balls"` // legal balls
	RunRate   float64 `json:"run_rate"`
	Fours     int     `json:"fours"`
	Sixes     int     `json:"sixes"`
	DotBalls  int     `json:"dot_balls"`
}

const deathOvers = 5

// ComputePhases partitions deliveries into powerplay, middle and death
// phases and computes per-phase run rates. Short formats collapse: when the
// allotment leaves no room for a middle phase it has zero overs.
func ComputePhases(deliveries []match.BallDelivery, oversLimit, powerplayOvers int) []Phase {
	deathStart := oversLimit - deathOvers + 1
	if deathStart <= powerplayOvers {
		deathStart = powerplayOvers + 1
	}

	phases := []Phase{
		{Name: "powerplay", FromOver: 1, ToOver: powerplayOvers},
		{Name: "middle", FromOver: powerplayOvers + 1, ToOver: deathStart - 1},
		{Name: "death", FromOver: deathStart, ToOver: oversLimit},
	}

	for _, d := range deliveries {
		for i := range phases {
			p := &phases[i]
			if d.OverNumber < p.FromOver || d.OverNumber > p.ToOver {
				continue
			}
			p.Runs += d.TotalRuns()
			if d.IsLegal {
				p.Balls++
			}
			if d.IsWicket {
				p.Wickets++
			}
			if d.IsFour {
				p.Fours++
			}
			if d.IsSix {
				p.Sixes++
			}
			if d.IsLegal && d.TotalRuns() == 0 {
				p.DotBalls++
			}
			break
		}
	}

	for i := range phases {
		if phases[i].Balls > 0 {
			phases[i].RunRate = float64(phases[i].Runs) / match.DecimalOvers(phases[i].Balls)
		}
	}
	return phases
}

// Partnership is a stand between two batters, broken by a wicket or the end
// of the innings.
type Partnership struct {
	BatterAID uint `json:"batter_a_id"`
	BatterBID uint `json:"batter_b_id"`
	Runs      int  `json:"runs"`
	Balls     int  `json:"balls"` // legal balls
	Unbroken  bool `json:"unbroken"`
}

// ComputePartnerships walks the delivery log in order and accumulates stands.
// Every run scored while a pair is together counts to the partnership,
// extras included.
func ComputePartnerships(deliveries []match.BallDelivery) []Partnership {
	var partnerships []Partnership
	var current *Partnership

	samePair := func(p *Partnership, a, b uint) bool {
		return (p.BatterAID == a && p.BatterBID == b) || (p.BatterAID == b && p.BatterBID == a)
	}

	for _, d := range deliveries {
		if current == nil || !samePair(current, d.StrikerID, d.NonStrikerID) {
			partnerships = append(partnerships, Partnership{
				BatterAID: d.StrikerID,
				BatterBID: d.NonStrikerID,
				Unbroken:  true,
			})
			current = &partnerships[len(partnerships)-1]
		}

		current.Runs += d.TotalRuns()
		if d.IsLegal {
			current.Balls++
		}
		if d.IsWicket {
			current.Unbroken = false
			current = nil
		}
	}
	return partnerships
}

// OverSummary is one bar of a manhattan chart.
type OverSummary struct {
	OverNumber int    `json:"over_number"`
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	BowlerID   uint   `json:"bowler_id"`
}

// ComputeManhattan aggregates runs and wickets per over.
func ComputeManhattan(deliveries []match.BallDelivery) []OverSummary {
	byOver := make(map[int]*OverSummary)
	maxOver := 0
	for _, d := range deliveries {
		o, ok := byOver[d.OverNumber]
		if !ok {
			o = &OverSummary{OverNumber: d.OverNumber, BowlerID: d.BowlerID}
			byOver[d.OverNumber] = o
		}
		o.Runs += d.TotalRuns()
		if d.IsWicket {
			o.Wickets++
		}
		if d.OverNumber > maxOver {
			maxOver = d.OverNumber
		}
	}

	overs := make([]OverSummary, 0, maxOver)
	for i := 1; i <= maxOver; i++ {
		if o, ok := byOver[i]; ok {
			overs = append(overs, *o)
		} else {
			overs = append(overs, OverSummary{OverNumber: i})
		}
	}
	return overs
}

// WormPoint is one step of the cumulative score line.
type WormPoint struct {
	OverNumber int `json:"over_number"`
	Runs       int `json:"runs"`    // cumulative
	Wickets    int `json:"wickets"` // cumulative
}

// ComputeWorm turns the manhattan series into its cumulative form.
func ComputeWorm(deliveries []match.BallDelivery) []WormPoint {
	overs := ComputeManhattan(deliveries)
	points := make([]WormPoint, 0, len(overs))
	runs, wickets := 0, 0
	for _, o := range overs {
		runs += o.Runs
		wickets += o.Wickets
		points = append(points, WormPoint{OverNumber: o.OverNumber, Runs: runs, Wickets: wickets})
	}
	return points
}

// WagonWheelShot is one scoring shot with its recorded direction.
type WagonWheelShot struct {
	DeliveryID uint    `json:"delivery_id"`
	StrikerID  uint    `json:"striker_id"`
	BowlerID   uint    `json:"bowler_id"`
	Runs       int     `json:"runs"`
	Angle      float64 `json:"angle"`
	Distance   float64 `json:"distance"`
	IsFour     bool    `json:"is_four"`
	IsSix      bool    `json:"is_six"`
}

// WagonWheelFilter narrows the shot set. Zero values mean no filtering.
type WagonWheelFilter struct {
	BatterID uint
	BowlerID uint
	MinRuns  int
}

// ComputeWagonWheel reshapes deliveries carrying shot coordinates into wagon
// wheel points. Coordinates are scorer-recorded, never derived.
func ComputeWagonWheel(deliveries []match.BallDelivery, filter WagonWheelFilter) []WagonWheelShot {
	shots := make([]WagonWheelShot, 0)
	for _, d := range deliveries {
		if d.ShotAngle == nil || d.ShotDistance == nil {
			continue
		}
		if filter.BatterID != 0 && d.StrikerID != filter.BatterID {
			continue
		}
		if filter.BowlerID != 0 && d.BowlerID != filter.BowlerID {
			continue
		}
		if d.RunsOffBat < filter.MinRuns {
			continue
		}
		shots = append(shots, WagonWheelShot{
			DeliveryID: d.ID,
			StrikerID:  d.StrikerID,
			BowlerID:   d.BowlerID,
			Runs:       d.RunsOffBat,
			Angle:      *d.ShotAngle,
			Distance:   *d.ShotDistance,
			IsFour:     d.IsFour,
			IsSix:      d.IsSix,
		})
	}
	return shots
}

// PitchMapBall is one delivery's recorded landing zone.
type PitchMapBall struct {
	DeliveryID uint   `json:"delivery_id"`
	BowlerID   uint   `json:"bowler_id"`
	StrikerID  uint   `json:"striker_id"`
	Line       string `json:"line"`
	Length     string `json:"length"`
	Runs       int    `json:"runs"`
	IsWicket   bool   `json:"is_wicket"`
}

// ComputePitchMap reshapes deliveries carrying line and length into pitch
// map points, optionally filtered by bowler.
func ComputePitchMap(deliveries []match.BallDelivery, bowlerID uint) []PitchMapBall {
	balls := make([]PitchMapBall, 0)
	for _, d := range deliveries {
		if d.PitchLine == nil || d.PitchLength == nil {
			continue
		}
		if bowlerID != 0 && d.BowlerID != bowlerID {
			continue
		}
		balls = append(balls, PitchMapBall{
			DeliveryID: d.ID,
			BowlerID:   d.BowlerID,
			StrikerID:  d.StrikerID,
			Line:       *d.PitchLine,
			Length:     *d.PitchLength,
			Runs:       d.TotalRuns(),
			IsWicket:   d.IsWicket,
		})
	}
	return balls
}
