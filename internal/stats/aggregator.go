package stats

import (
	"sort"

	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/tournament"
)

// BattingCareer is a fold over a player's finalized batting entries.
type BattingCareer struct {
	Innings      int     `json:"innings"`
	Runs         int     `json:"runs"`
	Balls        int     `json:"balls"`
	NotOuts      int     `json:"not_outs"`
	HighestScore int     `json:"highest_score"`
	Hundreds     int     `json:"hundreds"`
	Fifties      int     `json:"fifties"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	Average      float64 `json:"average"`
	StrikeRate   float64 `json:"strike_rate"`
}

// FoldBattingCareer recomputes batting aggregates from scratch. A batter
// never dismissed has average equal to raw runs rather than a division by
// zero.
func FoldBattingCareer(entries []match.BattingEntry) BattingCareer {
	var c BattingCareer
	for _, e := range entries {
		c.Innings++
		c.Runs += e.RunsScored
		c.Balls += e.BallsFaced
		c.Fours += e.Fours
		c.Sixes += e.Sixes
		if e.NotOut {
			c.NotOuts++
		}
		if e.RunsScored > c.HighestScore {
			c.HighestScore = e.RunsScored
		}
		switch {
		case e.RunsScored >= 100:
			c.Hundreds++
		case e.RunsScored >= 50:
			c.Fifties++
		}
	}

	dismissals := c.Innings - c.NotOuts
	if dismissals > 0 {
		c.Average = float64(c.Runs) / float64(dismissals)
	} else {
		c.Average = float64(c.Runs)
	}
	if c.Balls > 0 {
		c.StrikeRate = float64(c.Runs) / float64(c.Balls) * 100
	}
	return c
}

// BowlingCareer is a fold over a player's finalized bowling figures.
type BowlingCareer struct {
	Innings         int     `json:"innings"`
	Balls           int     `json:"balls"`
	Overs           float64 `json:"overs"`
	RunsConceded    int     `json:"runs_conceded"`
	Wickets         int     `json:"wickets"`
	Maidens         int     `json:"maidens"`
	BestWickets     int     `json:"best_wickets"`
	BestRuns        int     `json:"best_runs"`
	FiveWicketHauls int     `json:"five_wicket_hauls"`
	Average         float64 `json:"average"`
	Economy         float64 `json:"economy"`
}

// FoldBowlingCareer recomputes bowling aggregates from scratch. Best figures
// are the most wickets, fewest runs breaking ties.
func FoldBowlingCareer(figures []match.BowlingFigures) BowlingCareer {
	var c BowlingCareer
	best := false
	for _, f := range figures {
		if f.BallsBowled == 0 && f.Wickets == 0 {
			continue
		}
		c.Innings++
		c.Balls += f.BallsBowled
		c.RunsConceded += f.RunsConceded
		c.Wickets += f.Wickets
		c.Maidens += f.Maidens
		if f.Wickets >= 5 {
			c.FiveWicketHauls++
		}
		if !best || f.Wickets > c.BestWickets || (f.Wickets == c.BestWickets && f.RunsConceded < c.BestRuns) {
			c.BestWickets = f.Wickets
			c.BestRuns = f.RunsConceded
			best = true
		}
	}

	c.Overs = match.OversFromBalls(c.Balls)
	if c.Wickets > 0 {
		c.Average = float64(c.RunsConceded) / float64(c.Wickets)
	}
	if c.Balls > 0 {
		c.Economy = float64(c.RunsConceded) / match.DecimalOvers(c.Balls)
	}
	return c
}

// FieldingCareer counts dismissals the player assisted in the field.
type FieldingCareer struct {
	Catches   int `json:"catches"`
	Stumpings int `json:"stumpings"`
	RunOuts   int `json:"run_outs"`
}

// FoldFieldingCredits counts catches, stumpings and run outs from wicket
// deliveries crediting the player as fielder.
func FoldFieldingCredits(deliveries []match.BallDelivery) FieldingCareer {
	var c FieldingCareer
	for _, d := range deliveries {
		if !d.IsWicket || d.DismissalType == nil {
			continue
		}
		switch *d.DismissalType {
		case match.DismissalCaught:
			c.Catches++
		case match.DismissalStumped:
			c.Stumpings++
		case match.DismissalRunOut:
			c.RunOuts++
		}
	}
	return c
}

// TeamSummary is a team's completed-match record.
type TeamSummary struct {
	TeamID        uint    `json:"team_id"`
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	Tied          int     `json:"tied"`
	WinPercentage float64 `json:"win_percentage"`
	// Form is the last few results, most recent first, e.g. "WWLTW".
	Form string `json:"form"`
}

// ComputeTeamSummary folds completed matches (oldest first) into a record
// and a recent-form string of length at most formLength.
func ComputeTeamSummary(teamID uint, matches []match.Match, formLength int) TeamSummary {
	s := TeamSummary{TeamID: teamID}
	letters := make([]byte, 0, len(matches))

	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}
		s.Played++
		switch {
		case m.WinningTeamID == nil:
			s.Tied++
			letters = append(letters, 'T')
		case *m.WinningTeamID == teamID:
			s.Won++
			letters = append(letters, 'W')
		default:
			s.Lost++
			letters = append(letters, 'L')
		}
	}

	if s.Played > 0 {
		s.WinPercentage = float64(s.Won) / float64(s.Played) * 100
	}

	if len(letters) > formLength {
		letters = letters[len(letters)-formLength:]
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	s.Form = string(letters)
	return s
}

// PointsRow is one standing in a tournament points table.
type PointsRow struct {
	TeamID     uint    `json:"team_id"`
	TeamName   string  `json:"team_name"`
	Played     int     `json:"played"`
	Won        int     `json:"won"`
	Lost       int     `json:"lost"`
	Tied       int     `json:"tied"`
	NoResults  int     `json:"no_results"`
	Points     int     `json:"points"`
	NetRunRate float64 `json:"net_run_rate"`
}

// nrrTally accumulates the run-rate components for one team.
type nrrTally struct {
	runsFor     int
	ballsFaced  int
	runsAgainst int
	ballsBowled int
}

// nrrBalls is the ball count an innings contributes to net run rate. A side
// bowled out is charged its full allotment, the standard NRR convention.
func nrrBalls(inn match.Innings) int {
	if inn.TotalWickets >= 10 {
		return inn.OversLimit * 6
	}
	return inn.Balls
}

// ComputePointsTable builds the standings: two points a win, one for a tie,
// one each for a no-result. Ordering is points, then net run rate, then
// team name.
func ComputePointsTable(
	entries []tournament.TournamentTeam,
	completed []match.Match,
	inningsByMatch map[uint][]match.Innings,
	abandoned []match.Match,
) []PointsRow {
	rows := make(map[uint]*PointsRow, len(entries))
	tallies := make(map[uint]*nrrTally, len(entries))
	for _, e := range entries {
		rows[e.TeamID] = &PointsRow{TeamID: e.TeamID, TeamName: e.Team.Name}
		tallies[e.TeamID] = &nrrTally{}
	}

	for _, m := range completed {
		for _, teamID := range []uint{m.HomeTeamID, m.AwayTeamID} {
			row, ok := rows[teamID]
			if !ok {
				continue
			}
			row.Played++
			switch {
			case m.WinningTeamID == nil:
				row.Tied++
				row.Points++
			case *m.WinningTeamID == teamID:
				row.Won++
				row.Points += 2
			default:
				row.Lost++
			}
		}

		for _, inn := range inningsByMatch[m.ID] {
			if batting, ok := tallies[inn.BattingTeamID]; ok {
				batting.runsFor += inn.TotalRuns
				batting.ballsFaced += nrrBalls(inn)
			}
			if bowling, ok := tallies[inn.BowlingTeamID]; ok {
				bowling.runsAgainst += inn.TotalRuns
				bowling.ballsBowled += nrrBalls(inn)
			}
		}
	}

	for _, m := range abandoned {
		for _, teamID := range []uint{m.HomeTeamID, m.AwayTeamID} {
			if row, ok := rows[teamID]; ok {
				row.Played++
				row.NoResults++
				row.Points++
			}
		}
	}

	table := make([]PointsRow, 0, len(rows))
	for teamID, row := range rows {
		t := tallies[teamID]
		var forRate, againstRate float64
		if t.ballsFaced > 0 {
			forRate = float64(t.runsFor) / match.DecimalOvers(t.ballsFaced)
		}
		if t.ballsBowled > 0 {
			againstRate = float64(t.runsAgainst) / match.DecimalOvers(t.ballsBowled)
		}
		row.NetRunRate = forRate - againstRate
		table = append(table, *row)
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].NetRunRate != table[j].NetRunRate {
			return table[i].NetRunRate > table[j].NetRunRate
		}
		return table[i].TeamName < table[j].TeamName
	})
	return table
}
