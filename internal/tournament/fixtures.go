package tournament

// Pairing is one scheduled head-to-head, home side first.
type Pairing struct {
	HomeTeamID uint
	AwayTeamID uint
	Round      int // 1-indexed round number
}

// RoundRobinPairings builds a single round-robin schedule using the circle
// method: one team stays fixed while the rest rotate, giving every team at
// most one fixture per round. An odd entry count gets a rotating bye.
func RoundRobinPairings(teamIDs []uint) []Pairing {
	if len(teamIDs) < 2 {
		return nil
	}

	ids := make([]uint, len(teamIDs))
	copy(ids, teamIDs)
	if len(ids)%2 == 1 {
		ids = append(ids, 0) // bye slot
	}

	n := len(ids)
	rounds := n - 1
	half := n / 2

	var pairings []Pairing
	for round := 0; round < rounds; round++ {
		for i := 0; i < half; i++ {
			home := ids[i]
			away := ids[n-1-i]
			if home == 0 || away == 0 {
				continue
			}
			// Alternate home advantage for the fixed team's fixtures.
			if round%2 == 1 && i == 0 {
				home, away = away, home
			}
			pairings = append(pairings, Pairing{HomeTeamID: home, AwayTeamID: away, Round: round + 1})
		}

		// Rotate all but the first element.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}
	return pairings
}

// DoubleRoundRobinPairings appends a reverse leg with home and away swapped.
func DoubleRoundRobinPairings(teamIDs []uint) []Pairing {
	first := RoundRobinPairings(teamIDs)
	if first == nil {
		return nil
	}

	rounds := 0
	for _, p := range first {
		if p.Round > rounds {
			rounds = p.Round
		}
	}

	second := make([]Pairing, 0, len(first))
	for _, p := range first {
		second = append(second, Pairing{
			HomeTeamID: p.AwayTeamID,
			AwayTeamID: p.HomeTeamID,
			Round:      p.Round + rounds,
		})
	}
	return append(first, second...)
}
