package tournament

import (
	"fmt"
	"sort"
)

// PointsTable maps a 1-based daily rank to the tournament points it awards.
type PointsTable map[int]int

// For returns the points of rank, or 0 when the rank is beyond the table.
func (p PointsTable) For(rank int) int {
	return p[rank]
}

func (p PointsTable) MaxRank() int {
	maxRank := 0
	for rank := range p {
		if rank > maxRank {
			maxRank = rank
		}
	}
	return maxRank
}

// Total is the sum of every rank's points.
func (p PointsTable) Total() int {
	total := 0
	for _, pts := range p {
		total += pts
	}
	return total
}

// Ranks returns the table's ranks in ascending order.
func (p PointsTable) Ranks() []int {
	out := make([]int, 0, len(p))
	for rank := range p {
		out = append(out, rank)
	}
	sort.Ints(out)
	return out
}

func (p PointsTable) validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: points table is empty", ErrInvalidTournament)
	}
	for rank := 1; rank <= len(p); rank++ {
		pts, ok := p[rank]
		if !ok {
			return fmt.Errorf("%w: points table ranks must be contiguous from 1, missing rank %d", ErrInvalidTournament, rank)
		}
		if pts < 0 {
			return fmt.Errorf("%w: points for rank %d must be >= 0", ErrInvalidTournament, rank)
		}
	}
	return nil
}
