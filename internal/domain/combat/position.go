package combat

// Position is a cell on the integer battle grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanDistance is the straight-line grid distance used for ranged and
// area targeting.
func ManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// KingMoveDistance is the omnidirectional (chessboard) distance used for
// melee reach.
func KingMoveDistance(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
