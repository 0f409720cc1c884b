package fanout

// PreviewRays returns the candidate directions a style can produce at the
// given angle, for drawing a style preview. Rays are unnormalised in the same
// way SelectDirection's results are.
func PreviewRays(style Style, angleDegrees float64) []Vector {
	var base []Vector
	switch style {
	case Angled:
		return []Vector{Rotate(Vector{X: 1, Y: 0}, angleDegrees)}
	case Diagonal:
		return []Vector{{X: -1, Y: -1}, {X: 1, Y: 1}}
	case Quadrant:
		base = []Vector{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	case SquareQuadrant:
		base = []Vector{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	default:
		return nil
	}

	rays := make([]Vector, len(base))
	for i, v := range base {
		rays[i] = Rotate(v, angleDegrees)
	}
	return rays
}
