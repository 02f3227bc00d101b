package geom

// ccw reports whether a, b, c wind counter-clockwise.
func ccw(a, b, c Vec) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsCross reports whether segment ab crosses segment cd.
//
// Collinear segments are never reported as crossing.
func SegmentsCross(a, b, c, d Vec) bool {
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}

// PathLength sums the distances from start through each point in order.
func PathLength(start Vec, points []Vec) float64 {
	total := 0.0
	prev := start
	for _, p := range points {
		total += Dist(prev, p)
		prev = p
	}
	return total
}
