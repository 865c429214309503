package outcome

// Point names a checkpoint reached during one evaluation.
type Point string

func (p Point) String() string {
	return string(p)
}

// Trail is the ordered record of checkpoints reached by one evaluation.
// Points are only ever appended. A Trail belongs to a single evaluation and
// must not be shared across goroutines.
type Trail struct {
	points []Point
}

// Record appends a point and returns the trail for chaining.
func (t *Trail) Record(p Point) *Trail {
	t.points = append(t.points, p)
	return t
}

// Snapshot returns a copy of the recorded points in insertion order.
func (t *Trail) Snapshot() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

func (t *Trail) Len() int {
	return len(t.points)
}

// Strings renders points for structured logs and audit events.
func Strings(points []Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = string(p)
	}
	return out
}
