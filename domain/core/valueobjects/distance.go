package valueobjects

// CircleDistance is the closest circle relation between a viewer and an
// author. Ordering matters: self is strongest, inner beats outer beats none.
type CircleDistance int

const (
	DistanceSelf CircleDistance = iota
	DistanceInner
	DistanceOuter
	DistanceNone
)

// Closer reports whether d is a strictly stronger relation than other
func (d CircleDistance) Closer(other CircleDistance) bool {
	return d < other
}

// String implements fmt.Stringer
func (d CircleDistance) String() string {
	switch d {
	case DistanceSelf:
		return "self"
	case DistanceInner:
		return "inner"
	case DistanceOuter:
		return "outer"
	default:
		return "none"
	}
}
