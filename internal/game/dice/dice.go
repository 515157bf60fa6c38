// Package dice provides the injectable randomness used by the game engine.
// Nothing else in the engine is non-deterministic, so tests substitute a
// Sequence to make random flavor text predictable.
package dice

// Source is the randomness abstraction consumed by the engine.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Sequence is a deterministic Source that replays its values in order,
// wrapping around, each reduced modulo n.
type Sequence []int

// Intn returns the next value in the sequence modulo n.
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[0]
	*s = append((*s)[1:], v)
	if v < 0 {
		v = -v
	}
	return v % n
}
