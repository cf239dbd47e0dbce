package resolve

// Strategy decides how a property attribute is combined with the attribute of
// the definition it references.
type Strategy int

const (
	// Merge keeps the property's value when present, else takes the
	// definition's.
	Merge Strategy = iota
	// Unmerge keeps the property's value only when it differs from the
	// definition's, reconstructing the override-only form.
	Unmerge
)

func (s Strategy) String() string {
	switch s {
	case Merge:
		return "merge"
	case Unmerge:
		return "unmerge"
	default:
		return "unknown"
	}
}

// Combine applies s to an optional scalar. theirs is only called when its
// value is needed.
func Combine[T comparable](s Strategy, mine *T, theirs func() *T) *T {
	return CombineFunc(s, mine, theirs,
		func(v *T) bool { return v == nil },
		func(a, b *T) bool { return b != nil && *a == *b },
	)
}

// CombineFunc is Combine for values that need their own notion of absence and
// equality (slices, maps, enum sets). equal is only called with a present
// mine.
func CombineFunc[T any](s Strategy, mine T, theirs func() T, absent func(T) bool, equal func(mine, theirs T) bool) T {
	var zero T
	switch s {
	case Unmerge:
		if absent(mine) || equal(mine, theirs()) {
			return zero
		}
		return mine
	default:
		if !absent(mine) {
			return mine
		}
		return theirs()
	}
}
