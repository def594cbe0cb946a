package player

// SearchState tracks a single search through Idle -> Loading -> Resolved.
type SearchState string

const (
	StateIdle    SearchState = "idle"
	StateLoading SearchState = "loading"
	StateSuccess SearchState = "success"
	StateFailure SearchState = "failure"
)

func (s SearchState) Resolved() bool {
	return s == StateSuccess || s == StateFailure
}

// CanTransition reports whether next is a legal successor of s.
func (s SearchState) CanTransition(next SearchState) bool {
	switch s {
	case StateIdle:
		return next == StateLoading
	case StateLoading:
		return next.Resolved()
	default:
		return false
	}
}
