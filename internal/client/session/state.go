package session

type State int

const (
	// Loading is the state before Initialize has resolved the persisted token.
	Loading State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
