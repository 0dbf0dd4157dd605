// Package session holds the per-process state of the interactive loop.
package session

// PlaceholderTypeName is shown in the status display before any command has run.
const PlaceholderTypeName = "Type of current state"

// FlagOption is a flag candidate carried over from the last recognized method.
type FlagOption struct {
	Name        string // rendered flag, e.g. "--delimiter"
	Description string
}

// State is mutated once per prompt iteration and lives as long as the process.
// It is owned by the loop goroutine; readline only calls into it while the loop is
// blocked reading a line.
type State struct {
	LastResultTypeName string
	PendingFlagOptions []FlagOption
}

// New returns a State showing the placeholder type name.
func New() *State {
	return &State{LastResultTypeName: PlaceholderTypeName}
}

// StatusText returns what the right-hand status display shows.
func (s *State) StatusText() string {
	if s.LastResultTypeName == "" {
		return PlaceholderTypeName
	}
	return s.LastResultTypeName
}
