package storage

import "fmt"

// State is the progress of a task
type State int

const (
	NotStarted State = iota
	InProgress
	Done
)

// ValidStates lists all states in display order
var ValidStates = []State{NotStarted, InProgress, Done}

// ParseState maps the wire form of a state to a State.
// Matching is exact: no case folding or trimming.
func ParseState(raw string) (State, error) {
	switch raw {
	case "not-started":
		return NotStarted, nil
	case "in-progress":
		return InProgress, nil
	case "done":
		return Done, nil
	}
	return NotStarted, &InvalidStateError{Raw: raw}
}

// String returns the wire form of the state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case NotStarted, InProgress, Done:
		return []byte(s.String()), nil
	}
	return nil, &InvalidStateError{Raw: s.String()}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task is a single trackable unit of work
type Task struct {
	ID    uint8  `json:"id"`
	Text  string `json:"task"`
	State State  `json:"state"`
}

// NewTask builds a task without validation
func NewTask(id uint8, text string, state State) Task {
	return Task{ID: id, Text: text, State: state}
}
