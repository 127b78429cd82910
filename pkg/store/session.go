// Package store implements the persistent Session mapping (SPEC_FULL.md
// §4.4) over an embedded SQLite database with versioned goose migrations and
// a machine-local single-writer lock.
package store

// Status is one of the five states a Session can occupy (SPEC_FULL.md §4.6).
type Status string

// The session state machine's states.
const (
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
	StatusMerged    Status = "Merged"
	StatusDeleted   Status = "Deleted"
)

// transitions enumerates every allowed edge of the state machine in §4.6.
var transitions = map[Status]map[Status]bool{
	StatusActive:    {StatusPaused: true, StatusCompleted: true, StatusMerged: true, StatusDeleted: true},
	StatusPaused:    {StatusActive: true, StatusDeleted: true},
	StatusCompleted: {StatusMerged: true, StatusDeleted: true},
	StatusMerged:    {StatusDeleted: true},
	StatusDeleted:   {},
}

// ValidTransition reports whether from -> to is an edge of the state machine.
func ValidTransition(from, to Status) bool {
	edges, ok := transitions[from]
	if !ok {
		return false
	}
	return edges[to]
}

// Session is the persistent record described in SPEC_FULL.md §3.
type Session struct {
	Name          string
	WorkspacePath string
	TabName       string
	Branch        string
	IssueID       string
	Status        Status
	CreatedAt     int64
	UpdatedAt     int64
	Metadata      map[string]any
	RemovalStatus string
	RemovalError  string
}

// ListFilter narrows a List call to sessions matching the given status, when
// Status is non-empty.
type ListFilter struct {
	Status Status
}
