package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to Status
		want     bool
	}{
		{"active to paused", StatusActive, StatusPaused, true},
		{"active to completed", StatusActive, StatusCompleted, true},
		{"active to merged", StatusActive, StatusMerged, true},
		{"active to deleted", StatusActive, StatusDeleted, true},
		{"paused to active", StatusPaused, StatusActive, true},
		{"paused to deleted", StatusPaused, StatusDeleted, true},
		{"completed to merged", StatusCompleted, StatusMerged, true},
		{"completed to deleted", StatusCompleted, StatusDeleted, true},
		{"merged to deleted", StatusMerged, StatusDeleted, true},

		{"paused to completed invalid", StatusPaused, StatusCompleted, false},
		{"paused to merged invalid", StatusPaused, StatusMerged, false},
		{"completed to active invalid", StatusCompleted, StatusActive, false},
		{"completed to paused invalid", StatusCompleted, StatusPaused, false},
		{"merged to active invalid", StatusMerged, StatusActive, false},
		{"merged to completed invalid", StatusMerged, StatusCompleted, false},
		{"deleted is terminal", StatusDeleted, StatusActive, false},
		{"self transition invalid", StatusActive, StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidTransition(tt.from, tt.to))
		})
	}
}
