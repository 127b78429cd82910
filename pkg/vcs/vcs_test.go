package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.23.1", Version{Major: 0, Minor: 23, Patch: 1}.String())
}

func TestVersionLess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Version
		want bool
	}{
		{"older major", Version{0, 23, 0}, Version{1, 0, 0}, true},
		{"older minor", Version{1, 22, 0}, Version{1, 23, 0}, true},
		{"older patch", Version{1, 23, 0}, Version{1, 23, 1}, true},
		{"equal", Version{1, 23, 1}, Version{1, 23, 1}, false},
		{"newer", Version{1, 24, 0}, Version{1, 23, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Less(tt.b))
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	output := "Working copy changes:\nM file1.go\nA file2.go\nWorking copy : abc1234 (no description set)\nWorking copy bookmarks: main\n"
	summary := parseStatus(output)

	assert.Equal(t, 2, summary.ChangedFiles)
	assert.Equal(t, "main", summary.Branch)
}

func TestParseStatusEmpty(t *testing.T) {
	t.Parallel()

	summary := parseStatus("")
	assert.Equal(t, 0, summary.ChangedFiles)
	assert.Empty(t, summary.Branch)
}
