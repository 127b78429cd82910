package output

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectModeJSONWins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ModeJSON, DetectMode(true, true, os.Stdout))
}

func TestDetectModeSilentFallsBackToTSV(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ModeTSV, DetectMode(false, true, os.Stdout))
}

func TestDetectModeNonTTYFallsBackToTSV(t *testing.T) {
	t.Parallel()
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.Equal(t, ModeTSV, DetectMode(false, false, f))
}
