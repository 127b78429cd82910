package multiplexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "jjz:feat-a", TabName("feat-a"))
}

func TestZellijRunningInside(t *testing.T) {
	t.Setenv("ZELLIJ", "0")
	z := &Zellij{}
	assert.True(t, z.RunningInside())

	t.Setenv("ZELLIJ", "")
	assert.False(t, z.RunningInside())
}

func TestZellijBinaryOverride(t *testing.T) {
	t.Parallel()

	z := &Zellij{BinaryPath: "/custom/zellij"}
	assert.Equal(t, "/custom/zellij", z.binary())

	z2 := &Zellij{}
	assert.Equal(t, "zellij", z2.binary())
}
