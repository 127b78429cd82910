package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest // mutates the package singleton
func TestInitialize(t *testing.T) {
	Initialize()
	got := Get()
	require.NotNil(t, got)
}

//nolint:paralleltest // mutates the package singleton
func TestInitializeWithDebug(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{"production", false},
		{"development", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitializeWithDebug(tt.debug)
			require.NotNil(t, Get())
		})
	}
}

//nolint:paralleltest // mutates the package singleton
func TestLogFunctionsDoNotPanic(t *testing.T) {
	Initialize()

	assert.NotPanics(t, func() {
		Debug("debug msg")
		Debugf("debug %s", "formatted")
		Debugw("debug kv", "key", "val")
		Info("info msg")
		Infof("info %s", "formatted")
		Infow("info kv", "key", "val")
		Warn("warn msg")
		Warnf("warn %s", "formatted")
		Warnw("warn kv", "key", "val")
		Error("error msg")
		Errorf("error %s", "formatted")
		Errorw("error kv", "key", "val")
		Sync()
	})
}

//nolint:paralleltest // mutates the package singleton
func TestLogPackageVar(t *testing.T) {
	Initialize()
	require.NotNil(t, Log)
	assert.NotPanics(t, func() { Log.Infof("via Log singleton: %s", "ok") })
}
