// Package config resolves jjz's runtime configuration: workspace root, data
// directory, external binary overrides, and the default subprocess timeout.
//
// Precedence (highest first): explicit CLI flag > JJZ_* environment variable
// > config file (--config, default $XDG_CONFIG_HOME/jjz/config.yaml) > the
// built-in defaults below.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// DefaultTimeout is the per-call subprocess timeout when unconfigured.
const DefaultTimeout = 30 * time.Second

// Config is the resolved, immutable configuration for one invocation.
type Config struct {
	// WorkspaceRoot is the directory under which every session's workspace
	// directory is created as a child named after the session.
	WorkspaceRoot string
	// DataDir holds the session store's SQLite file and sidecars.
	DataDir string
	// JJPath overrides the `jj` binary location; empty means search PATH.
	JJPath string
	// ZellijPath overrides the `zellij` binary location; empty means search PATH.
	ZellijPath string
	// SubprocessTimeout is the resolved per-call subprocess timeout. It is
	// not passed to the jj/zellij capabilities, so their invocations run
	// without a deadline of their own.
	SubprocessTimeout time.Duration
}

// Load builds a Config from v, which the caller has already bound to flags,
// environment variables, and an optional config file (see BindFlags).
func Load(v *viper.Viper) (*Config, error) {
	applyDefaults(v)

	cfg := &Config{
		WorkspaceRoot:     v.GetString("workspace_root"),
		DataDir:           v.GetString("data_dir"),
		JJPath:            v.GetString("jj_path"),
		ZellijPath:        v.GetString("zellij_path"),
		SubprocessTimeout: v.GetDuration("subprocess_timeout"),
	}

	if cfg.WorkspaceRoot == "" {
		return nil, fmt.Errorf("workspace_root must not be empty")
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir must not be empty")
	}
	if cfg.SubprocessTimeout <= 0 {
		cfg.SubprocessTimeout = DefaultTimeout
	}

	return cfg, nil
}

// New builds a Config for the common case: no pre-existing viper instance,
// just environment variables and defaults. The CLI commands do not use it;
// they build their Config with Load over the root command's viper instance.
func New() (*Config, error) {
	v := viper.New()
	BindEnv(v)
	return Load(v)
}

// BindEnv wires the JJZ_* environment variable convention into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("jjz")
	v.AutomaticEnv()
}

func applyDefaults(v *viper.Viper) {
	dataHome, err := xdg.DataFile("jjz/state.db")
	if err != nil {
		dataHome = "jjz/state.db"
	}
	dataDir := filepath.Dir(dataHome)
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("workspace_root", filepath.Join(dataDir, "workspaces"))
	v.SetDefault("subprocess_timeout", DefaultTimeout)
}
