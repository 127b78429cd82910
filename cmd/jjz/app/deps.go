package app

import (
	"os"

	"github.com/jjzio/jjz/pkg/config"
	"github.com/jjzio/jjz/pkg/doctor"
	"github.com/jjzio/jjz/pkg/multiplexer"
	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/session"
	"github.com/jjzio/jjz/pkg/store"
	"github.com/jjzio/jjz/pkg/vcs"
)

// deps bundles every command's resolved dependencies, built once per
// invocation from rootViper's layered configuration.
type deps struct {
	cfg    *config.Config
	store  *store.SQLiteStore
	engine *session.Engine
	doctor *doctor.Doctor
}

func newDeps() (*deps, func(), error) {
	cfg, err := config.Load(rootViper)
	if err != nil {
		return nil, func() {}, err
	}

	s, err := store.NewSessionStore(cfg.DataDir)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { _ = s.Close() }

	vcsCap := &vcs.Jujutsu{BinaryPath: cfg.JJPath}
	muxCap := &multiplexer.Zellij{BinaryPath: cfg.ZellijPath}

	engine := session.NewEngine(vcsCap, muxCap, s, cfg.WorkspaceRoot)
	doc := doctor.NewDoctor(s, cfg.WorkspaceRoot)

	return &deps{cfg: cfg, store: s, engine: engine, doctor: doc}, cleanup, nil
}

func newWriter() *output.Writer {
	mode := output.DetectMode(jsonOutput, silentOutput, os.Stdout)
	return output.NewWriter(mode, os.Stdout, os.Stderr)
}
