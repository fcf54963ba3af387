// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"dmmu/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by unpack subcommand
	NoDirs    bool
	Overwrite bool
	TGM       bool
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// Existing returns effective policy for already present output files, command
// line overwrite flag wins over configuration.
func (e *LocalEnv) Existing() config.ExistingMode {
	if e.Overwrite {
		return config.ExistingModeOverwrite
	}
	if e.Cfg == nil {
		return config.ExistingModeFail
	}
	return e.Cfg.Unpack.Existing
}

// WantTGM reports whether TGM flavored output was requested either way.
func (e *LocalEnv) WantTGM() bool {
	return e.TGM || (e.Cfg != nil && e.Cfg.Unpack.TGM)
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
