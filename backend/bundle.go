package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/go-logr/logr"
)

// WindowState is the per-window view of the application backend.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the application-wide backend state shared by windows.
type Bundle struct {
	Source *Source
	Config Config
	Log    logr.Logger
}

func NewBundle(ctx context.Context, cfg Config, log logr.Logger) Bundle {
	return Bundle{
		Source: NewSource(ctx, log.WithName("source")),
		Config: cfg,
		Log:    log,
	}
}
