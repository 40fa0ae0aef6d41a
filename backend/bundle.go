package backend

import (
	"context"
	"log/slog"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is what a window needs from the backend.
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

// Bundle holds the application-wide backend services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ctx context.Context, log *slog.Logger, opts TableOptions) (Bundle, error) {
	ds, err := NewDatasource(ctx, log, opts)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Datasource: ds}, nil
}
