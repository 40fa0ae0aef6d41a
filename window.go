package main

import (
	"context"
	"log/slog"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

// loop runs the event loop of w until the window is destroyed.
func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, style chart.Style, observer chart.Observer, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ctx, ws, expl, style,
		chart.WithLogger(log),
		chart.WithObserver(observer),
		chart.WithInvalidate(w.Invalidate),
	)
	defer ui.Close()

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
