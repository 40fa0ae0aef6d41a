package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}

var (
	firstIcon  = mustIcon(icons.NavigationFirstPage)
	lastIcon   = mustIcon(icons.NavigationLastPage)
	reloadIcon = mustIcon(icons.NavigationRefresh)
	openIcon   = mustIcon(icons.FileFolderOpen)
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	pane      *ChartPane
	table     *backend.Table
	firstBtn  widget.Clickable
	lastBtn   widget.Clickable
	reloadBtn widget.Clickable
	openBtn   widget.Clickable
	startBtn  widget.Clickable
	opening   bool
	openErr   chan error
	// pickErr is the last failure to choose a file, lastErr the message
	// shown.
	pickErr   string
	lastErr   string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ctx context.Context, ws backend.WindowState, expl *explorer.Explorer, style chart.Style, opts ...chart.Option) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	applyTheme(th)
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		openErr:      make(chan error, 1),
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
	// The zero table has no sections and draws only the background line.
	ui.table = &backend.Table{}
	ui.pane = NewChartPane(ctx, ui.table, style, opts...)
	return ui
}

// Close stops the chart worker.
func (ui *UI) Close() {
	ui.pane.Close()
}

// open asks for a file on another goroutine; the explorer blocks until the
// user picks one.
func (ui *UI) open() {
	if ui.opening {
		return
	}
	ui.opening = true
	ui.pickErr = ""
	go func() {
		ui.openErr <- ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
	}()
}

// Update the state of the UI from input and backend events.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if t := ui.status.Table; t != nil && t != ui.table {
		ui.table = t
		ui.pane.SetTable(t)
	}
	select {
	case err := <-ui.openErr:
		ui.opening = false
		if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
			ui.pickErr = err.Error()
		}
	default:
	}
	ui.lastErr = ui.pickErr
	if ui.status.Err != nil {
		ui.lastErr = ui.status.Err.Error()
	}

	if ui.firstBtn.Clicked(gtx) {
		ui.pane.Widget.ScrollToFirst()
	}
	if ui.lastBtn.Clicked(gtx) {
		ui.pane.Widget.ScrollToLast()
	}
	if ui.reloadBtn.Clicked(gtx) {
		ds := ui.ws.Bundle.Datasource
		go func() { _ = ds.Reload() }()
	}
	if ui.openBtn.Clicked(gtx) || ui.startBtn.Clicked(gtx) {
		ui.open()
	}
}

// statusText summarizes the loaded table and the focused item.
func (ui *UI) statusText() string {
	var parts []string
	if p := ui.status.Path; p != "" {
		parts = append(parts, filepath.Base(p))
	} else if ui.status.Table != nil {
		parts = append(parts, "stdin")
	}
	if t := ui.status.Table; t != nil {
		parts = append(parts,
			fmt.Sprintf("%s sections", humanize.Comma(int64(t.Sections()))),
			fmt.Sprintf("%s rows", humanize.Comma(int64(t.Rows()))),
		)
		if t.Skipped > 0 {
			parts = append(parts, fmt.Sprintf("%s skipped cells", humanize.Comma(int64(t.Skipped))))
		}
	}
	if !ui.status.Loaded.IsZero() {
		parts = append(parts, "loaded "+humanize.Time(ui.status.Loaded))
	}
	if focus := ui.focusText(); focus != "" {
		parts = append(parts, focus)
	}
	return strings.Join(parts, " · ")
}

func (ui *UI) focusText() string {
	snap := ui.pane.Widget.Chart.Snapshot()
	if snap == nil {
		return ""
	}
	off := ui.pane.Widget.Offset()
	view := snap.Layout.ViewSize
	index, _, ok := snap.Focus(geom.Rect{Min: f32.Pt(off, 0), Max: f32.Pt(off+view.X, view.Y)})
	if !ok {
		return ""
	}
	item, _ := snap.Source.ItemText(index)
	if title := snap.Layout.SectionTitle(index.Section); title != "" {
		return title + ": " + item
	}
	return item
}

func (ui *UI) layoutToolbar(gtx C) D {
	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			b := material.IconButton(ui.th, btn, icon, desc)
			b.Size = unit.Dp(20)
			b.Inset = layout.UniformInset(6)
			return layout.UniformInset(2).Layout(gtx, b.Layout)
		})
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		button(&ui.firstBtn, firstIcon, "Scroll to first item"),
		button(&ui.lastBtn, lastIcon, "Scroll to last item"),
		button(&ui.reloadBtn, reloadIcon, "Reload data"),
		button(&ui.openBtn, openIcon, "Open data file"),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
				l := material.Body2(ui.th, ui.statusText())
				l.MaxLines = 1
				return l.Layout(gtx)
			})
		}),
	)
}

func (ui *UI) layoutError(gtx C) D {
	if ui.lastErr == "" {
		return D{}
	}
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		l := material.Body2(ui.th, ui.lastErr)
		l.Color = errorColor
		return l.Layout(gtx)
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, func(gtx C) D {
			return ui.pane.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			if ui.opening {
				gtx = gtx.Disabled()
			}
			return material.Button(ui.th, &ui.startBtn, "Open Data File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.lastErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.Fill(gtx.Ops, ui.th.Bg)
	if ui.status.Table == nil {
		return ui.layoutStartScreen(gtx)
	}
	return ui.layoutMainArea(gtx)
}
