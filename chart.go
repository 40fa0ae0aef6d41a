package main

import (
	"context"
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/giochart"
)

// ChartPane shows the chart of a table above a key of its columns.
type ChartPane struct {
	Widget   *giochart.Widget
	table    *backend.Table
	keyTable component.GridState
}

func NewChartPane(ctx context.Context, table *backend.Table, style chart.Style, opts ...chart.Option) *ChartPane {
	return &ChartPane{
		Widget: giochart.NewWidget(ctx, table, style, opts...),
		table:  table,
	}
}

// SetTable replaces the charted table and reloads.
func (c *ChartPane) SetTable(t *backend.Table) {
	c.table = t
	c.Widget.Chart.SetSource(t)
}

func (c *ChartPane) Close() {
	c.Widget.Chart.Close()
}

func (c *ChartPane) Layout(gtx C, th *material.Theme) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return c.Widget.Layout(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			if len(c.table.Columns) == 0 {
				return D{}
			}
			rows := len(c.table.Columns) + 1
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Sp(20)*min(rows, 6)+gtx.Dp(4))
			gtx.Constraints.Min.Y = 0
			return c.layoutKey(gtx, th)
		}),
	)
}

// scaleText describes how the values of col map onto the chart band.
func (c *ChartPane) scaleText(col backend.Column) string {
	switch col.Kind {
	case backend.KindLine:
		lo, hi, ok := c.table.LineRange()
		if !ok {
			return "no values"
		}
		return fmt.Sprintf("%.4g to %.4g", lo, hi)
	case backend.KindBar:
		return fmt.Sprintf("stacked, max %.4g", c.table.BarMax())
	}
	return ""
}

func (c *ChartPane) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	kindColWidth := gtx.Dp(60)
	scaleColWidth := gtx.Dp(160)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - kindColWidth - scaleColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		kindCol
		scaleCol
		numCols
	)
	columns := c.table.Columns
	return table.Layout(gtx, len(columns), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = max(nameColWidth, 0)
			case kindCol:
				size = kindColWidth
			case scaleCol:
				size = scaleColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case nameCol:
				l = material.Body1(th, "Column")
			case kindCol:
				l = material.Body1(th, "Kind")
			case scaleCol:
				l = material.Body1(th, "Scale")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			column := columns[row]
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, column.Color, clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case nameCol:
					l := material.Body2(th, column.Name)
					l.MaxLines = 1
					return l.Layout(gtx)
				case kindCol:
					return material.Body2(th, column.Kind.String()).Layout(gtx)
				case scaleCol:
					l := material.Body2(th, c.scaleText(column))
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				stripe := column.Color
				stripe.A = 50
				paint.FillShape(gtx.Ops, stripe, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
