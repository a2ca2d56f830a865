package main

import (
	"fmt"
	"image/color"

	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/gdamore/tcell/v2"
)

var (
	barStyle    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	activeStyle = barStyle.Reverse(true)
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (h *host) draw() {
	h.screen.Clear()
	h.drawToolbar()
	h.drawCanvas()
	h.drawStatus()
	h.screen.Show()
}

// drawToolbar 组件类型条目，当前选中的条目反色显示
func (h *host) drawToolbar() {
	h.fillRow(0, barStyle)
	h.toolbar = h.toolbar[:0]

	selected := h.session.Interaction().SelectedType()
	x := 1
	for i, ct := range types.AllComponentTypes() {
		style := h.styles.Lookup(ct)
		label := fmt.Sprintf(" %d %c %s ", i+1, style.Symbol, style.Name)
		st := barStyle
		if ct == selected {
			st = activeStyle
		}
		h.drawText(x, 0, label, st)
		h.toolbar = append(h.toolbar, toolbarItem{label: label, x0: x, x1: x + len(label), ct: ct})
		x += len(label) + 1
	}
}

func (h *host) drawCanvas() {
	h.painter.Paint(h.builder.Build(h.session.FrameInput()))
	cols, rows := h.painter.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := h.painter.At(c, r)
			st := tcell.StyleDefault.Background(rgb(cell.Bg)).Foreground(rgb(cell.Fg))
			h.screen.SetContent(c, r+1, cell.Ch, nil, st)
		}
	}
}

// drawStatus 行列、缩放、统计、指针下的格子和最近一次操作结果
func (h *host) drawStatus() {
	if h.height < 2 {
		return
	}
	y := h.height - 1
	h.fillRow(y, barStyle)
	h.drawText(1, y, h.statusText(), barStyle)
}

func (h *host) statusText() string {
	stats := h.session.Stats()
	text := fmt.Sprintf("%dx%d  zoom %.0f%%  %d placed  %d invalid",
		stats.Rows, stats.Cols, stats.Zoom*100, stats.Occupied, stats.Invalid)

	if h.tracker.Inside() {
		canvas := h.canvasRect()
		if cell := h.session.Interaction().CellAt(h.pointer.X-canvas.X, h.pointer.Y-canvas.Y); cell != nil {
			text += fmt.Sprintf("  row %d col %d", cell.Row+1, cell.Col+1)
		}
	}
	if h.lastOutcome.Mutated() || h.lastOutcome == systems.OutcomeDropRejected {
		text += "  last: " + h.lastOutcome.String()
	}
	return text + "  |  q quit"
}

func (h *host) fillRow(y int, st tcell.Style) {
	for x := 0; x < h.width; x++ {
		h.screen.SetContent(x, y, ' ', nil, st)
	}
}

func (h *host) drawText(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		if x >= h.width {
			return
		}
		h.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
