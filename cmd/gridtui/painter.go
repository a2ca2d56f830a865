package main

import (
	"image/color"
	"math"

	"github.com/decker502/ceilplan/pkg/systems"
)

// termCell 终端中一个字符格的内容
type termCell struct {
	Ch rune
	Fg color.RGBA
	Bg color.RGBA
}

// Painter 把 FrameBuilder 的绘制指令光栅化到字符网格
//
// 每个字符格对应画布上 colPx × rowPx 的矩形，以字符格中心采样。
// 只读取 Frame，不修改任何编辑器状态。
type Painter struct {
	cols, rows   int
	colPx, rowPx float64
	background   color.RGBA
	cells        []termCell
}

// NewPainter 创建字符画布
func NewPainter(cols, rows int, colPx, rowPx float64, background color.RGBA) *Painter {
	p := &Painter{colPx: colPx, rowPx: rowPx, background: background}
	p.Resize(cols, rows)
	return p
}

// Resize 调整字符网格尺寸
func (p *Painter) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	p.cols, p.rows = cols, rows
	p.cells = make([]termCell, cols*rows)
}

// Size 返回字符网格尺寸
func (p *Painter) Size() (cols, rows int) {
	return p.cols, p.rows
}

// CanvasSize 返回字符网格对应的画布像素尺寸
func (p *Painter) CanvasSize() (width, height float64) {
	return float64(p.cols) * p.colPx, float64(p.rows) * p.rowPx
}

// At 返回指定字符格，越界时返回零值
func (p *Painter) At(col, row int) termCell {
	if col < 0 || col >= p.cols || row < 0 || row >= p.rows {
		return termCell{}
	}
	return p.cells[row*p.cols+col]
}

// Paint 按层级顺序执行一帧的绘制指令
func (p *Painter) Paint(frame *systems.Frame) {
	for i := range p.cells {
		p.cells[i] = termCell{Ch: ' ', Bg: p.background}
	}
	for i := range frame.Ops {
		op := &frame.Ops[i]
		switch op.Kind {
		case systems.OpFillRect:
			p.fillRect(op)
		case systems.OpStrokeRect:
			p.strokeRect(op)
		case systems.OpLine:
			p.line(op)
		case systems.OpSymbol:
			p.symbol(op)
		}
	}
}

// span 返回中心落在 [lo, hi) 内的字符格下标范围 [first, last]
func span(lo, hi, step float64, n int) (first, last int) {
	first = int(math.Ceil(lo/step - 0.5))
	last = int(math.Ceil(hi/step-0.5)) - 1
	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}
	return first, last
}

func (p *Painter) fillRect(op *systems.DrawOp) {
	c0, c1 := span(op.X, op.X+op.W, p.colPx, p.cols)
	r0, r1 := span(op.Y, op.Y+op.H, p.rowPx, p.rows)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			cell := &p.cells[r*p.cols+c]
			cell.Bg = blend(cell.Bg, op.Color)
		}
	}
}

func (p *Painter) strokeRect(op *systems.DrawOp) {
	c0, c1 := span(op.X, op.X+op.W, p.colPx, p.cols)
	r0, r1 := span(op.Y, op.Y+op.H, p.rowPx, p.rows)
	if c0 > c1 || r0 > r1 {
		return
	}
	for c := c0; c <= c1; c++ {
		p.setLine(c, r0, '─', op.Color)
		p.setLine(c, r1, '─', op.Color)
	}
	for r := r0; r <= r1; r++ {
		p.setLine(c0, r, '│', op.Color)
		p.setLine(c1, r, '│', op.Color)
	}
	p.setLine(c0, r0, '┌', op.Color)
	p.setLine(c1, r0, '┐', op.Color)
	p.setLine(c0, r1, '└', op.Color)
	p.setLine(c1, r1, '┘', op.Color)
}

// line 只支持网格线使用的水平线和竖直线
func (p *Painter) line(op *systems.DrawOp) {
	switch {
	case op.X == op.X2:
		col := int(math.Floor(op.X / p.colPx))
		r0, r1 := span(math.Min(op.Y, op.Y2), math.Max(op.Y, op.Y2), p.rowPx, p.rows)
		for r := r0; r <= r1; r++ {
			p.setLine(col, r, '│', op.Color)
		}
	case op.Y == op.Y2:
		row := int(math.Floor(op.Y / p.rowPx))
		c0, c1 := span(math.Min(op.X, op.X2), math.Max(op.X, op.X2), p.colPx, p.cols)
		for c := c0; c <= c1; c++ {
			p.setLine(c, row, '─', op.Color)
		}
	}
}

func (p *Painter) symbol(op *systems.DrawOp) {
	col := int(math.Floor(op.X / p.colPx))
	row := int(math.Floor(op.Y / p.rowPx))
	if col < 0 || col >= p.cols || row < 0 || row >= p.rows {
		return
	}
	cell := &p.cells[row*p.cols+col]
	cell.Ch = op.Symbol
	cell.Fg = op.Color
}

// setLine 画线字符，不覆盖组件符号；横竖相交处画成十字
func (p *Painter) setLine(col, row int, ch rune, clr color.RGBA) {
	if col < 0 || col >= p.cols || row < 0 || row >= p.rows {
		return
	}
	cell := &p.cells[row*p.cols+col]
	switch {
	case cell.Ch == ' ':
		cell.Ch = ch
	case isLineRune(cell.Ch):
		if (cell.Ch == '│' && ch == '─') || (cell.Ch == '─' && ch == '│') {
			ch = '┼'
		}
		cell.Ch = ch
	default:
		return
	}
	cell.Fg = clr
}

func isLineRune(r rune) bool {
	switch r {
	case '─', '│', '┼', '┌', '┐', '└', '┘':
		return true
	}
	return false
}

// blend 预乘 alpha 的 source-over 合成
func blend(dst, src color.RGBA) color.RGBA {
	inv := 1 - float64(src.A)/0xFF
	mix := func(d, s uint8) uint8 {
		v := float64(s) + float64(d)*inv
		if v > 0xFF {
			v = 0xFF
		}
		return uint8(v)
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: mix(dst.A, src.A),
	}
}
