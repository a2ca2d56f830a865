package systems

import (
	"image/color"
	"math"

	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
)

// DrawLayer 绘制层级，数值越大越晚绘制（遮挡之前的层）
type DrawLayer int

const (
	LayerBackground  DrawLayer = iota // 画布背景和网格底色
	LayerGridLines                    // 网格线
	LayerCells                        // 格子内容
	LayerDragSource                   // 拖拽源格子的淡化标记
	LayerDropOverlay                  // 拖放目标合法性叠加层
	LayerHover                        // 悬停高亮（仅空闲时）
	LayerSelection                    // 选中格子边框
	LayerDragPreview                  // 跟随指针的拖拽预览
)

// String 返回层级名称
func (l DrawLayer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerGridLines:
		return "gridLines"
	case LayerCells:
		return "cells"
	case LayerDragSource:
		return "dragSource"
	case LayerDropOverlay:
		return "dropOverlay"
	case LayerHover:
		return "hover"
	case LayerSelection:
		return "selection"
	case LayerDragPreview:
		return "dragPreview"
	default:
		return "unknown"
	}
}

// DrawOpKind 绘制指令种类
type DrawOpKind int

const (
	// OpFillRect 填充矩形 (X, Y, W, H)
	OpFillRect DrawOpKind = iota
	// OpStrokeRect 矩形边框 (X, Y, W, H, Width)
	OpStrokeRect
	// OpLine 线段 (X, Y) → (X2, Y2)
	OpLine
	// OpSymbol 以 (X, Y) 为中心、H 为字号绘制组件符号
	OpSymbol
)

// DrawOp 一条绘制指令，坐标均为画布局部屏幕坐标
type DrawOp struct {
	Layer  DrawLayer
	Kind   DrawOpKind
	X, Y   float64
	W, H   float64
	X2, Y2 float64
	Width  float64
	Color  color.RGBA
	Symbol rune
	Type   types.ComponentType
}

// Frame 一帧的绘制指令列表，按层级顺序排列
type Frame struct {
	Viewport utils.Viewport
	Ops      []DrawOp
}

// OpsInLayer 返回指定层级的绘制指令
func (f *Frame) OpsInLayer(layer DrawLayer) []DrawOp {
	var ops []DrawOp
	for _, op := range f.Ops {
		if op.Layer == layer {
			ops = append(ops, op)
		}
	}
	return ops
}

// FrameInput 构建一帧所需的只读快照
type FrameInput struct {
	Grid     *components.LayoutGridComponent
	Viewport utils.Viewport
	State    components.InteractionState
	Selected *components.Cell
}

const (
	cellFillAlpha      = 0.85
	dragSourceAlpha    = 0.3
	dropOverlayAlpha   = 0.35
	hoverFillAlpha     = 0.15
	selectionWidth     = 3.0
	overlayStrokeWidth = 2.0
	gridLineWidth      = 1.0
	dragPreviewSize    = 40.0
	dragPreviewAlpha   = 0.8
)

// FrameBuilder 把网格、视图和交互状态转换为分层的绘制指令
// 只读取输入，不修改任何状态；具体的绘制由 ebiten 或终端后端完成。
type FrameBuilder struct {
	styles   *config.StyleTable
	cellSize float64
}

// NewFrameBuilder 创建帧构建器
func NewFrameBuilder(styles *config.StyleTable) *FrameBuilder {
	return &FrameBuilder{
		styles:   styles,
		cellSize: config.CellSize,
	}
}

// Styles 返回样式查找表
func (fb *FrameBuilder) Styles() *config.StyleTable {
	return fb.styles
}

// visibleRange 网格在可见区域内的行列范围（闭区间）
type visibleRange struct {
	rowLo, rowHi int
	colLo, colHi int
	empty        bool
}

// Build 构建一帧
func (fb *FrameBuilder) Build(in FrameInput) *Frame {
	frame := &Frame{Viewport: in.Viewport}
	palette := fb.styles.Canvas()
	grid := in.Grid
	if grid == nil {
		grid = &components.LayoutGridComponent{}
	}

	// 背景
	frame.Ops = append(frame.Ops, DrawOp{
		Layer: LayerBackground, Kind: OpFillRect,
		W: in.Viewport.CanvasWidth, H: in.Viewport.CanvasHeight,
		Color: palette.Background,
	})

	vis := fb.visibleCells(grid, in.Viewport)
	if !vis.empty {
		fb.addGrid(frame, grid, in.Viewport, vis, palette)
		fb.addCells(frame, grid, in.Viewport, vis)
	}

	switch state := in.State.(type) {
	case components.DraggingState:
		if !state.Moved {
			// 未越过拖拽阈值：释放时点击源格子，按悬停绘制
			fb.addHover(frame, grid, in.Viewport, &state.Source, palette)
			fb.addSelection(frame, grid, in.Viewport, in.Selected, palette)
			break
		}
		fb.addDragOverlays(frame, grid, in.Viewport, state, palette)
		fb.addSelection(frame, grid, in.Viewport, in.Selected, palette)
		fb.addDragPreview(frame, state)
	case components.IdleState:
		fb.addHover(frame, grid, in.Viewport, state.Hover, palette)
		fb.addSelection(frame, grid, in.Viewport, in.Selected, palette)
	default:
		fb.addSelection(frame, grid, in.Viewport, in.Selected, palette)
	}

	return frame
}

// visibleCells 计算与画布可见区域相交的格子范围
func (fb *FrameBuilder) visibleCells(grid *components.LayoutGridComponent, vp utils.Viewport) visibleRange {
	if grid.Rows <= 0 || grid.Cols <= 0 || vp.Zoom <= 0 {
		return visibleRange{empty: true}
	}

	totalWidth, totalHeight := utils.GridExtent(grid.Rows, grid.Cols, fb.cellSize)
	startX, startY := -totalWidth/2, -totalHeight/2
	minX, minY, maxX, maxY := vp.VisibleWorldRect()

	if maxX < startX || minX > startX+totalWidth || maxY < startY || minY > startY+totalHeight {
		return visibleRange{empty: true}
	}

	return visibleRange{
		colLo: clampIndex(int(math.Floor((minX-startX)/fb.cellSize)), grid.Cols),
		colHi: clampIndex(int(math.Floor((maxX-startX)/fb.cellSize)), grid.Cols),
		rowLo: clampIndex(int(math.Floor((minY-startY)/fb.cellSize)), grid.Rows),
		rowHi: clampIndex(int(math.Floor((maxY-startY)/fb.cellSize)), grid.Rows),
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// addGrid 网格底色和可见范围内的网格线
func (fb *FrameBuilder) addGrid(frame *Frame, grid *components.LayoutGridComponent, vp utils.Viewport, vis visibleRange, palette config.CanvasPalette) {
	x0, y0 := utils.CellOrigin(vis.rowLo, vis.colLo, grid.Rows, grid.Cols, fb.cellSize)
	x1, y1 := utils.CellOrigin(vis.rowHi+1, vis.colHi+1, grid.Rows, grid.Cols, fb.cellSize)
	sx0, sy0 := vp.WorldToScreen(x0, y0)
	sx1, sy1 := vp.WorldToScreen(x1, y1)

	frame.Ops = append(frame.Ops, DrawOp{
		Layer: LayerBackground, Kind: OpFillRect,
		X: sx0, Y: sy0, W: sx1 - sx0, H: sy1 - sy0,
		Color: palette.GridFill,
	})

	step := fb.cellSize * vp.Zoom
	for c := vis.colLo; c <= vis.colHi+1; c++ {
		x := sx0 + float64(c-vis.colLo)*step
		frame.Ops = append(frame.Ops, DrawOp{
			Layer: LayerGridLines, Kind: OpLine,
			X: x, Y: sy0, X2: x, Y2: sy1,
			Width: gridLineWidth, Color: palette.GridLine,
		})
	}
	for r := vis.rowLo; r <= vis.rowHi+1; r++ {
		y := sy0 + float64(r-vis.rowLo)*step
		frame.Ops = append(frame.Ops, DrawOp{
			Layer: LayerGridLines, Kind: OpLine,
			X: sx0, Y: y, X2: sx1, Y2: y,
			Width: gridLineWidth, Color: palette.GridLine,
		})
	}
}

// addCells 可见范围内的占用格子和无效格子
func (fb *FrameBuilder) addCells(frame *Frame, grid *components.LayoutGridComponent, vp utils.Viewport, vis visibleRange) {
	size := fb.cellSize * vp.Zoom
	for r := vis.rowLo; r <= vis.rowHi; r++ {
		for c := vis.colLo; c <= vis.colHi; c++ {
			cell := grid.At(r, c)
			var ct types.ComponentType
			switch {
			case cell.IsOccupied():
				ct = cell.Type
			case cell.IsInvalid():
				ct = types.ComponentInvalid
			default:
				continue
			}

			style := fb.styles.Lookup(ct)
			wx, wy := utils.CellOrigin(r, c, grid.Rows, grid.Cols, fb.cellSize)
			x, y := vp.WorldToScreen(wx, wy)
			frame.Ops = append(frame.Ops,
				DrawOp{Layer: LayerCells, Kind: OpFillRect, X: x, Y: y, W: size, H: size, Color: config.WithAlpha(style.Color, cellFillAlpha), Type: ct},
				DrawOp{Layer: LayerCells, Kind: OpSymbol, X: x + size/2, Y: y + size/2, H: size / 2, Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Symbol: style.Symbol, Type: ct},
			)
		}
	}
}

// addDragOverlays 拖拽源淡化标记和目标合法性叠加层
func (fb *FrameBuilder) addDragOverlays(frame *Frame, grid *components.LayoutGridComponent, vp utils.Viewport, drag components.DraggingState, palette config.CanvasPalette) {
	if x, y, size, ok := fb.cellRect(grid, vp, drag.Source); ok {
		style := fb.styles.Lookup(drag.Type)
		frame.Ops = append(frame.Ops,
			DrawOp{Layer: LayerDragSource, Kind: OpFillRect, X: x, Y: y, W: size, H: size, Color: palette.GridFill},
			DrawOp{Layer: LayerDragSource, Kind: OpFillRect, X: x, Y: y, W: size, H: size, Color: config.WithAlpha(style.Color, dragSourceAlpha), Type: drag.Type},
		)
	}

	if drag.Target == nil {
		return
	}
	x, y, size, ok := fb.cellRect(grid, vp, *drag.Target)
	if !ok {
		return
	}
	overlay := palette.DropInvalid
	if drag.DropValid(grid.At(drag.Target.Row, drag.Target.Col).IsInvalid()) {
		overlay = palette.DropValid
	}
	frame.Ops = append(frame.Ops,
		DrawOp{Layer: LayerDropOverlay, Kind: OpFillRect, X: x, Y: y, W: size, H: size, Color: config.WithAlpha(overlay, dropOverlayAlpha)},
		DrawOp{Layer: LayerDropOverlay, Kind: OpStrokeRect, X: x, Y: y, W: size, H: size, Width: overlayStrokeWidth, Color: overlay},
	)
}

func (fb *FrameBuilder) addHover(frame *Frame, grid *components.LayoutGridComponent, vp utils.Viewport, hover *components.Cell, palette config.CanvasPalette) {
	if hover == nil {
		return
	}
	if x, y, size, ok := fb.cellRect(grid, vp, *hover); ok {
		frame.Ops = append(frame.Ops,
			DrawOp{Layer: LayerHover, Kind: OpFillRect, X: x, Y: y, W: size, H: size, Color: config.WithAlpha(palette.Hover, hoverFillAlpha)},
			DrawOp{Layer: LayerHover, Kind: OpStrokeRect, X: x, Y: y, W: size, H: size, Width: overlayStrokeWidth, Color: palette.Hover},
		)
	}
}

func (fb *FrameBuilder) addSelection(frame *Frame, grid *components.LayoutGridComponent, vp utils.Viewport, selected *components.Cell, palette config.CanvasPalette) {
	if selected == nil {
		return
	}
	if x, y, size, ok := fb.cellRect(grid, vp, *selected); ok {
		frame.Ops = append(frame.Ops, DrawOp{
			Layer: LayerSelection, Kind: OpStrokeRect,
			X: x, Y: y, W: size, H: size,
			Width: selectionWidth, Color: palette.Selected,
		})
	}
}

// addDragPreview 拖拽预览直接使用指针屏幕坐标，不受缩放和平移影响
func (fb *FrameBuilder) addDragPreview(frame *Frame, drag components.DraggingState) {
	style := fb.styles.Lookup(drag.Type)
	half := dragPreviewSize / 2
	frame.Ops = append(frame.Ops,
		DrawOp{Layer: LayerDragPreview, Kind: OpFillRect, X: drag.PointerX - half, Y: drag.PointerY - half, W: dragPreviewSize, H: dragPreviewSize, Color: config.WithAlpha(style.Color, dragPreviewAlpha), Type: drag.Type},
		DrawOp{Layer: LayerDragPreview, Kind: OpSymbol, X: drag.PointerX, Y: drag.PointerY, H: half, Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Symbol: style.Symbol, Type: drag.Type},
	)
}

// cellRect 返回格子的屏幕矩形，格子不在网格内时 ok 为 false
func (fb *FrameBuilder) cellRect(grid *components.LayoutGridComponent, vp utils.Viewport, cell components.Cell) (x, y, size float64, ok bool) {
	if !grid.InBounds(cell.Row, cell.Col) {
		return 0, 0, 0, false
	}
	wx, wy := utils.CellOrigin(cell.Row, cell.Col, grid.Rows, grid.Cols, fb.cellSize)
	x, y = vp.WorldToScreen(wx, wy)
	return x, y, fb.cellSize * vp.Zoom, true
}
