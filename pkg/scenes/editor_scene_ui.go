package scenes

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/entities"
	"github.com/decker502/ceilplan/pkg/modules"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 行列面板布局
const (
	dimPanelWidth   = 208.0
	dimRowHeight    = 44.0
	dimPanelHeight  = 8 + 3*dimRowHeight
	dimFieldWidth   = 64.0
	actionWidth     = 88.0
	hudHeight       = 20.0
	caretBlinkTicks = 30
)

var (
	toolbarColor    = color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
	toolbarBorder   = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	panelColor      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xF0}
	fieldColor      = color.RGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF}
	fieldFocusColor = color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}
	labelColor      = color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xFF}
	hudColor        = color.RGBA{R: 0x61, G: 0x61, B: 0x61, A: 0xFF}
)

// sceneLayout 一次布局计算的结果（屏幕坐标）
type sceneLayout struct {
	toolbar utils.Rect
	canvas  utils.Rect

	toolButtons [][2]float64
	clear       [2]float64
	reset       [2]float64

	zoomIn    [2]float64
	zoomReset [2]float64
	zoomOut   [2]float64

	dimensionPanel utils.Rect
	rowsMinus      [2]float64
	rowsPlus       [2]float64
	colsMinus      [2]float64
	colsPlus       [2]float64
	dimReset       [2]float64
	rowsField      utils.Rect
	colsField      utils.Rect
}

// computeLayout 根据窗口尺寸计算所有 UI 元素的位置
func computeLayout(width, height, toolCount int) sceneLayout {
	w, h := float64(width), float64(height)
	var l sceneLayout

	l.toolbar = utils.Rect{X: 0, Y: 0, Width: w, Height: config.ToolbarHeight}
	l.canvas = utils.Rect{X: 0, Y: config.ToolbarHeight, Width: w, Height: h - config.ToolbarHeight}

	buttonY := (config.ToolbarHeight - config.ToolbarButtonHeight) / 2.0
	for i := 0; i < toolCount; i++ {
		x := config.ToolbarPadding + float64(i)*(config.ToolbarButtonWidth+config.ToolbarPadding)
		l.toolButtons = append(l.toolButtons, [2]float64{x, buttonY})
	}
	l.reset = [2]float64{w - config.ToolbarPadding - actionWidth, buttonY}
	l.clear = [2]float64{l.reset[0] - config.ToolbarPadding - actionWidth, buttonY}

	// 缩放按钮：右下角竖排，从上到下为放大、复位、缩小
	zx := w - config.PanelMargin - config.ZoomButtonSize
	l.zoomOut = [2]float64{zx, h - config.PanelMargin - config.ZoomButtonSize}
	l.zoomReset = [2]float64{zx, l.zoomOut[1] - config.ZoomButtonSize - config.ToolbarPadding}
	l.zoomIn = [2]float64{zx, l.zoomReset[1] - config.ZoomButtonSize - config.ToolbarPadding}

	// 行列面板：左下角
	px := float64(config.PanelMargin)
	py := h - config.PanelMargin - dimPanelHeight
	l.dimensionPanel = utils.Rect{X: px, Y: py, Width: dimPanelWidth, Height: dimPanelHeight}

	rowY := func(i int) float64 { return py + 8 + float64(i)*dimRowHeight }
	minusX := px + 56
	fieldX := minusX + config.ZoomButtonSize + 4
	plusX := fieldX + dimFieldWidth + 4

	l.rowsMinus = [2]float64{minusX, rowY(0)}
	l.rowsField = utils.Rect{X: fieldX, Y: rowY(0), Width: dimFieldWidth, Height: config.ZoomButtonSize}
	l.rowsPlus = [2]float64{plusX, rowY(0)}

	l.colsMinus = [2]float64{minusX, rowY(1)}
	l.colsField = utils.Rect{X: fieldX, Y: rowY(1), Width: dimFieldWidth, Height: config.ZoomButtonSize}
	l.colsPlus = [2]float64{plusX, rowY(1)}

	l.dimReset = [2]float64{px + 8, rowY(2)}

	return l
}

// createButtons 创建所有按钮实体（位置在 applyLayout 中设置）
func (s *EditorScene) createButtons() {
	em := s.uiManager

	for _, ct := range types.AllComponentTypes() {
		entity := entities.NewToolButton(em, 0, 0, s.styles.Lookup(ct), func() { s.selectType(ct) })
		s.toolButtons = append(s.toolButtons, toolButton{componentType: ct, entity: entity})
	}
	s.clearButton = entities.NewActionButton(em, 0, 0, actionWidth, "Clear", s.session.ClearGridOnly)
	s.resetButton = entities.NewActionButton(em, 0, 0, actionWidth, "Reset", s.resetAll)

	view := s.session.View()
	s.zoomInButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "+", view.ZoomIn)
	s.zoomResetButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "1:1", view.ResetZoom)
	s.zoomOutButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "-", view.ZoomOut)

	s.rowsMinusButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "-", s.stepField(s.panel.Rows, -1))
	s.rowsPlusButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "+", s.stepField(s.panel.Rows, 1))
	s.colsMinusButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "-", s.stepField(s.panel.Cols, -1))
	s.colsPlusButton = entities.NewIconButton(em, 0, 0, config.ZoomButtonSize, "+", s.stepField(s.panel.Cols, 1))
	s.dimResetButton = entities.NewActionButton(em, 0, 0, dimPanelWidth-16, "Default 10 x 10", s.panel.ResetDefaults)
}

func (s *EditorScene) stepField(field *modules.DimensionField, delta int) func() {
	return func() {
		if delta > 0 {
			field.Increment()
		} else {
			field.Decrement()
		}
	}
}

// applyLayout 把布局结果写入按钮位置
func (s *EditorScene) applyLayout() {
	em := s.uiManager
	l := s.layout

	for i, tb := range s.toolButtons {
		entities.MoveButton(em, tb.entity, l.toolButtons[i][0], l.toolButtons[i][1])
	}
	entities.MoveButton(em, s.clearButton, l.clear[0], l.clear[1])
	entities.MoveButton(em, s.resetButton, l.reset[0], l.reset[1])

	entities.MoveButton(em, s.zoomInButton, l.zoomIn[0], l.zoomIn[1])
	entities.MoveButton(em, s.zoomResetButton, l.zoomReset[0], l.zoomReset[1])
	entities.MoveButton(em, s.zoomOutButton, l.zoomOut[0], l.zoomOut[1])

	entities.MoveButton(em, s.rowsMinusButton, l.rowsMinus[0], l.rowsMinus[1])
	entities.MoveButton(em, s.rowsPlusButton, l.rowsPlus[0], l.rowsPlus[1])
	entities.MoveButton(em, s.colsMinusButton, l.colsMinus[0], l.colsMinus[1])
	entities.MoveButton(em, s.colsPlusButton, l.colsPlus[0], l.colsPlus[1])
	entities.MoveButton(em, s.dimResetButton, l.dimReset[0], l.dimReset[1])
}

// Draw 绘制画布、工具栏、面板和 HUD
func (s *EditorScene) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	l := s.layout

	s.renderSystem.Draw(screen, s.session.FrameInput(), l.canvas.X, l.canvas.Y)

	fillRect(screen, l.toolbar, toolbarColor)
	vector.StrokeLine(screen, 0, float32(l.toolbar.Height), float32(l.toolbar.Width), float32(l.toolbar.Height), 1, toolbarBorder, true)

	s.drawDimensionPanel(screen)
	s.buttonRenderSystem.Draw(screen)

	if s.settings == nil || s.settings.Settings().ShowCoordinates {
		s.renderSystem.DrawLabel(screen, s.hudText(), l.canvas.X+l.dimensionPanel.Width+2*config.PanelMargin,
			l.canvas.Y+l.canvas.Height-hudHeight, hudColor, false)
	}
}

func (s *EditorScene) drawDimensionPanel(screen *ebiten.Image) {
	l := s.layout
	fillRect(screen, l.dimensionPanel, panelColor)
	strokeRect(screen, l.dimensionPanel, 1, toolbarBorder)

	fields := []struct {
		field *modules.DimensionField
		rect  utils.Rect
	}{
		{s.panel.Rows, l.rowsField},
		{s.panel.Cols, l.colsField},
	}
	for _, f := range fields {
		s.renderSystem.DrawLabel(screen, f.field.Label, l.dimensionPanel.X+8, f.rect.Y+f.rect.Height/2-6, labelColor, false)

		fillRect(screen, f.rect, fieldColor)
		border, width := toolbarBorder, float32(1)
		text := f.field.Text
		if f.field.Focused {
			border, width = fieldFocusColor, 2
			if ebiten.Tick()/caretBlinkTicks%2 == 0 {
				text += "|"
			}
		}
		strokeRect(screen, f.rect, width, border)
		s.renderSystem.DrawLabel(screen, text, f.rect.X+f.rect.Width/2, f.rect.Y+f.rect.Height/2, labelColor, true)
	}
}

// hudText 状态栏文字：指针下的格子、缩放比例、统计
func (s *EditorScene) hudText() string {
	stats := s.session.Stats()

	var b strings.Builder
	localX := s.pointerX - s.layout.canvas.X
	localY := s.pointerY - s.layout.canvas.Y
	if cell := s.session.Interaction().CellAt(localX, localY); cell != nil && s.tracker.Inside() {
		fmt.Fprintf(&b, "row %d, col %d | ", cell.Row+1, cell.Col+1)
	}
	fmt.Fprintf(&b, "%dx%d | zoom %.0f%% | %d placed, %d invalid",
		stats.Rows, stats.Cols, stats.Zoom*100, stats.Occupied, stats.Invalid)

	if len(stats.ByType) > 0 {
		parts := make([]string, 0, len(stats.ByType))
		for ct, n := range stats.ByType {
			parts = append(parts, fmt.Sprintf("%s %d", s.styles.Lookup(ct).Name, n))
		}
		sort.Strings(parts)
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}

func fillRect(dst *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, true)
}

func strokeRect(dst *ebiten.Image, r utils.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, clr, true)
}
