package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// symbolFontSize basicfont.Face7x13 的基准字号
const symbolFontSize = 13.0

// RenderSystem 把 FrameBuilder 生成的绘制指令画到 ebiten 图像上
//
// 职责范围：
//   - 画布：网格、格子内容、交互叠加层、拖拽预览
//
// 不包括：
//   - 工具栏、缩放按钮、行列面板等 UI 元素由编辑器场景绘制
type RenderSystem struct {
	builder *FrameBuilder
	face    text.Face
}

// NewRenderSystem 创建画布渲染系统
func NewRenderSystem(builder *FrameBuilder) *RenderSystem {
	return &RenderSystem{
		builder: builder,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

// Builder 返回帧构建器
func (s *RenderSystem) Builder() *FrameBuilder {
	return s.builder
}

// Draw 构建并绘制一帧
// 参数:
//   - screen: 目标图像
//   - in: 帧输入快照
//   - offsetX, offsetY: 画布左上角在 screen 上的位置
func (s *RenderSystem) Draw(screen *ebiten.Image, in FrameInput, offsetX, offsetY float64) {
	s.DrawFrame(screen, s.builder.Build(in), offsetX, offsetY)
}

// DrawFrame 按顺序执行绘制指令，超出画布的部分被裁剪
func (s *RenderSystem) DrawFrame(screen *ebiten.Image, frame *Frame, offsetX, offsetY float64) {
	clip := image.Rect(
		int(offsetX), int(offsetY),
		int(math.Ceil(offsetX+frame.Viewport.CanvasWidth)), int(math.Ceil(offsetY+frame.Viewport.CanvasHeight)),
	)
	canvas, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		canvas = screen
	}

	for i := range frame.Ops {
		s.drawOp(canvas, &frame.Ops[i], offsetX, offsetY)
	}
}

func (s *RenderSystem) drawOp(dst *ebiten.Image, op *DrawOp, offsetX, offsetY float64) {
	x := float32(op.X + offsetX)
	y := float32(op.Y + offsetY)
	w := float32(op.W)
	h := float32(op.H)

	switch op.Kind {
	case OpFillRect:
		vector.DrawFilledRect(dst, x, y, w, h, op.Color, true)
	case OpStrokeRect:
		vector.StrokeRect(dst, x, y, w, h, float32(op.Width), op.Color, true)
	case OpLine:
		vector.StrokeLine(dst, x, y, float32(op.X2+offsetX), float32(op.Y2+offsetY), float32(op.Width), op.Color, true)
	case OpSymbol:
		s.drawSymbol(dst, op.Symbol, op.X+offsetX, op.Y+offsetY, op.H, op.Color)
	}
}

// drawSymbol 以 (cx, cy) 为中心绘制单个符号，size 为目标字号
func (s *RenderSystem) drawSymbol(dst *ebiten.Image, symbol rune, cx, cy, size float64, clr color.RGBA) {
	if symbol == 0 || size < 4 {
		return
	}
	scale := size / symbolFontSize

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(dst, string(symbol), s.face, op)
}

// DrawLabel 绘制 UI 文字（工具栏、HUD 共用同一字体）
func (s *RenderSystem) DrawLabel(dst *ebiten.Image, label string, x, y float64, clr color.Color, centered bool) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	if centered {
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
	}
	text.Draw(dst, label, s.face, op)
}
