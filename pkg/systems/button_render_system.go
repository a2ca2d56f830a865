package systems

import (
	"image/color"

	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	buttonNormalColor   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	buttonHoverColor    = color.RGBA{R: 0xE3, G: 0xF2, B: 0xFD, A: 0xFF}
	buttonPressedColor  = color.RGBA{R: 0xBB, G: 0xDE, B: 0xFB, A: 0xFF}
	buttonDisabledColor = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	buttonBorderColor   = color.RGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}
	buttonActiveBorder  = color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}
	buttonTextColor     = color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF}
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有按钮实体（扁平矩形背景 + 居中文字）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(button.Width), float32(button.Height)

	vector.DrawFilledRect(screen, x, y, w, h, buttonBackground(button), true)

	border := buttonBorderColor
	borderWidth := float32(1)
	if button.Active {
		border = buttonActiveBorder
		borderWidth = 3
	}
	vector.StrokeRect(screen, x, y, w, h, borderWidth, border, true)

	labelX := pos.X + button.Width/2
	if button.Kind == components.ButtonKindTool {
		// 左侧色块标记组件类型
		swatch := float32(button.Height - 16)
		vector.DrawFilledRect(screen, x+8, y+8, swatch, swatch, button.Accent, true)
		if button.Symbol != 0 {
			s.drawText(screen, string(button.Symbol), float64(x+8+swatch/2), pos.Y+button.Height/2, color.White)
		}
		labelX = pos.X + 8 + float64(swatch) + (button.Width-16-float64(swatch))/2
	}

	s.drawText(screen, button.Label, labelX, pos.Y+button.Height/2, buttonTextColor)
}

func buttonBackground(button *components.ButtonComponent) color.RGBA {
	switch button.State {
	case components.UIHovered:
		return buttonHoverColor
	case components.UIClicked:
		return buttonPressedColor
	case components.UIDisabled:
		return buttonDisabledColor
	default:
		return buttonNormalColor
	}
}

// drawText 以 (cx, cy) 为中心绘制文字
func (s *ButtonRenderSystem) drawText(screen *ebiten.Image, label string, cx, cy float64, clr color.Color) {
	if label == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, s.face, op)
}
