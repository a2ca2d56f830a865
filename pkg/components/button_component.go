package components

import "image/color"

// ButtonKind 按钮用途，决定绘制样式
type ButtonKind int

const (
	// ButtonKindTool 工具栏组件类型按钮（带颜色标记，可处于选中状态）
	ButtonKindTool ButtonKind = iota
	// ButtonKindAction 普通操作按钮（清空、恢复默认等）
	ButtonKindAction
	// ButtonKindIcon 方形图标按钮（缩放、行列 +/-）
	ButtonKindIcon
)

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的外观、文字、状态和回调
//
// 纯数据组件，位置由 PositionComponent 提供
type ButtonComponent struct {
	Kind ButtonKind

	// Label 按钮文字
	Label string
	// Symbol 工具按钮的组件符号，0 表示无
	Symbol rune
	// Accent 工具按钮的组件颜色
	Accent color.RGBA

	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool
	// Active 工具按钮是否为当前选中的组件类型
	Active bool

	// OnClick 点击回调函数（在按钮范围内释放主键时触发）
	OnClick func()
}

// Contains 检查屏幕坐标是否落在按钮范围内
func (b *ButtonComponent) Contains(pos *PositionComponent, x, y float64) bool {
	return x >= pos.X && x <= pos.X+b.Width && y >= pos.Y && y <= pos.Y+b.Height
}
