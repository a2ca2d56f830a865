package entities

import (
	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/ecs"
)

// NewToolButton 创建工具栏组件类型按钮
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮位置（屏幕坐标）
//   - style: 组件样式（名称、颜色、符号）
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID
func NewToolButton(em *ecs.EntityManager, x, y float64, style config.ComponentStyle, onClick func()) ecs.EntityID {
	return newButton(em, x, y, &components.ButtonComponent{
		Kind:    components.ButtonKindTool,
		Label:   style.Name,
		Symbol:  style.Symbol,
		Accent:  style.Color,
		Width:   config.ToolbarButtonWidth,
		Height:  config.ToolbarButtonHeight,
		OnClick: onClick,
	})
}

// NewActionButton 创建文字操作按钮
func NewActionButton(em *ecs.EntityManager, x, y, width float64, label string, onClick func()) ecs.EntityID {
	return newButton(em, x, y, &components.ButtonComponent{
		Kind:    components.ButtonKindAction,
		Label:   label,
		Width:   width,
		Height:  config.ToolbarButtonHeight,
		OnClick: onClick,
	})
}

// NewIconButton 创建方形图标按钮（缩放、行列步进）
func NewIconButton(em *ecs.EntityManager, x, y, size float64, label string, onClick func()) ecs.EntityID {
	return newButton(em, x, y, &components.ButtonComponent{
		Kind:    components.ButtonKindIcon,
		Label:   label,
		Width:   size,
		Height:  size,
		OnClick: onClick,
	})
}

func newButton(em *ecs.EntityManager, x, y float64, button *components.ButtonComponent) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})

	button.State = components.UINormal
	button.Enabled = true
	ecs.AddComponent(em, entity, button)

	// 添加 UI 组件标记（方便过滤）
	ecs.AddComponent(em, entity, &components.UIComponent{State: components.UINormal})

	return entity
}

// MoveButton 更新按钮位置（窗口尺寸变化时重新布局）
func MoveButton(em *ecs.EntityManager, entity ecs.EntityID, x, y float64) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, entity); ok {
		pos.X = x
		pos.Y = y
	}
}
