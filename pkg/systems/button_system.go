package systems

import (
	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/ecs"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的鼠标悬停、点击等交互逻辑
//
// 职责：
//   - 检测鼠标悬停（更新按钮状态为 UIHovered）
//   - 检测鼠标点击（释放瞬间触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
//
// 指针状态由调用者传入，本系统不直接读取 ebiten 输入。
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 更新按钮交互状态
// 参数:
//   - mouseX, mouseY: 指针屏幕坐标
//   - pressed: 主键当前是否按下
//   - released: 主键是否在本帧释放
//
// 返回:
//   - bool: 本帧是否有按钮被点击
func (s *ButtonSystem) Update(mouseX, mouseY float64, pressed, released bool) bool {
	clicked := false
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !button.Contains(pos, mouseX, mouseY) {
			button.State = components.UINormal
			continue
		}

		switch {
		case pressed:
			button.State = components.UIClicked
		case released:
			if button.OnClick != nil {
				button.OnClick()
			}
			clicked = true
			button.State = components.UIHovered
		default:
			button.State = components.UIHovered
		}
	}

	return clicked
}

// HitTest 检查屏幕坐标是否落在任意已启用的按钮上
// 编辑器场景用它拦截落在按钮上的画布事件
func (s *ButtonSystem) HitTest(x, y float64) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if button.Enabled && button.Contains(pos, x, y) {
			return true
		}
	}
	return false
}
