// Package utils 提供通用工具函数
package utils

import (
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerButtons 按事件投递顺序排列的按键
var pointerButtons = [...]types.PointerButton{
	types.ButtonPrimary,
	types.ButtonSecondary,
	types.ButtonAuxiliary,
}

// PointerSnapshot 一帧的指针状态
// 坐标为逻辑屏幕坐标
type PointerSnapshot struct {
	X, Y float64
	// Pressed 按 pointerButtons 的顺序记录各按键是否按下
	Pressed [len(pointerButtons)]bool
	// WheelY 本帧滚轮位移，> 0 表示向下滚动
	WheelY float64
	// Touch 本帧由触摸点采样
	Touch bool
}

// IsPressed 检查指定按键是否按下
func (s PointerSnapshot) IsPressed(button types.PointerButton) bool {
	for i, b := range pointerButtons {
		if b == button {
			return s.Pressed[i]
		}
	}
	return false
}

func (s PointerSnapshot) anyPressed() bool {
	for _, pressed := range s.Pressed {
		if pressed {
			return true
		}
	}
	return false
}

// Rect 画布矩形（逻辑屏幕坐标）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 检查点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// PointerTracker 比较相邻两帧的指针状态，生成画布局部的指针事件
//
// 每帧生成的事件顺序固定为：离开/移动 → 按下 → 释放 → 滚轮。
// 按下和滚轮只在指针位于画布内时生成；释放总是生成，
// 保证在画布外松开的按键也能结束拖拽或平移。
type PointerTracker struct {
	last        PointerSnapshot
	inside      bool
	initialized bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Inside 返回上一帧指针是否在画布内
func (t *PointerTracker) Inside() bool {
	return t.inside
}

// Update 处理一帧的指针状态
// 参数:
//   - cur: 本帧指针状态
//   - canvas: 画布矩形，事件坐标相对于其左上角
//
// 返回:
//   - []types.PointerEvent: 本帧生成的事件（按投递顺序）
func (t *PointerTracker) Update(cur PointerSnapshot, canvas Rect) []types.PointerEvent {
	var events []types.PointerEvent
	if t.last.Touch && !cur.Touch && !cur.anyPressed() {
		// 手指抬起后没有触摸点，鼠标位置与触摸无关，在最后的触摸位置释放
		cur.X, cur.Y = t.last.X, t.last.Y
	}
	localX := cur.X - canvas.X
	localY := cur.Y - canvas.Y
	inside := canvas.Contains(cur.X, cur.Y)

	if !t.initialized {
		t.initialized = true
		t.last = PointerSnapshot{X: cur.X, Y: cur.Y}
	}

	switch {
	case t.inside && !inside:
		events = append(events, types.PointerEvent{Kind: types.PointerLeave, X: localX, Y: localY})
	case inside && (!t.inside || cur.X != t.last.X || cur.Y != t.last.Y):
		events = append(events, types.PointerEvent{Kind: types.PointerMove, X: localX, Y: localY})
	}

	for i, button := range pointerButtons {
		if inside && cur.Pressed[i] && !t.last.Pressed[i] {
			events = append(events, types.PointerEvent{Kind: types.PointerPress, Button: button, X: localX, Y: localY})
		}
	}
	for i, button := range pointerButtons {
		if !cur.Pressed[i] && t.last.Pressed[i] {
			events = append(events, types.PointerEvent{Kind: types.PointerRelease, Button: button, X: localX, Y: localY})
		}
	}

	if inside && cur.WheelY != 0 {
		events = append(events, types.PointerEvent{Kind: types.PointerWheel, X: localX, Y: localY, DeltaY: cur.WheelY})
	}

	t.last = cur
	t.inside = inside
	return events
}

// Reset 清除历史状态（场景切换时调用）
func (t *PointerTracker) Reset() {
	*t = PointerTracker{}
}

// SamplePointer 读取 ebiten 当前帧的指针状态
// 有活动触摸时使用第一个触摸点作为主键，否则使用鼠标
func SamplePointer() PointerSnapshot {
	var s PointerSnapshot

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		s.X, s.Y = float64(x), float64(y)
		s.Pressed[0] = true
		s.Touch = true
		return s
	}

	x, y := ebiten.CursorPosition()
	s.X, s.Y = float64(x), float64(y)
	s.Pressed[0] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.Pressed[1] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.Pressed[2] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	// ebiten 中向上滚动为正值
	_, wheelY := ebiten.Wheel()
	s.WheelY = -wheelY
	return s
}
