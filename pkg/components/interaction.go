package components

import (
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/types"
)

// InteractionState 交互状态机的当前模式
//
// 任意时刻只有一种模式处于活动状态：
//   - IdleState: 空闲（包含悬停子状态）
//   - DraggingState: 拖拽组件中
//   - PanningState: 平移画布中
//
// 接口是封闭的（只有本包的三个类型实现它），
// 因此"同时拖拽和平移"之类的非法组合无法被表示。
type InteractionState interface {
	// Mode 返回模式名称，用于日志和调试
	Mode() string
	sealed()
}

// IdleState 空闲模式
type IdleState struct {
	// Hover 指针下方的格子，仅用于渲染反馈；nil 表示不在任何格子上
	Hover *Cell
	// Pressed 主键在空格子或无效格子上按下后等待释放的格子
	// 在同一格子上释放才构成一次点击
	Pressed *Cell
}

// DraggingState 拖拽模式
type DraggingState struct {
	Source Cell                // 拖拽源格子（释放前不清除）
	Type   types.ComponentType // 被拖拽组件类型
	ID     ecs.EntityID        // 被拖拽组件ID

	PressX, PressY     float64 // 按下时的屏幕坐标
	PointerX, PointerY float64 // 当前指针屏幕坐标

	// Target 当前指针下方的格子；nil 表示不在网格上
	Target *Cell
	// Moved 指针是否已移动超过拖拽阈值
	// 未超过阈值的按下-释放视为点击（清除该格子）
	Moved bool
}

// PanningState 平移模式
type PanningState struct {
	LastX, LastY float64             // 上一次指针位置（增量平移的锚点）
	Button       types.PointerButton // 发起平移的按键，只有同一按键释放才结束平移
}

// Mode 实现 InteractionState
func (IdleState) Mode() string { return "idle" }

// Mode 实现 InteractionState
func (DraggingState) Mode() string { return "dragging" }

// Mode 实现 InteractionState
func (PanningState) Mode() string { return "panning" }

func (IdleState) sealed()     {}
func (DraggingState) sealed() {}
func (PanningState) sealed()  {}

// DropValid 拖放是否合法：目标存在、不是无效区域、且不是源格子
// targetInvalid 由调用方根据网格内容提供
func (d DraggingState) DropValid(targetInvalid bool) bool {
	if d.Target == nil || targetInvalid {
		return false
	}
	return *d.Target != d.Source
}

// InteractionComponent 挂在编辑器会话实体上的交互状态
type InteractionComponent struct {
	State InteractionState
	// Selected 最近一次点击的格子（渲染选中框）
	Selected *Cell
	// SelectedType 当前工具栏选中的组件类型，点击空格子时放置此类型
	SelectedType types.ComponentType
}

// CellPtr 返回格子坐标的指针（便于构造可选字段）
func CellPtr(row, col int) *Cell {
	return &Cell{Row: row, Col: col}
}
