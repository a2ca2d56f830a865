package systems

import (
	"math"

	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var inputLog zerolog.Logger = log.With().Str("module", "interaction").Logger()

// InteractionOutcome 一次指针事件对网格造成的结果
type InteractionOutcome int

const (
	// OutcomeNone 网格未改变
	OutcomeNone InteractionOutcome = iota
	// OutcomePlaced 在空格子上放置了组件或无效标记
	OutcomePlaced
	// OutcomeCleared 清空了占用或无效的格子
	OutcomeCleared
	// OutcomeMoved 拖放成功
	OutcomeMoved
	// OutcomeDropRejected 拖放目标不合法，网格未改变
	OutcomeDropRejected
	// OutcomeDragAborted 拖拽中指针离开画布，网格未改变
	OutcomeDragAborted
)

// String 返回结果名称
func (o InteractionOutcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePlaced:
		return "placed"
	case OutcomeCleared:
		return "cleared"
	case OutcomeMoved:
		return "moved"
	case OutcomeDropRejected:
		return "dropRejected"
	case OutcomeDragAborted:
		return "dragAborted"
	default:
		return "unknown"
	}
}

// Mutated 网格内容是否发生了变化
func (o InteractionOutcome) Mutated() bool {
	return o == OutcomePlaced || o == OutcomeCleared || o == OutcomeMoved
}

// InteractionSystem 指针交互状态机
//
// 按宿主事件循环投递的顺序逐个处理指针事件，驱动悬停、点击放置/清除、
// 拖放和平移。悬停反馈和拖放落点都通过 utils.HitTest 解析，
// 因此高亮的格子就是释放时被修改的格子。
//
// 状态转换：
//   - Idle + 主键按下占用格子 → Dragging
//   - Idle + 主键按下/释放同一空格子或无效格子 → 切换该格子
//   - Idle + 副键/中键按下 → Panning
//   - Dragging + 主键释放 → 合法则移动，随后回到 Idle
//   - Dragging/Panning + 指针离开画布 → Idle，不修改网格
//   - Panning + 同一按键释放 → Idle
//   - 滚轮在任意状态下都会缩放
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	grid          *LayoutGridSystem
	view          *ViewSystem
	sessionEntity ecs.EntityID

	canvasWidth  float64
	canvasHeight float64
	cellSize     float64
}

// NewInteractionSystem 创建交互系统
// 参数:
//   - em: 会话的 EntityManager
//   - grid: 格子存储
//   - view: 视图系统（提供缩放和平移）
func NewInteractionSystem(em *ecs.EntityManager, grid *LayoutGridSystem, view *ViewSystem) *InteractionSystem {
	is := &InteractionSystem{
		entityManager: em,
		grid:          grid,
		view:          view,
		canvasWidth:   config.EditorWindowWidth,
		canvasHeight:  config.EditorWindowHeight - config.ToolbarHeight,
		cellSize:      config.CellSize,
	}

	is.sessionEntity = em.CreateEntity()
	ecs.AddComponent(em, is.sessionEntity, &components.InteractionComponent{
		State:        components.IdleState{},
		SelectedType: types.ComponentLight,
	})

	return is
}

// Component 返回交互状态组件
func (is *InteractionSystem) Component() *components.InteractionComponent {
	ic, ok := ecs.GetComponent[*components.InteractionComponent](is.entityManager, is.sessionEntity)
	if !ok {
		ic = &components.InteractionComponent{State: components.IdleState{}, SelectedType: types.ComponentLight}
		ecs.AddComponent(is.entityManager, is.sessionEntity, ic)
	}
	return ic
}

// State 返回当前交互模式
func (is *InteractionSystem) State() components.InteractionState {
	ic := is.Component()
	if ic.State == nil {
		ic.State = components.IdleState{}
	}
	return ic.State
}

// SetCanvasSize 更新画布尺寸（窗口大小变化时调用）
func (is *InteractionSystem) SetCanvasSize(width, height float64) {
	is.canvasWidth = width
	is.canvasHeight = height
}

// CanvasSize 返回画布尺寸
func (is *InteractionSystem) CanvasSize() (width, height float64) {
	return is.canvasWidth, is.canvasHeight
}

// Viewport 返回当前画布视口
func (is *InteractionSystem) Viewport() utils.Viewport {
	return is.view.Viewport(is.canvasWidth, is.canvasHeight)
}

// SelectType 设置点击空格子时放置的组件类型，未定义的类型被忽略
func (is *InteractionSystem) SelectType(ct types.ComponentType) {
	if !ct.IsValid() {
		return
	}
	is.Component().SelectedType = ct
	inputLog.Debug().Stringer("type", ct).Msg("component type selected")
}

// SelectedType 返回工具栏当前选中的组件类型
func (is *InteractionSystem) SelectedType() types.ComponentType {
	return is.Component().SelectedType
}

// Selected 返回最近一次点击的格子
func (is *InteractionSystem) Selected() *components.Cell {
	return is.Component().Selected
}

// Reset 回到空闲状态并清除选中格子（清空网格或调整尺寸时调用）
// 工具栏选中的类型保留。
func (is *InteractionSystem) Reset() {
	ic := is.Component()
	ic.State = components.IdleState{}
	ic.Selected = nil
}

// CellAt 返回画布坐标下的格子，nil 表示不在网格上
func (is *InteractionSystem) CellAt(screenX, screenY float64) *components.Cell {
	rows, cols := is.grid.Dimensions()
	row, col, ok := utils.HitTest(screenX, screenY, is.Viewport(), rows, cols, is.cellSize)
	if !ok {
		return nil
	}
	return components.CellPtr(row, col)
}

// DropTarget 返回拖拽中的目标格子及其合法性
// 返回:
//   - target: 当前目标格子，nil 表示指针不在网格上
//   - valid: 释放时是否会执行移动
//   - dragging: 是否处于拖拽模式且已越过拖拽阈值（未越过时释放视为点击源格子）
func (is *InteractionSystem) DropTarget() (target *components.Cell, valid bool, dragging bool) {
	drag, ok := is.State().(components.DraggingState)
	if !ok || !drag.Moved {
		return nil, false, false
	}
	return drag.Target, drag.DropValid(is.targetInvalid(drag.Target)), true
}

// HandlePointer 处理一个指针事件
// 事件必须按宿主投递顺序逐个处理，不能重排或合并。
func (is *InteractionSystem) HandlePointer(ev types.PointerEvent) InteractionOutcome {
	switch ev.Kind {
	case types.PointerPress:
		return is.handlePress(ev)
	case types.PointerRelease:
		return is.handleRelease(ev)
	case types.PointerMove:
		is.handleMove(ev)
	case types.PointerLeave:
		return is.handleLeave()
	case types.PointerWheel:
		is.handleWheel(ev)
	}
	return OutcomeNone
}

func (is *InteractionSystem) setState(state components.InteractionState) {
	ic := is.Component()
	if ic.State == nil || ic.State.Mode() != state.Mode() {
		inputLog.Debug().Str("from", is.State().Mode()).Str("to", state.Mode()).Msg("interaction mode changed")
	}
	ic.State = state
}

func (is *InteractionSystem) handlePress(ev types.PointerEvent) InteractionOutcome {
	idle, ok := is.State().(components.IdleState)
	if !ok {
		// 拖拽优先，平移中也不接受新的按下
		return OutcomeNone
	}

	if ev.Button.IsPanButton() {
		is.setState(components.PanningState{LastX: ev.X, LastY: ev.Y, Button: ev.Button})
		return OutcomeNone
	}
	if ev.Button != types.ButtonPrimary {
		return OutcomeNone
	}

	cell := is.CellAt(ev.X, ev.Y)
	if cell == nil {
		idle.Hover = nil
		idle.Pressed = nil
		is.setState(idle)
		return OutcomeNone
	}

	content, _ := is.grid.Cell(cell.Row, cell.Col)
	if content.IsOccupied() {
		// 源格子在成功放下之前保持不变
		is.setState(components.DraggingState{
			Source:   *cell,
			Type:     content.Type,
			ID:       content.ID,
			PressX:   ev.X,
			PressY:   ev.Y,
			PointerX: ev.X,
			PointerY: ev.Y,
			Target:   cell,
		})
		return OutcomeNone
	}

	idle.Hover = cell
	idle.Pressed = cell
	is.setState(idle)
	return OutcomeNone
}

func (is *InteractionSystem) handleRelease(ev types.PointerEvent) InteractionOutcome {
	switch state := is.State().(type) {
	case components.DraggingState:
		if ev.Button != types.ButtonPrimary {
			return OutcomeNone
		}
		return is.finishDrag(state, ev)

	case components.PanningState:
		if ev.Button != state.Button {
			return OutcomeNone
		}
		is.setState(components.IdleState{Hover: is.CellAt(ev.X, ev.Y)})
		return OutcomeNone

	case components.IdleState:
		cell := is.CellAt(ev.X, ev.Y)
		pressed := state.Pressed
		is.setState(components.IdleState{Hover: cell})
		if ev.Button != types.ButtonPrimary || pressed == nil || cell == nil || *cell != *pressed {
			return OutcomeNone
		}
		return is.toggle(*cell)
	}
	return OutcomeNone
}

// finishDrag 结束拖拽：位移未超过阈值视为点击，否则尝试移动
func (is *InteractionSystem) finishDrag(drag components.DraggingState, ev types.PointerEvent) InteractionOutcome {
	drag.PointerX, drag.PointerY = ev.X, ev.Y
	if exceedsDragThreshold(drag.PressX, drag.PressY, ev.X, ev.Y) {
		drag.Moved = true
	}
	drag.Target = is.CellAt(ev.X, ev.Y)

	is.setState(components.IdleState{Hover: drag.Target})

	if !drag.Moved {
		return is.toggle(drag.Source)
	}

	if !drag.DropValid(is.targetInvalid(drag.Target)) {
		inputLog.Debug().Int("row", drag.Source.Row).Int("col", drag.Source.Col).Msg("drop rejected")
		return OutcomeDropRejected
	}

	if !is.grid.Move(drag.Source.Row, drag.Source.Col, drag.Target.Row, drag.Target.Col) {
		return OutcomeDropRejected
	}
	is.Component().Selected = components.CellPtr(drag.Target.Row, drag.Target.Col)
	return OutcomeMoved
}

// toggle 点击格子：占用或无效则清空，否则放置当前选中的类型
func (is *InteractionSystem) toggle(cell components.Cell) InteractionOutcome {
	ic := is.Component()
	ic.Selected = components.CellPtr(cell.Row, cell.Col)

	content, ok := is.grid.Cell(cell.Row, cell.Col)
	if !ok {
		return OutcomeNone
	}
	if content.IsOccupied() || content.IsInvalid() {
		is.grid.ClearCell(cell.Row, cell.Col)
		return OutcomeCleared
	}
	if _, placed := is.grid.Place(cell.Row, cell.Col, ic.SelectedType); placed {
		return OutcomePlaced
	}
	return OutcomeNone
}

func (is *InteractionSystem) handleMove(ev types.PointerEvent) {
	switch state := is.State().(type) {
	case components.DraggingState:
		state.PointerX, state.PointerY = ev.X, ev.Y
		if !state.Moved && exceedsDragThreshold(state.PressX, state.PressY, ev.X, ev.Y) {
			state.Moved = true
		}
		state.Target = is.dragTarget(state)
		is.setState(state)

	case components.PanningState:
		is.view.PanBy(ev.X-state.LastX, ev.Y-state.LastY)
		// 增量锚点，避免累计误差
		state.LastX, state.LastY = ev.X, ev.Y
		is.setState(state)

	case components.IdleState:
		state.Hover = is.CellAt(ev.X, ev.Y)
		is.setState(state)
	}
}

func (is *InteractionSystem) handleLeave() InteractionOutcome {
	switch is.State().(type) {
	case components.DraggingState:
		is.setState(components.IdleState{})
		inputLog.Debug().Msg("drag aborted: pointer left canvas")
		return OutcomeDragAborted
	default:
		is.setState(components.IdleState{})
	}
	return OutcomeNone
}

func (is *InteractionSystem) handleWheel(ev types.PointerEvent) {
	is.view.WheelZoom(ev.DeltaY)

	// 缩放后指针下方的格子可能改变
	switch state := is.State().(type) {
	case components.DraggingState:
		state.Target = is.dragTarget(state)
		is.setState(state)
	case components.IdleState:
		state.Hover = is.CellAt(ev.X, ev.Y)
		is.setState(state)
	}
}

// dragTarget 未越过拖拽阈值时目标固定为源格子，释放按点击处理
func (is *InteractionSystem) dragTarget(drag components.DraggingState) *components.Cell {
	if !drag.Moved {
		return components.CellPtr(drag.Source.Row, drag.Source.Col)
	}
	return is.CellAt(drag.PointerX, drag.PointerY)
}

func (is *InteractionSystem) targetInvalid(target *components.Cell) bool {
	if target == nil {
		return false
	}
	content, ok := is.grid.Cell(target.Row, target.Col)
	return ok && content.IsInvalid()
}

func exceedsDragThreshold(pressX, pressY, x, y float64) bool {
	return math.Hypot(x-pressX, y-pressY) >= config.DragThreshold
}
