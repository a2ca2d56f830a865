package game

import (
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var sessionLog zerolog.Logger = log.With().Str("module", "session").Logger()

// OutcomeListener 在指针事件处理完毕后接收结果（用于提示音、状态栏）
type OutcomeListener func(outcome systems.InteractionOutcome)

// EditorSession 一次编辑会话
//
// 会话独占 EntityManager（同时作为组件ID生成器）、网格、视图和交互状态。
// 所有修改都在宿主事件循环中同步发生，不需要加锁。
type EditorSession struct {
	entityManager *ecs.EntityManager
	grid          *systems.LayoutGridSystem
	view          *systems.ViewSystem
	interaction   *systems.InteractionSystem

	listeners []OutcomeListener
}

// NewEditorSession 创建编辑会话
// 参数:
//   - rows, cols: 初始网格尺寸（会被钳制到 [1, 1000]）
func NewEditorSession(rows, cols int) *EditorSession {
	em := ecs.NewEntityManager()
	grid := systems.NewLayoutGridSystem(em, config.ClampGridDimension(rows), config.ClampGridDimension(cols))
	view := systems.NewViewSystem(em)

	s := &EditorSession{
		entityManager: em,
		grid:          grid,
		view:          view,
		interaction:   systems.NewInteractionSystem(em, grid, view),
	}

	sessionLog.Info().Int("rows", config.ClampGridDimension(rows)).Int("cols", config.ClampGridDimension(cols)).Msg("editor session started")
	return s
}

// EntityManager 返回会话的 EntityManager
func (s *EditorSession) EntityManager() *ecs.EntityManager { return s.entityManager }

// Grid 返回格子存储
func (s *EditorSession) Grid() *systems.LayoutGridSystem { return s.grid }

// View 返回视图系统
func (s *EditorSession) View() *systems.ViewSystem { return s.view }

// Interaction 返回交互状态机
func (s *EditorSession) Interaction() *systems.InteractionSystem { return s.interaction }

// AddOutcomeListener 注册结果监听器
func (s *EditorSession) AddOutcomeListener(l OutcomeListener) {
	s.listeners = append(s.listeners, l)
}

// HandlePointer 把指针事件交给交互状态机，并通知监听器
func (s *EditorSession) HandlePointer(ev types.PointerEvent) systems.InteractionOutcome {
	outcome := s.interaction.HandlePointer(ev)
	if outcome != systems.OutcomeNone {
		for _, l := range s.listeners {
			l(outcome)
		}
	}
	return outcome
}

// SetCanvasSize 更新画布尺寸
func (s *EditorSession) SetCanvasSize(width, height float64) {
	s.interaction.SetCanvasSize(width, height)
}

// SelectType 设置工具栏选中的组件类型
func (s *EditorSession) SelectType(ct types.ComponentType) {
	s.interaction.SelectType(ct)
}

// ClearGridOnly 清空所有格子，视图和交互状态恢复默认，行列数不变
func (s *EditorSession) ClearGridOnly() {
	s.grid.ClearAll()
	s.resetViewAndInteraction()
	sessionLog.Info().Msg("grid cleared")
}

// ResetAll 在 ClearGridOnly 基础上把行列数恢复为默认值
func (s *EditorSession) ResetAll() {
	s.ResetDimensions()
	sessionLog.Info().Msg("editor reset")
}

// Resize 调整网格尺寸（丢弃所有内容），视图和交互状态恢复默认
func (s *EditorSession) Resize(rows, cols int) {
	rows = config.ClampGridDimension(rows)
	cols = config.ClampGridDimension(cols)
	s.grid.Resize(rows, cols)
	s.resetViewAndInteraction()
}

// SetRows 只修改行数
func (s *EditorSession) SetRows(rows int) {
	_, cols := s.grid.Dimensions()
	s.Resize(rows, cols)
}

// SetCols 只修改列数
func (s *EditorSession) SetCols(cols int) {
	rows, _ := s.grid.Dimensions()
	s.Resize(rows, cols)
}

// ResetDimensions 恢复默认的 10x10 网格
func (s *EditorSession) ResetDimensions() {
	s.Resize(config.DefaultGridRows, config.DefaultGridCols)
}

func (s *EditorSession) resetViewAndInteraction() {
	s.view.Reset()
	s.interaction.Reset()
}

// FrameInput 返回当前帧的只读快照
func (s *EditorSession) FrameInput() systems.FrameInput {
	ic := s.interaction.Component()
	return systems.FrameInput{
		Grid:     s.grid.Grid(),
		Viewport: s.interaction.Viewport(),
		State:    s.interaction.State(),
		Selected: ic.Selected,
	}
}

// Stats 网格统计信息（状态栏显示）
type Stats struct {
	Rows, Cols int
	Occupied   int
	Invalid    int
	ByType     map[types.ComponentType]int
	Zoom       float64
}

// Stats 返回当前统计信息
func (s *EditorSession) Stats() Stats {
	rows, cols := s.grid.Dimensions()
	return Stats{
		Rows:     rows,
		Cols:     cols,
		Occupied: s.grid.OccupiedCount(),
		Invalid:  s.grid.InvalidCount(),
		ByType:   s.grid.CountByType(),
		Zoom:     s.view.Zoom(),
	}
}
