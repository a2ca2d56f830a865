package scenes

import (
	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/modules"
	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var sceneLog zerolog.Logger = log.With().Str("module", "scene").Logger()

// shortcutKeys 每帧检查的快捷键
var shortcutKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyEqual, ebiten.KeyNumpadAdd,
	ebiten.KeyMinus, ebiten.KeyNumpadSubtract,
	ebiten.KeyDigit0, ebiten.KeyNumpad0,
	ebiten.KeyDelete,
}

// typeKeys 数字键到工具栏组件类型下标
var typeKeys = map[ebiten.Key]int{
	ebiten.KeyDigit1: 0,
	ebiten.KeyDigit2: 1,
	ebiten.KeyDigit3: 2,
	ebiten.KeyDigit4: 3,
	ebiten.KeyDigit5: 4,
}

// toolButton 工具栏按钮与组件类型的对应关系
type toolButton struct {
	componentType types.ComponentType
	entity        ecs.EntityID
}

// EditorScene 布局编辑器场景
//
// 画布位于顶部工具栏下方，右下角是缩放按钮，左下角是行列设置面板。
// 指针事件先经过 UI 元素过滤，落在按钮或面板上的按下和滚轮事件不会进入画布。
type EditorScene struct {
	session  *game.EditorSession
	settings *game.SettingsManager
	styles   *config.StyleTable

	// UI 实体使用独立的 EntityManager，不占用组件ID
	uiManager          *ecs.EntityManager
	buttonSystem       *systems.ButtonSystem
	buttonRenderSystem *systems.ButtonRenderSystem
	renderSystem       *systems.RenderSystem

	tracker *utils.PointerTracker
	panel   *modules.DimensionPanel

	toolButtons []toolButton
	clearButton ecs.EntityID
	resetButton ecs.EntityID

	zoomInButton    ecs.EntityID
	zoomResetButton ecs.EntityID
	zoomOutButton   ecs.EntityID

	rowsMinusButton ecs.EntityID
	rowsPlusButton  ecs.EntityID
	colsMinusButton ecs.EntityID
	colsPlusButton  ecs.EntityID
	dimResetButton  ecs.EntityID

	width, height int
	layout        sceneLayout

	// 主键状态（用于按钮点击边沿检测）
	primaryWasPressed bool
	pressStartedOnUI  bool

	// 最近一帧的指针位置（HUD 显示）
	pointerX, pointerY float64
}

// NewEditorScene 创建编辑器场景
//
// 参数：
//   - session: 编辑会话
//   - settings: 偏好设置（选中类型和行列数变化时同步写入）
//   - styles: 组件样式表
func NewEditorScene(session *game.EditorSession, settings *game.SettingsManager, styles *config.StyleTable) *EditorScene {
	s := &EditorScene{
		session:      session,
		settings:     settings,
		styles:       styles,
		uiManager:    ecs.NewEntityManager(),
		renderSystem: systems.NewRenderSystem(systems.NewFrameBuilder(styles)),
		tracker:      utils.NewPointerTracker(),
	}
	s.buttonSystem = systems.NewButtonSystem(s.uiManager)
	s.buttonRenderSystem = systems.NewButtonRenderSystem(s.uiManager)

	rows, cols := session.Grid().Dimensions()
	s.panel = modules.NewDimensionPanel(rows, cols,
		func(n int) {
			session.SetRows(n)
			s.rememberDimensions()
		},
		func(n int) {
			session.SetCols(n)
			s.rememberDimensions()
		},
		func() {
			session.ResetDimensions()
			s.rememberDimensions()
		},
	)

	s.createButtons()
	s.Resize(config.EditorWindowWidth, config.EditorWindowHeight)

	sceneLog.Info().Int("rows", rows).Int("cols", cols).Msg("editor scene created")
	return s
}

// Session 返回编辑会话
func (s *EditorScene) Session() *game.EditorSession {
	return s.session
}

// Panel 返回行列设置面板
func (s *EditorScene) Panel() *modules.DimensionPanel {
	return s.panel
}

// Resize 实现 game.Resizable：重新布局 UI 并更新画布尺寸
func (s *EditorScene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width = width
	s.height = height
	s.layout = computeLayout(width, height, len(s.toolButtons))
	s.applyLayout()

	canvas := s.layout.canvas
	s.session.SetCanvasSize(canvas.Width, canvas.Height)
	sceneLog.Debug().Int("width", width).Int("height", height).Msg("editor resized")
}

// Update 处理一帧的输入
func (s *EditorScene) Update(deltaTime float64) {
	s.handlePointer(utils.SamplePointer())
	s.handleKeyboard()
	s.refreshButtons()
}

// handlePointer 把指针状态分发给 UI 元素和画布
func (s *EditorScene) handlePointer(snap utils.PointerSnapshot) {
	s.pointerX, s.pointerY = snap.X, snap.Y

	pressed := snap.IsPressed(types.ButtonPrimary)
	justPressed := pressed && !s.primaryWasPressed
	justReleased := !pressed && s.primaryWasPressed
	s.primaryWasPressed = pressed

	overUI := s.overUI(snap.X, snap.Y)
	if justPressed {
		s.pressStartedOnUI = overUI
		s.focusPanelAt(snap.X, snap.Y)
	}

	// 从画布开始的拖拽在按钮上释放时不触发按钮
	buttonRelease := justReleased && s.pressStartedOnUI
	s.buttonSystem.Update(snap.X, snap.Y, pressed && s.pressStartedOnUI, buttonRelease)

	s.dispatch(s.tracker.Update(snap, s.layout.canvas), overUI)
}

// dispatch 把画布事件交给会话，UI 上方的按下和滚轮被丢弃
func (s *EditorScene) dispatch(events []types.PointerEvent, overUI bool) {
	for _, ev := range events {
		if overUI && (ev.Kind == types.PointerPress || ev.Kind == types.PointerWheel) {
			continue
		}
		outcome := s.session.HandlePointer(ev)
		if outcome != systems.OutcomeNone {
			sceneLog.Debug().Str("event", ev.Kind.String()).Str("outcome", outcome.String()).Msg("pointer handled")
		}
	}
}

// overUI 检查屏幕坐标是否落在浮动 UI 元素上
func (s *EditorScene) overUI(x, y float64) bool {
	if s.layout.toolbar.Contains(x, y) || s.layout.dimensionPanel.Contains(x, y) {
		return true
	}
	return s.buttonSystem.HitTest(x, y)
}

// focusPanelAt 主键按下时更新输入框焦点
func (s *EditorScene) focusPanelAt(x, y float64) {
	switch {
	case s.layout.rowsField.Contains(x, y):
		s.panel.FocusField(s.panel.Rows)
	case s.layout.colsField.Contains(x, y):
		s.panel.FocusField(s.panel.Cols)
	default:
		s.panel.BlurAll()
	}
}

// handleKeyboard 处理输入框编辑和快捷键
func (s *EditorScene) handleKeyboard() {
	if field := s.panel.Focused(); field != nil {
		if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
			field.InsertText(string(chars))
		}
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
			field.Backspace()
		case inpututil.IsKeyJustPressed(ebiten.KeyTab):
			if field == s.panel.Rows {
				s.panel.FocusField(s.panel.Cols)
			} else {
				s.panel.FocusField(s.panel.Rows)
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			s.panel.BlurAll()
		}
		return
	}

	for _, key := range shortcutKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.HandleShortcut(key)
		}
	}
}

// HandleShortcut 执行快捷键对应的命令
// 返回 false 表示该键没有绑定命令
func (s *EditorScene) HandleShortcut(key ebiten.Key) bool {
	if i, ok := typeKeys[key]; ok {
		all := types.AllComponentTypes()
		if i >= len(all) {
			return false
		}
		s.selectType(all[i])
		return true
	}

	switch key {
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		s.session.View().ZoomIn()
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		s.session.View().ZoomOut()
	case ebiten.KeyDigit0, ebiten.KeyNumpad0:
		s.session.View().ResetZoom()
	case ebiten.KeyDelete:
		s.session.ClearGridOnly()
	default:
		return false
	}
	return true
}

func (s *EditorScene) selectType(ct types.ComponentType) {
	s.session.SelectType(ct)
	if s.settings != nil {
		s.settings.SetSelectedType(ct)
	}
}

func (s *EditorScene) rememberDimensions() {
	if s.settings == nil {
		return
	}
	rows, cols := s.session.Grid().Dimensions()
	s.settings.SetDimensions(rows, cols)
}

// resetAll 工具栏"重置"：清空网格并恢复默认行列
func (s *EditorScene) resetAll() {
	s.session.ResetAll()
	rows, cols := s.session.Grid().Dimensions()
	s.panel.Sync(rows, cols)
	s.rememberDimensions()
}

// refreshButtons 同步按钮的选中和启用状态
func (s *EditorScene) refreshButtons() {
	selected := s.session.Interaction().SelectedType()
	for _, tb := range s.toolButtons {
		if button, ok := ecs.GetComponent[*components.ButtonComponent](s.uiManager, tb.entity); ok {
			button.Active = tb.componentType == selected
		}
	}

	zoom := s.session.View().Zoom()
	s.setEnabled(s.zoomInButton, zoom < config.MaxZoom)
	s.setEnabled(s.zoomOutButton, zoom > config.MinZoom)

	rows, cols := s.session.Grid().Dimensions()
	s.setEnabled(s.rowsMinusButton, rows > config.MinGridDimension)
	s.setEnabled(s.rowsPlusButton, rows < config.MaxGridDimension)
	s.setEnabled(s.colsMinusButton, cols > config.MinGridDimension)
	s.setEnabled(s.colsPlusButton, cols < config.MaxGridDimension)
}

func (s *EditorScene) setEnabled(entity ecs.EntityID, enabled bool) {
	if button, ok := ecs.GetComponent[*components.ButtonComponent](s.uiManager, entity); ok {
		button.Enabled = enabled
	}
}

// SaveOnExit 实现 game.Saveable：退出时保存偏好设置
func (s *EditorScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		sceneLog.Error().Err(err).Msg("failed to save settings on exit")
		return false
	}
	return true
}

func (s *EditorScene) buttonEnabled(entity ecs.EntityID) bool {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.uiManager, entity)
	return ok && button.Enabled
}
