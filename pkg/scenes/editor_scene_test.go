package scenes

import (
	"testing"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// newTestScene 600x600 窗口：画布 600x544，10x10 网格铺满画布宽度
func newTestScene(t *testing.T) *EditorScene {
	t.Helper()
	styles, err := config.LoadStyleTable("")
	if err != nil {
		t.Fatalf("LoadStyleTable() error: %v", err)
	}
	scene := NewEditorScene(game.NewEditorSession(10, 10), game.NewSettingsManager(nil), styles)
	scene.Resize(600, 600)
	return scene
}

// pointer 模拟一帧主键状态
func pointer(s *EditorScene, x, y float64, pressed bool) {
	snap := utils.PointerSnapshot{X: x, Y: y}
	snap.Pressed[0] = pressed
	s.handlePointer(snap)
}

func click(s *EditorScene, x, y float64) {
	pointer(s, x, y, false)
	pointer(s, x, y, true)
	pointer(s, x, y, false)
}

// TestEditorScene_Layout 测试画布位于工具栏下方
func TestEditorScene_Layout(t *testing.T) {
	s := newTestScene(t)

	canvas := s.layout.canvas
	if canvas.Y != config.ToolbarHeight || canvas.Width != 600 || canvas.Height != 544 {
		t.Errorf("canvas = %+v", canvas)
	}
	w, h := s.Session().Interaction().CanvasSize()
	if w != 600 || h != 544 {
		t.Errorf("CanvasSize() = (%v, %v), want (600, 544)", w, h)
	}

	s.Resize(0, 0)
	if w, _ := s.Session().Interaction().CanvasSize(); w != 600 {
		t.Error("Resize(0, 0) should be ignored")
	}
}

// TestEditorScene_ClickPlaces 画布上的点击放置选中类型
func TestEditorScene_ClickPlaces(t *testing.T) {
	s := newTestScene(t)

	// 屏幕 (40, 200) → 画布 (40, 144) → 格子 (2, 0)
	click(s, 40, 200)

	cell, _ := s.Session().Grid().Cell(2, 0)
	if !cell.IsOccupied() || cell.Type != types.ComponentLight {
		t.Errorf("Cell(2, 0) = %+v, want light", cell)
	}
}

// TestEditorScene_UIBlocksCanvas 面板和按钮上的按下不会进入画布
func TestEditorScene_UIBlocksCanvas(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"行列面板空白处", 40, 470},
		{"放大按钮", 566, 478},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			click(s, tt.x, tt.y)
			if n := s.Session().Grid().OccupiedCount(); n != 0 {
				t.Errorf("OccupiedCount() = %d, want 0", n)
			}
		})
	}
}

// TestEditorScene_ZoomButton 点击放大按钮
func TestEditorScene_ZoomButton(t *testing.T) {
	s := newTestScene(t)

	click(s, 566, 478)

	if got := s.Session().View().Zoom(); got < 1.19 || got > 1.21 {
		t.Errorf("Zoom() = %v, want 1.2", got)
	}
}

// TestEditorScene_DragOntoButtonDoesNotClick 从画布拖到按钮上释放不触发按钮
func TestEditorScene_DragOntoButtonDoesNotClick(t *testing.T) {
	s := newTestScene(t)

	pointer(s, 300, 300, false)
	pointer(s, 300, 300, true)
	pointer(s, 566, 478, true)
	pointer(s, 566, 478, false)

	if s.Session().View().Zoom() != 1 {
		t.Errorf("Zoom() = %v, want 1", s.Session().View().Zoom())
	}
}

// TestEditorScene_DimensionField 点击输入框获得焦点，点击别处提交
func TestEditorScene_DimensionField(t *testing.T) {
	s := newTestScene(t)
	field := s.layout.rowsField

	click(s, field.X+field.Width/2, field.Y+field.Height/2)
	if !s.Panel().Rows.Focused {
		t.Fatal("rows field should be focused")
	}

	s.Panel().Rows.Backspace()
	s.Panel().Rows.InsertText("5")
	click(s, 300, 300)

	if s.Panel().Rows.Focused {
		t.Error("rows field should lose focus")
	}
	rows, _ := s.Session().Grid().Dimensions()
	if rows != 15 {
		t.Errorf("rows = %d, want 15", rows)
	}
}

// TestEditorScene_Shortcuts 测试快捷键
func TestEditorScene_Shortcuts(t *testing.T) {
	s := newTestScene(t)
	all := types.AllComponentTypes()

	if !s.HandleShortcut(ebiten.KeyDigit3) {
		t.Fatal("KeyDigit3 should be bound")
	}
	if got := s.Session().Interaction().SelectedType(); got != all[2] {
		t.Errorf("SelectedType() = %v, want %v", got, all[2])
	}

	s.HandleShortcut(ebiten.KeyEqual)
	s.HandleShortcut(ebiten.KeyEqual)
	s.HandleShortcut(ebiten.KeyDigit0)
	if s.Session().View().Zoom() != 1 {
		t.Errorf("Zoom() after reset = %v, want 1", s.Session().View().Zoom())
	}

	s.Session().Grid().Place(1, 1, types.ComponentAirSupply)
	s.HandleShortcut(ebiten.KeyDelete)
	if s.Session().Grid().OccupiedCount() != 0 {
		t.Error("Delete should clear the grid")
	}

	if s.HandleShortcut(ebiten.KeyQ) {
		t.Error("KeyQ should not be bound")
	}
}

// TestEditorScene_ButtonStates 行列到达上下限时步进按钮被禁用
func TestEditorScene_ButtonStates(t *testing.T) {
	s := newTestScene(t)
	s.Session().Resize(1, 1000)
	s.refreshButtons()

	tests := []struct {
		name    string
		enabled bool
		button  func() bool
	}{
		{"行数减", false, func() bool { return s.buttonEnabled(s.rowsMinusButton) }},
		{"行数加", true, func() bool { return s.buttonEnabled(s.rowsPlusButton) }},
		{"列数减", true, func() bool { return s.buttonEnabled(s.colsMinusButton) }},
		{"列数加", false, func() bool { return s.buttonEnabled(s.colsPlusButton) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.button(); got != tt.enabled {
				t.Errorf("Enabled = %v, want %v", got, tt.enabled)
			}
		})
	}
}

// TestEditorScene_HUD 状态栏文字
func TestEditorScene_HUD(t *testing.T) {
	s := newTestScene(t)
	click(s, 40, 200)

	got := s.hudText()
	want := "row 3, col 1 | 10x10 | zoom 100% | 1 placed, 0 invalid (Light 1)"
	if got != want {
		t.Errorf("hudText() = %q, want %q", got, want)
	}
}
