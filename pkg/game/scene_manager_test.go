package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// resizableScene 记录 Resize 调用并实现 Saveable
type resizableScene struct {
	MockScene
	width, height int
	resizes       int
	saved         bool
}

func (r *resizableScene) Resize(width, height int) {
	r.width, r.height = width, height
	r.resizes++
}

func (r *resizableScene) SaveOnExit() bool {
	r.saved = true
	return true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle a nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Resize(800, 600)
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit() without a scene should succeed")
	}
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerResize 尺寸变化时通知场景，切换场景时补发一次
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	first := &resizableScene{}
	sm.SwitchTo(first)

	sm.Resize(1280, 800)
	sm.Resize(1280, 800)
	if first.resizes != 1 || first.width != 1280 || first.height != 800 {
		t.Errorf("first scene: resizes=%d size=%dx%d", first.resizes, first.width, first.height)
	}

	second := &resizableScene{}
	sm.SwitchTo(second)
	if second.resizes != 1 || second.width != 1280 {
		t.Errorf("second scene should receive the current size on switch, got resizes=%d", second.resizes)
	}

	if !sm.SaveOnExit() || !second.saved {
		t.Error("SaveOnExit() should reach the current scene")
	}
}
