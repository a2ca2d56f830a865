package utils

import (
	"testing"

	"github.com/decker502/ceilplan/pkg/types"
)

var testCanvas = Rect{X: 0, Y: 56, Width: 800, Height: 600}

func eventKinds(events []types.PointerEvent) []types.PointerEventKind {
	kinds := make([]types.PointerEventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func sameKinds(a, b []types.PointerEventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestPointerTracker_ClickSequence 按下和释放生成局部坐标事件
func TestPointerTracker_ClickSequence(t *testing.T) {
	tr := NewPointerTracker()

	events := tr.Update(PointerSnapshot{X: 100, Y: 156}, testCanvas)
	if !sameKinds(eventKinds(events), []types.PointerEventKind{types.PointerMove}) {
		t.Fatalf("first frame = %v, want [move]", eventKinds(events))
	}
	if events[0].X != 100 || events[0].Y != 100 {
		t.Errorf("local position = (%v, %v), want (100, 100)", events[0].X, events[0].Y)
	}

	// 位置未变时不生成移动事件
	pressed := PointerSnapshot{X: 100, Y: 156}
	pressed.Pressed[0] = true
	events = tr.Update(pressed, testCanvas)
	if !sameKinds(eventKinds(events), []types.PointerEventKind{types.PointerPress}) || events[0].Button != types.ButtonPrimary {
		t.Fatalf("press frame = %+v", events)
	}

	events = tr.Update(PointerSnapshot{X: 110, Y: 160}, testCanvas)
	want := []types.PointerEventKind{types.PointerMove, types.PointerRelease}
	if !sameKinds(eventKinds(events), want) {
		t.Fatalf("release frame = %v, want %v", eventKinds(events), want)
	}
}

// TestPointerTracker_EventOrder 同一帧内的事件顺序固定
func TestPointerTracker_EventOrder(t *testing.T) {
	tr := NewPointerTracker()
	start := PointerSnapshot{X: 10, Y: 70}
	start.Pressed[1] = true
	tr.Update(start, testCanvas)

	cur := PointerSnapshot{X: 20, Y: 80, WheelY: 1}
	cur.Pressed[0] = true
	events := tr.Update(cur, testCanvas)

	want := []types.PointerEventKind{types.PointerMove, types.PointerPress, types.PointerRelease, types.PointerWheel}
	if !sameKinds(eventKinds(events), want) {
		t.Fatalf("events = %v, want %v", eventKinds(events), want)
	}
	if events[2].Button != types.ButtonSecondary {
		t.Errorf("release button = %s, want secondary", events[2].Button)
	}
	if events[3].DeltaY != 1 {
		t.Errorf("wheel DeltaY = %v, want 1", events[3].DeltaY)
	}
}

// TestPointerTracker_Leave 指针离开画布生成离开事件，画布外不生成按下和滚轮
func TestPointerTracker_Leave(t *testing.T) {
	tr := NewPointerTracker()
	held := PointerSnapshot{X: 400, Y: 300}
	held.Pressed[0] = true
	tr.Update(PointerSnapshot{X: 400, Y: 300}, testCanvas)
	tr.Update(held, testCanvas)

	// 移到工具栏上（画布上方）
	outside := PointerSnapshot{X: 400, Y: 20, WheelY: -1}
	outside.Pressed[0] = true
	outside.Pressed[2] = true
	events := tr.Update(outside, testCanvas)
	if !sameKinds(eventKinds(events), []types.PointerEventKind{types.PointerLeave}) {
		t.Fatalf("events = %v, want [leave]", eventKinds(events))
	}
	if tr.Inside() {
		t.Error("Inside() should be false")
	}

	// 在画布外释放仍然生成释放事件
	events = tr.Update(PointerSnapshot{X: 400, Y: 20}, testCanvas)
	want := []types.PointerEventKind{types.PointerRelease, types.PointerRelease}
	if !sameKinds(eventKinds(events), want) {
		t.Fatalf("events = %v, want %v", eventKinds(events), want)
	}
}

// TestPointerTracker_TouchRelease 手指抬起时在最后的触摸位置释放，不受鼠标位置影响
func TestPointerTracker_TouchRelease(t *testing.T) {
	canvas := Rect{X: 0, Y: 56, Width: 600, Height: 600}
	tr := NewPointerTracker()

	down := PointerSnapshot{X: 300, Y: 300, Touch: true}
	down.Pressed[0] = true
	events := tr.Update(down, canvas)
	want := []types.PointerEventKind{types.PointerMove, types.PointerPress}
	if !sameKinds(eventKinds(events), want) {
		t.Fatalf("touch down = %v, want %v", eventKinds(events), want)
	}

	// 抬起后回退到鼠标采样，光标从未移动过，位于 (0, 0)
	events = tr.Update(PointerSnapshot{}, canvas)
	if !sameKinds(eventKinds(events), []types.PointerEventKind{types.PointerRelease}) {
		t.Fatalf("touch up = %v, want [release]", eventKinds(events))
	}
	if events[0].X != 300 || events[0].Y != 244 {
		t.Errorf("release at (%v, %v), want (300, 244)", events[0].X, events[0].Y)
	}
	if !tr.Inside() {
		t.Error("Inside() should stay true at the lifted touch position")
	}

	// 之后的鼠标移动照常处理
	events = tr.Update(PointerSnapshot{X: 10, Y: 20}, canvas)
	if !sameKinds(eventKinds(events), []types.PointerEventKind{types.PointerLeave}) {
		t.Fatalf("mouse move = %v, want [leave]", eventKinds(events))
	}
}

// TestPointerSnapshot_IsPressed 测试按键查询
func TestPointerSnapshot_IsPressed(t *testing.T) {
	s := PointerSnapshot{}
	s.Pressed[2] = true
	if !s.IsPressed(types.ButtonAuxiliary) || s.IsPressed(types.ButtonPrimary) || s.IsPressed(types.ButtonNone) {
		t.Errorf("IsPressed mismatch for %+v", s)
	}
}

// TestRectContains 右边和下边不属于矩形
func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"左上角", 10, 10, true},
		{"内部", 50, 30, true},
		{"右边缘", 110, 30, false},
		{"下边缘", 50, 60, false},
		{"左侧外部", 9.9, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
