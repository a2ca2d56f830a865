package modules

import "testing"

type commitRecorder struct {
	values []int
}

func (r *commitRecorder) record(n int) {
	r.values = append(r.values, n)
}

func (r *commitRecorder) last() (int, bool) {
	if len(r.values) == 0 {
		return 0, false
	}
	return r.values[len(r.values)-1], true
}

// TestDimensionField_Typing 输入过程中只提交范围内的值
func TestDimensionField_Typing(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantText   string
		wantCommit []int
	}{
		{"超出上限不提交", "25", "1025", nil},
		{"非数字被忽略", "a5b", "105", []int{105}},
		{"正好到达上限", "00", "1000", []int{1000}},
		{"超过四位被截断", "99999", "1099", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &commitRecorder{}
			f := NewDimensionField("Rows", 10, rec.record)
			f.Focus()
			f.InsertText(tt.input)

			if f.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", f.Text, tt.wantText)
			}
			if len(rec.values) != len(tt.wantCommit) {
				t.Fatalf("commits = %v, want %v", rec.values, tt.wantCommit)
			}
			for i := range rec.values {
				if rec.values[i] != tt.wantCommit[i] {
					t.Errorf("commits = %v, want %v", rec.values, tt.wantCommit)
				}
			}
		})
	}
}

// TestDimensionField_TypeFromEmpty 清空后重新输入
func TestDimensionField_TypeFromEmpty(t *testing.T) {
	rec := &commitRecorder{}
	f := NewDimensionField("Cols", 10, rec.record)
	f.Focus()
	f.Backspace()
	if v, ok := rec.last(); !ok || v != 1 {
		t.Fatalf("deleting to %q should commit 1, got %v", f.Text, rec.values)
	}
	f.Backspace()
	if f.Text != "" || len(rec.values) != 1 {
		t.Fatalf("after clearing: Text=%q commits=%v", f.Text, rec.values)
	}

	f.InsertText("0")
	if len(rec.values) != 1 {
		t.Errorf("typing 0 should not commit, got %v", rec.values[1:])
	}
	f.Backspace()
	f.InsertText("7")
	if v, ok := rec.last(); !ok || v != 7 || f.Value != 7 {
		t.Errorf("commit = %v, Value = %d, want 7", rec.values, f.Value)
	}
}

// TestDimensionField_Blur 失去焦点时钳制到边界
func TestDimensionField_Blur(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  int
		wantT string
	}{
		{"超出上限", "1500", 1000, "1000"},
		{"零", "0", 1, "1"},
		{"空文本", "", 1, "1"},
		{"非数字", "abc", 1, "1"},
		{"范围内", "42", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &commitRecorder{}
			f := NewDimensionField("Rows", 10, rec.record)
			f.Focus()
			f.Text = tt.text
			f.Blur()

			if f.Value != tt.want || f.Text != tt.wantT {
				t.Errorf("Value=%d Text=%q, want %d %q", f.Value, f.Text, tt.want, tt.wantT)
			}
			if v, ok := rec.last(); !ok || v != tt.want {
				t.Errorf("last commit = %v, want %d", rec.values, tt.want)
			}
			if f.Focused {
				t.Error("field should lose focus")
			}
		})
	}
}

// TestDimensionField_BlurSameValue 值未变化时不重复提交
func TestDimensionField_BlurSameValue(t *testing.T) {
	rec := &commitRecorder{}
	f := NewDimensionField("Rows", 10, rec.record)
	f.Focus()
	f.Blur()
	if len(rec.values) != 0 {
		t.Errorf("commits = %v, want none", rec.values)
	}

	// 未获得焦点时 Blur 是无操作
	f.Text = "abc"
	f.Blur()
	if f.Value != 10 {
		t.Errorf("Value = %d, want 10", f.Value)
	}
}

// TestDimensionField_Step 步进按钮在边界处停止
func TestDimensionField_Step(t *testing.T) {
	rec := &commitRecorder{}
	f := NewDimensionField("Rows", 999, rec.record)

	f.Increment()
	f.Increment()
	if f.Value != 1000 || len(rec.values) != 1 {
		t.Errorf("Value=%d commits=%v, want 1000 once", f.Value, rec.values)
	}

	g := NewDimensionField("Cols", 2, rec.record)
	g.Decrement()
	g.Decrement()
	if g.Value != 1 || g.Text != "1" {
		t.Errorf("Value=%d Text=%q, want 1", g.Value, g.Text)
	}
}

// TestNewDimensionField_ClampsInitial 初始值被钳制
func TestNewDimensionField_ClampsInitial(t *testing.T) {
	if f := NewDimensionField("Rows", 5000, nil); f.Value != 1000 {
		t.Errorf("Value = %d, want 1000", f.Value)
	}
	if f := NewDimensionField("Rows", -3, nil); f.Value != 1 {
		t.Errorf("Value = %d, want 1", f.Value)
	}
}

// TestDimensionPanel 焦点切换和恢复默认
func TestDimensionPanel(t *testing.T) {
	rows := &commitRecorder{}
	cols := &commitRecorder{}
	resets := 0
	p := NewDimensionPanel(20, 30, rows.record, cols.record, func() { resets++ })

	p.FocusField(p.Rows)
	if p.Focused() != p.Rows {
		t.Fatal("Rows should be focused")
	}
	p.Rows.Text = "2000"

	// 切换焦点时前一个输入框被钳制提交
	p.FocusField(p.Cols)
	if p.Rows.Value != 1000 || p.Focused() != p.Cols {
		t.Errorf("Rows.Value=%d focused=%v", p.Rows.Value, p.Focused())
	}
	if v, _ := rows.last(); v != 1000 {
		t.Errorf("rows commits = %v", rows.values)
	}

	p.ResetDefaults()
	if p.Rows.Value != 10 || p.Cols.Value != 10 || resets != 1 {
		t.Errorf("after reset: rows=%d cols=%d resets=%d", p.Rows.Value, p.Cols.Value, resets)
	}
	if p.Focused() != nil {
		t.Error("no field should be focused after reset")
	}
	if len(cols.values) != 0 {
		t.Errorf("reset should not fire onCols, got %v", cols.values)
	}

	p.Sync(7, 8)
	if p.Rows.Text != "7" || p.Cols.Text != "8" {
		t.Errorf("Sync: rows=%q cols=%q", p.Rows.Text, p.Cols.Text)
	}
}
