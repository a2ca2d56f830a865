package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/decker502/ceilplan/pkg/config"
)

// 3x3 网格、300x300 画布：格子 (r, c) 的屏幕范围是 [60+60c, 120+60c)
const sessionScript = `{
  "rows": 3, "cols": 3,
  "canvasWidth": 300, "canvasHeight": 300,
  "selected": "light",
  "events": [
    {"kind": "press", "button": "primary", "x": 150, "y": 150},
    {"kind": "release", "button": "primary", "x": 150, "y": 150},
    {"kind": "select", "type": "invalid"},
    {"kind": "press", "button": "primary", "x": 90, "y": 90},
    {"kind": "release", "button": "primary", "x": 90, "y": 90},
    {"kind": "press", "button": "primary", "x": 150, "y": 150},
    {"kind": "move", "x": 210, "y": 150},
    {"kind": "release", "button": "primary", "x": 210, "y": 150},
    {"kind": "press", "button": "secondary", "x": 150, "y": 150},
    {"kind": "move", "x": 180, "y": 150},
    {"kind": "release", "button": "secondary", "x": 180, "y": 150},
    {"kind": "wheel", "x": 150, "y": 150, "deltaY": -1}
  ]
}`

func loadStyles(t *testing.T) *config.StyleTable {
	t.Helper()
	styles, err := config.LoadStyleTable("")
	if err != nil {
		t.Fatalf("LoadStyleTable() error: %v", err)
	}
	return styles
}

func TestRun(t *testing.T) {
	sc, err := ParseScript([]byte(sessionScript))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	sum, err := Run(sc, loadStyles(t))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantOutcomes := []string{"placed", "placed", "moved"}
	if !reflect.DeepEqual(sum.Outcomes, wantOutcomes) {
		t.Errorf("Outcomes = %v, want %v", sum.Outcomes, wantOutcomes)
	}
	wantGrid := []string{"X..", "..L", "..."}
	if !reflect.DeepEqual(sum.Grid, wantGrid) {
		t.Errorf("Grid = %q, want %q", sum.Grid, wantGrid)
	}
	if sum.Occupied != 1 || sum.Invalid != 1 || sum.ByType["light"] != 1 {
		t.Errorf("stats = occupied %d, invalid %d, byType %v", sum.Occupied, sum.Invalid, sum.ByType)
	}
	if sum.PanX != 30 || sum.PanY != 0 {
		t.Errorf("pan = (%v, %v), want (30, 0)", sum.PanX, sum.PanY)
	}
	if math.Abs(sum.Zoom-1.1) > 1e-9 {
		t.Errorf("Zoom = %v, want 1.1", sum.Zoom)
	}
	if sum.State != "idle" {
		t.Errorf("State = %q, want idle", sum.State)
	}
}

func TestParseScript_Defaults(t *testing.T) {
	sc, err := ParseScript([]byte(`{"events": []}`))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	if sc.Rows != config.DefaultGridRows || sc.Cols != config.DefaultGridCols {
		t.Errorf("dimensions = %dx%d, want defaults", sc.Rows, sc.Cols)
	}
	if sc.Selected != "light" {
		t.Errorf("Selected = %q, want light", sc.Selected)
	}
	if sc.CanvasWidth <= 0 || sc.CanvasHeight <= 0 {
		t.Errorf("canvas = %vx%v, want positive", sc.CanvasWidth, sc.CanvasHeight)
	}
}

func TestRun_Errors(t *testing.T) {
	styles := loadStyles(t)
	tests := []struct {
		name   string
		script string
	}{
		{"未知事件", `{"events": [{"kind": "tap"}]}`},
		{"未知按键", `{"events": [{"kind": "press", "button": "fourth"}]}`},
		{"未知组件类型", `{"events": [{"kind": "select", "type": "sprinkler"}]}`},
		{"未知初始类型", `{"selected": "sprinkler"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScript([]byte(tt.script))
			if err != nil {
				t.Fatalf("ParseScript() error: %v", err)
			}
			if _, err := Run(sc, styles); err == nil {
				t.Error("Run() should fail")
			}
		})
	}

	if _, err := ParseScript([]byte(`{"rows": "ten"}`)); err == nil {
		t.Error("ParseScript() should reject malformed JSON")
	}
}

// TestRunCommand 从文件读取脚本，输出可解码的 JSON 摘要
func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(sessionScript), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(path, "", strings.NewReader(""), &out); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	var sum Summary
	if err := sonic.Unmarshal(out.Bytes(), &sum); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if sum.Rows != 3 || len(sum.Grid) != 3 {
		t.Errorf("summary = %+v", sum)
	}

	// 标准输入
	out.Reset()
	if err := run("", "", strings.NewReader(`{"rows": 2, "cols": 4}`), &out); err != nil {
		t.Fatalf("run(stdin) error: %v", err)
	}
	if !strings.Contains(out.String(), `"....",`) {
		t.Errorf("output = %s", out.String())
	}
}
