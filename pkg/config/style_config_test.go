package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/ceilplan/pkg/types"
)

// TestLoadDefaultStyleTable 内置样式表覆盖所有组件类型
func TestLoadDefaultStyleTable(t *testing.T) {
	table, err := LoadStyleTable("")
	if err != nil {
		t.Fatalf("LoadStyleTable(\"\") error: %v", err)
	}

	want := map[types.ComponentType]struct {
		name  string
		color color.RGBA
		glyph string
	}{
		types.ComponentLight:         {"Light", color.RGBA{0xF5, 0x7C, 0x00, 0xFF}, "lightbulb"},
		types.ComponentAirSupply:     {"Air Supply", color.RGBA{0x21, 0x96, 0xF3, 0xFF}, "arrow_upward"},
		types.ComponentAirReturn:     {"Air Return", color.RGBA{0x4C, 0xAF, 0x50, 0xFF}, "arrow_downward"},
		types.ComponentSmokeDetector: {"Smoke Detector", color.RGBA{0xFF, 0x57, 0x22, 0xFF}, "sensors"},
		types.ComponentInvalid:       {"Invalid Grid", color.RGBA{0x9E, 0x9E, 0x9E, 0xFF}, "block"},
	}

	for ct, w := range want {
		t.Run(ct.String(), func(t *testing.T) {
			got := table.Lookup(ct)
			if got.Name != w.name || got.Color != w.color || got.Glyph != w.glyph {
				t.Errorf("Lookup(%v) = %+v, want name=%q color=%v glyph=%q", ct, got, w.name, w.color, w.glyph)
			}
			if got.Symbol == 0 {
				t.Errorf("Lookup(%v).Symbol should not be zero", ct)
			}
		})
	}
}

// TestParseStyleTableMissingType 缺少组件类型时返回 ErrMissingStyle
func TestParseStyleTableMissingType(t *testing.T) {
	data := []byte(`
components:
  light: {name: Light, color: "#F57C00", glyph: lightbulb}
`)
	_, err := ParseStyleTable(data)
	if !errors.Is(err, ErrMissingStyle) {
		t.Errorf("ParseStyleTable() error = %v, want ErrMissingStyle", err)
	}
}

// TestParseStyleTableErrors 测试各种非法输入
func TestParseStyleTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "YAML格式错误", data: "components: [\n"},
		{name: "未知组件类型", data: "components:\n  sprinkler: {color: \"#000000\"}\n"},
		{name: "颜色非法", data: "components:\n  light: {color: \"orange\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStyleTable([]byte(tt.data)); err == nil {
				t.Error("ParseStyleTable() should fail")
			}
		})
	}
}

// TestLoadStyleTableFromFile 测试从磁盘文件加载覆盖样式
func TestLoadStyleTableFromFile(t *testing.T) {
	data := []byte(`
components:
  light: {name: Lamp, color: "#010203", symbol: "*"}
  airSupply: {color: "#010203"}
  airReturn: {color: "#010203"}
  smokeDetector: {color: "#010203"}
  invalid: {color: "#01020380"}
canvas:
  hover: "#FFFFFF"
`)
	path := filepath.Join(t.TempDir(), "styles.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadStyleTable(path)
	if err != nil {
		t.Fatalf("LoadStyleTable() error: %v", err)
	}

	if got := table.Lookup(types.ComponentLight); got.Name != "Lamp" || got.Symbol != '*' {
		t.Errorf("light style = %+v, want Lamp/*", got)
	}
	if got := table.Lookup(types.ComponentAirSupply).Name; got != "airSupply" {
		t.Errorf("airSupply name = %q, want key as fallback", got)
	}
	if got := table.Lookup(types.ComponentInvalid).Color.A; got != 0x80 {
		t.Errorf("invalid alpha = %#x, want 0x80", got)
	}
	if got := table.Canvas().Hover; got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("canvas hover = %v, want white", got)
	}
	if got := table.Canvas().GridLine; got != defaultCanvasPalette().GridLine {
		t.Errorf("canvas gridLine = %v, want default", got)
	}

	if _, err := LoadStyleTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadStyleTable(missing) should fail")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#F57C00", want: color.RGBA{0xF5, 0x7C, 0x00, 0xFF}},
		{in: "2196f3", want: color.RGBA{0x21, 0x96, 0xF3, 0xFF}},
		{in: "#11223344", want: color.RGBA{0x11, 0x22, 0x33, 0x44}},
		{in: "#123", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseHexColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
}
