package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/decker502/ceilplan/pkg/embedded"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultStylePath 内置样式表路径
const DefaultStylePath = "data/styles.yaml"

var (
	// ErrMissingStyle 表示样式表没有覆盖全部组件类型
	ErrMissingStyle = errors.New("style table is missing a component type")

	// ErrInvalidColor 表示颜色字符串不是 #RRGGBB / #RRGGBBAA 格式
	ErrInvalidColor = errors.New("invalid color")
)

// ComponentStyle 单个组件类型的显示样式
type ComponentStyle struct {
	Name   string     // 显示名称（工具栏按钮文字）
	Color  color.RGBA // 显示颜色
	Glyph  string     // 图标ID
	Symbol rune       // 单字符符号（格子内和终端端使用）
}

// CanvasPalette 画布和交互叠加层配色
type CanvasPalette struct {
	Background  color.RGBA
	GridFill    color.RGBA
	GridLine    color.RGBA
	Hover       color.RGBA
	Selected    color.RGBA
	DropValid   color.RGBA
	DropInvalid color.RGBA
}

// StyleTable 组件类型到样式的只读查找表
// 加载时校验完整性，之后在整个会话中不可变
type StyleTable struct {
	components map[types.ComponentType]ComponentStyle
	canvas     CanvasPalette
}

// styleFile YAML 文件结构
type styleFile struct {
	Components map[string]struct {
		Name   string `yaml:"name"`
		Color  string `yaml:"color"`
		Glyph  string `yaml:"glyph"`
		Symbol string `yaml:"symbol"`
	} `yaml:"components"`
	Canvas struct {
		Background  string `yaml:"background"`
		GridFill    string `yaml:"gridFill"`
		GridLine    string `yaml:"gridLine"`
		Hover       string `yaml:"hover"`
		Selected    string `yaml:"selected"`
		DropValid   string `yaml:"dropValid"`
		DropInvalid string `yaml:"dropInvalid"`
	} `yaml:"canvas"`
}

// defaultCanvasPalette 样式文件未配置画布颜色时使用的默认值
func defaultCanvasPalette() CanvasPalette {
	return CanvasPalette{
		Background:  color.RGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
		GridFill:    color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
		GridLine:    color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 0xFF},
		Hover:       color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF},
		Selected:    color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
		DropValid:   color.RGBA{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF},
		DropInvalid: color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
	}
}

// ParseStyleTable 从 YAML 数据解析样式表
//
// 参数：
//   - data: YAML 内容
//
// 返回：
//   - *StyleTable: 解析并校验后的样式表
//   - error: YAML 格式错误、未知组件类型、颜色非法或缺少组件类型时返回错误
func ParseStyleTable(data []byte) (*StyleTable, error) {
	var file styleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse style YAML: %w", err)
	}

	table := &StyleTable{
		components: make(map[types.ComponentType]ComponentStyle, len(file.Components)),
		canvas:     defaultCanvasPalette(),
	}

	for key, entry := range file.Components {
		ct, err := types.ParseComponentType(key)
		if err != nil {
			return nil, fmt.Errorf("invalid style entry: %w", err)
		}

		clr, err := ParseHexColor(entry.Color)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", key, err)
		}

		name := entry.Name
		if name == "" {
			name = key
		}

		symbol, _ := utf8.DecodeRuneInString(entry.Symbol)
		if symbol == utf8.RuneError {
			symbol, _ = utf8.DecodeRuneInString(strings.ToUpper(key))
		}

		table.components[ct] = ComponentStyle{
			Name:   name,
			Color:  clr,
			Glyph:  entry.Glyph,
			Symbol: symbol,
		}
	}

	// 查找表必须是全函数
	for _, ct := range types.AllComponentTypes() {
		if _, ok := table.components[ct]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingStyle, ct)
		}
	}

	palette := []struct {
		value  string
		target *color.RGBA
	}{
		{file.Canvas.Background, &table.canvas.Background},
		{file.Canvas.GridFill, &table.canvas.GridFill},
		{file.Canvas.GridLine, &table.canvas.GridLine},
		{file.Canvas.Hover, &table.canvas.Hover},
		{file.Canvas.Selected, &table.canvas.Selected},
		{file.Canvas.DropValid, &table.canvas.DropValid},
		{file.Canvas.DropInvalid, &table.canvas.DropInvalid},
	}
	for _, p := range palette {
		if p.value == "" {
			continue
		}
		clr, err := ParseHexColor(p.value)
		if err != nil {
			return nil, fmt.Errorf("canvas palette: %w", err)
		}
		*p.target = clr
	}

	return table, nil
}

// LoadStyleTable 加载样式表
//
// 参数：
//   - path: 样式文件路径；为空时使用内置样式表
//
// 返回：
//   - *StyleTable: 样式表
//   - error: 读取或解析失败时返回错误
func LoadStyleTable(path string) (*StyleTable, error) {
	var (
		data []byte
		err  error
	)

	if path == "" {
		data, err = embedded.ReadFile(DefaultStylePath)
		path = DefaultStylePath
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read style file %s: %w", path, err)
	}

	table, err := ParseStyleTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid style file %s: %w", path, err)
	}

	log.Info().Str("module", "config").Str("path", path).Int("styles", len(table.components)).Msg("style table loaded")
	return table, nil
}

// Lookup 返回组件类型对应的样式
// 样式表在加载时已校验完整性，因此对所有合法类型都返回有效样式
func (t *StyleTable) Lookup(ct types.ComponentType) ComponentStyle {
	return t.components[ct]
}

// Canvas 返回画布配色
func (t *StyleTable) Canvas() CanvasPalette {
	return t.canvas
}

// ParseHexColor 解析 #RRGGBB 或 #RRGGBBAA 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WithAlpha 返回替换了透明度的颜色（预乘 alpha）
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
