package modules

import (
	"strconv"
	"strings"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var dimensionLog zerolog.Logger = log.With().Str("module", "dimension").Logger()

// maxDimensionDigits 输入框最多接受的数字位数
const maxDimensionDigits = 4

// DimensionField 行数或列数输入框
//
// 输入规则：
//   - 输入过程中，只有解析结果在 [1, 1000] 内时才提交，超出范围时保留文本但不提交
//   - 失去焦点时把文本钳制到范围边界（非数字视为下限）并提交
//   - +/- 按钮在范围内步进，到达边界后不再变化
//
// 提交通过 onCommit 回调通知网格调整尺寸。
type DimensionField struct {
	Label   string
	Value   int    // 最近一次提交的值
	Text    string // 编辑缓冲区
	Focused bool

	onCommit func(int)
}

// NewDimensionField 创建输入框
// 参数:
//   - label: 显示名称
//   - initial: 初始值（会被钳制）
//   - onCommit: 值提交时的回调，可以为 nil
func NewDimensionField(label string, initial int, onCommit func(int)) *DimensionField {
	initial = config.ClampGridDimension(initial)
	return &DimensionField{
		Label:    label,
		Value:    initial,
		Text:     strconv.Itoa(initial),
		onCommit: onCommit,
	}
}

// Focus 获得焦点
func (f *DimensionField) Focus() {
	f.Focused = true
}

// InsertText 追加输入字符，非数字字符被忽略
func (f *DimensionField) InsertText(s string) {
	if !f.Focused {
		return
	}
	var b strings.Builder
	b.WriteString(f.Text)
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() >= maxDimensionDigits {
			break
		}
		b.WriteRune(r)
	}
	f.Text = b.String()
	f.commitTyped()
}

// Backspace 删除最后一个字符
func (f *DimensionField) Backspace() {
	if !f.Focused || f.Text == "" {
		return
	}
	f.Text = f.Text[:len(f.Text)-1]
	f.commitTyped()
}

// Blur 失去焦点：钳制文本并提交
func (f *DimensionField) Blur() {
	if !f.Focused {
		return
	}
	f.Focused = false

	n, err := strconv.Atoi(strings.TrimSpace(f.Text))
	if err != nil {
		n = config.MinGridDimension
	}
	n = config.ClampGridDimension(n)
	f.Text = strconv.Itoa(n)
	f.commit(n)
}

// Increment 加一（不超过上限）
func (f *DimensionField) Increment() {
	f.step(1)
}

// Decrement 减一（不低于下限）
func (f *DimensionField) Decrement() {
	f.step(-1)
}

// Set 直接设置显示值，不触发提交（用于与网格同步）
func (f *DimensionField) Set(n int) {
	n = config.ClampGridDimension(n)
	f.Value = n
	f.Text = strconv.Itoa(n)
}

func (f *DimensionField) step(delta int) {
	n := config.ClampGridDimension(f.Value + delta)
	f.Text = strconv.Itoa(n)
	f.commit(n)
}

// commitTyped 输入过程中只提交范围内的值
func (f *DimensionField) commitTyped() {
	n, err := strconv.Atoi(f.Text)
	if err != nil || !config.IsValidGridDimension(n) {
		return
	}
	f.commit(n)
}

func (f *DimensionField) commit(n int) {
	if n == f.Value {
		return
	}
	f.Value = n
	dimensionLog.Debug().Str("field", f.Label).Int("value", n).Msg("dimension committed")
	if f.onCommit != nil {
		f.onCommit(n)
	}
}

// DimensionPanel 行列设置面板
type DimensionPanel struct {
	Rows *DimensionField
	Cols *DimensionField

	onReset func()
}

// NewDimensionPanel 创建行列设置面板
// 参数:
//   - rows, cols: 初始行列数
//   - onRows, onCols: 行数/列数提交回调
//   - onReset: 恢复默认行列后的回调（此时不会再单独触发 onRows/onCols）
func NewDimensionPanel(rows, cols int, onRows, onCols func(int), onReset func()) *DimensionPanel {
	return &DimensionPanel{
		Rows:    NewDimensionField("Rows", rows, onRows),
		Cols:    NewDimensionField("Cols", cols, onCols),
		onReset: onReset,
	}
}

// Focused 返回当前获得焦点的输入框
func (p *DimensionPanel) Focused() *DimensionField {
	switch {
	case p.Rows.Focused:
		return p.Rows
	case p.Cols.Focused:
		return p.Cols
	default:
		return nil
	}
}

// FocusField 把焦点切换到指定输入框，先让另一个失去焦点
func (p *DimensionPanel) FocusField(field *DimensionField) {
	for _, f := range []*DimensionField{p.Rows, p.Cols} {
		if f != field {
			f.Blur()
		}
	}
	if field != nil {
		field.Focus()
	}
}

// BlurAll 两个输入框都失去焦点
func (p *DimensionPanel) BlurAll() {
	p.FocusField(nil)
}

// ResetDefaults 恢复默认行列数
func (p *DimensionPanel) ResetDefaults() {
	p.Rows.Focused = false
	p.Cols.Focused = false
	p.Rows.Set(config.DefaultGridRows)
	p.Cols.Set(config.DefaultGridCols)
	dimensionLog.Info().Int("rows", config.DefaultGridRows).Int("cols", config.DefaultGridCols).Msg("dimensions reset to default")
	if p.onReset != nil {
		p.onReset()
	}
}

// Sync 与网格当前尺寸同步显示值
func (p *DimensionPanel) Sync(rows, cols int) {
	p.Rows.Set(rows)
	p.Cols.Set(cols)
}
