package types

import "fmt"

// PointerEventKind 指针事件种类
type PointerEventKind int

const (
	// PointerPress 按键按下
	PointerPress PointerEventKind = iota
	// PointerRelease 按键释放
	PointerRelease
	// PointerMove 指针移动
	PointerMove
	// PointerLeave 指针离开画布
	PointerLeave
	// PointerWheel 滚轮滚动（DeltaY > 0 表示向下滚动，即缩小）
	PointerWheel
)

// String 返回事件种类名称
func (k PointerEventKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	case PointerMove:
		return "move"
	case PointerLeave:
		return "leave"
	case PointerWheel:
		return "wheel"
	default:
		return fmt.Sprintf("PointerEventKind(%d)", int(k))
	}
}

// PointerButton 指针按键
type PointerButton int

const (
	// ButtonNone 无按键（移动、离开、滚轮事件）
	ButtonNone PointerButton = iota
	// ButtonPrimary 主键（左键）
	ButtonPrimary
	// ButtonSecondary 副键（右键）
	ButtonSecondary
	// ButtonAuxiliary 辅助键（中键）
	ButtonAuxiliary
)

// String 返回按键名称
func (b PointerButton) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonAuxiliary:
		return "auxiliary"
	default:
		return fmt.Sprintf("PointerButton(%d)", int(b))
	}
}

// IsPanButton 副键和辅助键用于平移画布
func (b PointerButton) IsPanButton() bool {
	return b == ButtonSecondary || b == ButtonAuxiliary
}

// PointerEvent 宿主事件循环投递给交互状态机的原始指针事件
// X/Y 为画布局部屏幕坐标（原点在左上角）
type PointerEvent struct {
	Kind   PointerEventKind
	Button PointerButton
	X, Y   float64
	DeltaY float64
}

// ParsePointerEventKind 解析事件种类名称（用于回放脚本）
func ParsePointerEventKind(s string) (PointerEventKind, error) {
	for k := PointerPress; k <= PointerWheel; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pointer event kind %q", s)
}

// ParsePointerButton 解析按键名称（用于回放脚本），空字符串视为 ButtonNone
func ParsePointerButton(s string) (PointerButton, error) {
	if s == "" {
		return ButtonNone, nil
	}
	for b := ButtonNone; b <= ButtonAuxiliary; b++ {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown pointer button %q", s)
}
