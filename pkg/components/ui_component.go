package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the mouse cursor is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being clicked.
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// UIComponent marks an entity as a UI element drawn above the canvas.
// UI 实体会拦截落在其范围内的画布按下和滚轮事件。
type UIComponent struct {
	State UIState
}

// PositionComponent UI 元素左上角的屏幕坐标
type PositionComponent struct {
	X, Y float64
}
