package config

// 布局配置常量
// 本文件定义了编辑器的网格、视图和窗口布局参数
//
// 坐标系统：
//   - 世界坐标：以网格中心为原点，不受缩放/平移影响，用于点击检测计算
//   - 屏幕坐标：相对于画布左上角的像素坐标

// Grid Configuration (网格配置)
const (
	// CellSizeMeters 是每个格子对应的物理尺寸（米）
	CellSizeMeters = 0.6

	// PixelsPerMeter 是物理尺寸到世界坐标的换算比例
	PixelsPerMeter = 100.0

	// CellSize 是每个格子在世界坐标中的边长
	// 缩放只影响渲染，不改变逻辑格子尺寸
	CellSize = CellSizeMeters * PixelsPerMeter // 60.0

	// MinGridDimension 是行数/列数的下限
	MinGridDimension = 1

	// MaxGridDimension 是行数/列数的上限
	MaxGridDimension = 1000

	// DefaultGridRows 是默认行数（"重置行列"恢复到此值）
	DefaultGridRows = 10

	// DefaultGridCols 是默认列数
	DefaultGridCols = 10
)

// View Configuration (视图配置)
const (
	// MinZoom 是缩放下限
	MinZoom = 0.1

	// MaxZoom 是缩放上限
	MaxZoom = 5.0

	// DefaultZoom 是清空/调整网格尺寸后的缩放值
	DefaultZoom = 1.0

	// WheelZoomInFactor 是滚轮向上滚动一格的缩放倍率
	WheelZoomInFactor = 1.1

	// WheelZoomOutFactor 是滚轮向下滚动一格的缩放倍率
	WheelZoomOutFactor = 0.9

	// ButtonZoomStep 是缩放按钮每次的缩放倍率（放大乘、缩小除）
	ButtonZoomStep = 1.2
)

// Interaction Configuration (交互配置)
const (
	// DragThreshold 是按下后判定为拖拽的最小指针位移（屏幕像素）
	// 位移不足此值的按下-释放视为一次点击
	DragThreshold = 4.0
)

// AppName 偏好设置的存储目录名（桌面端和终端端共用）
const AppName = "ceilplan"

// Window Configuration (窗口配置)
const (
	// EditorWindowWidth 是默认窗口宽度
	EditorWindowWidth = 1280

	// EditorWindowHeight 是默认窗口高度
	EditorWindowHeight = 800

	// ToolbarHeight 是顶部工具栏高度，画布位于工具栏下方
	ToolbarHeight = 56

	// ToolbarButtonWidth 是工具栏组件按钮宽度
	ToolbarButtonWidth = 124

	// ToolbarButtonHeight 是工具栏按钮高度
	ToolbarButtonHeight = 40

	// ToolbarPadding 是工具栏内边距和按钮间距
	ToolbarPadding = 8

	// ZoomButtonSize 是右下角缩放按钮的边长
	ZoomButtonSize = 36

	// PanelMargin 是浮动面板与画布边缘的距离
	PanelMargin = 16
)

// ClampGridDimension 将行数/列数限制在 [MinGridDimension, MaxGridDimension] 范围内
func ClampGridDimension(n int) int {
	if n < MinGridDimension {
		return MinGridDimension
	}
	if n > MaxGridDimension {
		return MaxGridDimension
	}
	return n
}

// IsValidGridDimension 检查行数/列数是否在允许范围内
func IsValidGridDimension(n int) bool {
	return n >= MinGridDimension && n <= MaxGridDimension
}

// ClampZoom 将缩放值限制在 [MinZoom, MaxZoom] 范围内
// 保证缩放值永远不会为 0 或负数
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
