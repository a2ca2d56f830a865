package utils

import "math"

// 网格坐标转换工具
//
// 渲染时的变换顺序：平移到画布中心 → 按 zoom 缩放 → 按 pan 平移
//
//	screenX = (worldX + panX) * zoom + canvasWidth/2
//
// ScreenToWorld 是它的精确逆变换。网格在世界坐标中以原点为中心，
// 占据 [-totalWidth/2, totalWidth/2] × [-totalHeight/2, totalHeight/2]。

// ScreenToWorld 将画布局部屏幕坐标转换为世界坐标
//
// 参数:
//   - screenX, screenY: 画布局部屏幕坐标（原点在左上角）
//   - canvasWidth, canvasHeight: 画布尺寸
//   - zoom: 缩放值（调用方保证已钳制到 [MinZoom, MaxZoom]）
//   - panX, panY: 平移量（世界坐标单位）
//
// 返回:
//   - worldX, worldY: 世界坐标
func ScreenToWorld(screenX, screenY, canvasWidth, canvasHeight, zoom, panX, panY float64) (worldX, worldY float64) {
	worldX = (screenX-canvasWidth/2)/zoom - panX
	worldY = (screenY-canvasHeight/2)/zoom - panY
	return worldX, worldY
}

// WorldToScreen 将世界坐标转换为画布局部屏幕坐标（ScreenToWorld 的逆变换）
func WorldToScreen(worldX, worldY, canvasWidth, canvasHeight, zoom, panX, panY float64) (screenX, screenY float64) {
	screenX = (worldX+panX)*zoom + canvasWidth/2
	screenY = (worldY+panY)*zoom + canvasHeight/2
	return screenX, screenY
}

// GridExtent 返回网格在世界坐标中的总宽高
func GridExtent(rows, cols int, cellSize float64) (totalWidth, totalHeight float64) {
	return float64(cols) * cellSize, float64(rows) * cellSize
}

// WorldToCell 将世界坐标转换为网格坐标
//
// 参数:
//   - worldX, worldY: 世界坐标
//   - rows, cols: 网格行列数
//   - cellSize: 格子边长（世界坐标单位）
//
// 返回:
//   - row, col: 行列索引
//   - ok: 是否落在网格内；rows 或 cols 为 0 时总是 false
func WorldToCell(worldX, worldY float64, rows, cols int, cellSize float64) (row, col int, ok bool) {
	if rows <= 0 || cols <= 0 || cellSize <= 0 {
		return 0, 0, false
	}

	totalWidth, totalHeight := GridExtent(rows, cols, cellSize)
	startX := -totalWidth / 2
	startY := -totalHeight / 2

	// 检查是否在网格范围内
	if worldX < startX || worldX > startX+totalWidth || worldY < startY || worldY > startY+totalHeight {
		return 0, 0, false
	}

	col = int(math.Floor((worldX - startX) / cellSize))
	row = int(math.Floor((worldY - startY) / cellSize))

	// 边界检查（防止浮点数计算误差导致的越界，网格右/下边缘本身也会落到这里）
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return 0, 0, false
	}

	return row, col, true
}

// CellOrigin 返回格子左上角的世界坐标
func CellOrigin(row, col, rows, cols int, cellSize float64) (worldX, worldY float64) {
	totalWidth, totalHeight := GridExtent(rows, cols, cellSize)
	worldX = -totalWidth/2 + float64(col)*cellSize
	worldY = -totalHeight/2 + float64(row)*cellSize
	return worldX, worldY
}

// CellCenter 返回格子中心的世界坐标
func CellCenter(row, col, rows, cols int, cellSize float64) (worldX, worldY float64) {
	x, y := CellOrigin(row, col, rows, cols, cellSize)
	return x + cellSize/2, y + cellSize/2
}

// Viewport 描述画布尺寸和当前视图变换
type Viewport struct {
	CanvasWidth, CanvasHeight float64
	Zoom                      float64
	PanX, PanY                float64
}

// ScreenToWorld 使用视口参数执行屏幕→世界坐标转换
func (v Viewport) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	return ScreenToWorld(screenX, screenY, v.CanvasWidth, v.CanvasHeight, v.Zoom, v.PanX, v.PanY)
}

// WorldToScreen 使用视口参数执行世界→屏幕坐标转换
func (v Viewport) WorldToScreen(worldX, worldY float64) (float64, float64) {
	return WorldToScreen(worldX, worldY, v.CanvasWidth, v.CanvasHeight, v.Zoom, v.PanX, v.PanY)
}

// VisibleWorldRect 返回画布可见区域在世界坐标中的范围
func (v Viewport) VisibleWorldRect() (minX, minY, maxX, maxY float64) {
	minX, minY = v.ScreenToWorld(0, 0)
	maxX, maxY = v.ScreenToWorld(v.CanvasWidth, v.CanvasHeight)
	return minX, minY, maxX, maxY
}

// HitTest 返回屏幕坐标指向的格子
//
// 悬停反馈和拖放落点都必须通过此函数解析坐标，
// 保证高亮显示的格子就是释放时实际被修改的格子。
//
// 返回:
//   - row, col: 行列索引
//   - ok: false 表示指针不在任何格子上（正常结果，调用方视为无操作）
func HitTest(screenX, screenY float64, vp Viewport, rows, cols int, cellSize float64) (row, col int, ok bool) {
	worldX, worldY := vp.ScreenToWorld(screenX, screenY)
	return WorldToCell(worldX, worldY, rows, cols, cellSize)
}
