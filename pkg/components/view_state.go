package components

// ViewStateComponent 画布视图状态
//
// Zoom ∈ [0.1, 5.0]，清空或调整网格尺寸时重置为 {1, 0, 0}
// PanX/PanY 使用世界坐标单位，与缩放无关
type ViewStateComponent struct {
	Zoom float64
	PanX float64
	PanY float64
}
