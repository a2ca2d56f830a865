package systems

import (
	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var viewLog zerolog.Logger = log.With().Str("module", "view").Logger()

// ViewSystem 管理画布的缩放和平移。
// 视图状态保存在视图实体的 ViewStateComponent 上，缩放值在写入前总是钳制到 [MinZoom, MaxZoom]。
type ViewSystem struct {
	entityManager *ecs.EntityManager
	viewEntity    ecs.EntityID
}

// NewViewSystem 创建视图系统，初始状态为 {zoom:1, pan:(0,0)}。
func NewViewSystem(em *ecs.EntityManager) *ViewSystem {
	vs := &ViewSystem{
		entityManager: em,
	}

	vs.viewEntity = em.CreateEntity()
	ecs.AddComponent(em, vs.viewEntity, &components.ViewStateComponent{
		Zoom: config.DefaultZoom,
	})

	return vs
}

// State 返回视图状态组件
func (vs *ViewSystem) State() *components.ViewStateComponent {
	view, ok := ecs.GetComponent[*components.ViewStateComponent](vs.entityManager, vs.viewEntity)
	if !ok {
		view = &components.ViewStateComponent{Zoom: config.DefaultZoom}
		ecs.AddComponent(vs.entityManager, vs.viewEntity, view)
	}
	return view
}

// Zoom 返回当前缩放值
func (vs *ViewSystem) Zoom() float64 {
	return vs.State().Zoom
}

// Pan 返回当前平移量（世界坐标单位）
func (vs *ViewSystem) Pan() (panX, panY float64) {
	view := vs.State()
	return view.PanX, view.PanY
}

// SetZoom 设置缩放值（自动钳制）
func (vs *ViewSystem) SetZoom(zoom float64) {
	view := vs.State()
	view.Zoom = config.ClampZoom(zoom)
	viewLog.Debug().Float64("zoom", view.Zoom).Msg("zoom changed")
}

// WheelZoom 处理一次滚轮滚动。
// deltaY > 0（向下滚动）缩小为 0.9 倍，否则放大为 1.1 倍。
// 不对不同设备的滚动量做归一化：每个滚轮事件视为一格。
func (vs *ViewSystem) WheelZoom(deltaY float64) {
	factor := config.WheelZoomInFactor
	if deltaY > 0 {
		factor = config.WheelZoomOutFactor
	}
	vs.SetZoom(vs.State().Zoom * factor)
}

// ZoomIn 缩放按钮：放大 1.2 倍，以画布中心为基准
func (vs *ViewSystem) ZoomIn() {
	vs.SetZoom(vs.State().Zoom * config.ButtonZoomStep)
}

// ZoomOut 缩放按钮：缩小 1.2 倍，以画布中心为基准
func (vs *ViewSystem) ZoomOut() {
	vs.SetZoom(vs.State().Zoom / config.ButtonZoomStep)
}

// ResetZoom 恢复默认缩放，保留平移量
func (vs *ViewSystem) ResetZoom() {
	vs.SetZoom(config.DefaultZoom)
}

// PanBy 按屏幕像素位移平移画布。
// 位移除以当前缩放值，使平移速度在任意缩放下视觉上保持一致。
func (vs *ViewSystem) PanBy(screenDX, screenDY float64) {
	view := vs.State()
	zoom := config.ClampZoom(view.Zoom)
	view.PanX += screenDX / zoom
	view.PanY += screenDY / zoom
}

// Reset 恢复到 {zoom:1, pan:(0,0)}，在清空网格或调整尺寸时调用
func (vs *ViewSystem) Reset() {
	view := vs.State()
	view.Zoom = config.DefaultZoom
	view.PanX = 0
	view.PanY = 0
	viewLog.Debug().Msg("view reset")
}

// Viewport 组合画布尺寸和当前视图状态
func (vs *ViewSystem) Viewport(canvasWidth, canvasHeight float64) utils.Viewport {
	view := vs.State()
	return utils.Viewport{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		Zoom:         config.ClampZoom(view.Zoom),
		PanX:         view.PanX,
		PanY:         view.PanY,
	}
}
