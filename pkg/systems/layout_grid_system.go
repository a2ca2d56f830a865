package systems

import (
	"github.com/decker502/ceilplan/pkg/components"
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// gridLog 是网格存储的子日志器，自动携带 module=grid 字段
var gridLog zerolog.Logger = log.With().Str("module", "grid").Logger()

// LayoutGridSystem 管理布局网格的格子内容
// 负责放置、清除、移动组件，并维护以下不变量：
//   - 格子不会同时处于占用和无效状态
//   - 组件ID由会话的 EntityManager 分配，单调递增，永不复用
//   - 移动组件时保留其ID和类型
//
// 所有操作都是全函数：非法操作返回 false 且不修改网格，不返回错误。
type LayoutGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
}

// NewLayoutGridSystem 创建布局网格系统
// 参数:
//   - em: 会话的 EntityManager 实例，同时作为组件ID生成器
//   - rows, cols: 初始行列数（调用方保证在 [1, 1000] 范围内）
//
// 返回:
//   - *LayoutGridSystem: 布局网格系统实例
func NewLayoutGridSystem(em *ecs.EntityManager, rows, cols int) *LayoutGridSystem {
	s := &LayoutGridSystem{
		entityManager: em,
	}

	s.gridEntity = em.CreateEntity()
	ecs.AddComponent(em, s.gridEntity, &components.LayoutGridComponent{})
	s.Resize(rows, cols)

	return s
}

// Grid 返回网格组件（只读使用）
func (s *LayoutGridSystem) Grid() *components.LayoutGridComponent {
	grid, ok := ecs.GetComponent[*components.LayoutGridComponent](s.entityManager, s.gridEntity)
	if !ok {
		// 网格实体由本系统独占，正常情况下不会丢失
		grid = &components.LayoutGridComponent{}
		ecs.AddComponent(s.entityManager, s.gridEntity, grid)
	}
	return grid
}

// GridEntity 返回网格实体ID
func (s *LayoutGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

// Dimensions 返回当前行列数
func (s *LayoutGridSystem) Dimensions() (rows, cols int) {
	grid := s.Grid()
	return grid.Rows, grid.Cols
}

// Cell 返回指定格子的内容
// 返回:
//   - components.GridCell: 格子内容
//   - bool: 坐标是否在网格范围内
func (s *LayoutGridSystem) Cell(row, col int) (components.GridCell, bool) {
	grid := s.Grid()
	if !grid.InBounds(row, col) {
		return components.EmptyCell(), false
	}
	return grid.At(row, col), true
}

// Snapshot 返回网格内容的副本（行优先），供回放工具和测试比较使用
func (s *LayoutGridSystem) Snapshot() [][]components.GridCell {
	grid := s.Grid()
	out := make([][]components.GridCell, grid.Rows)
	for r := 0; r < grid.Rows; r++ {
		out[r] = make([]components.GridCell, grid.Cols)
		copy(out[r], grid.Cells[r*grid.Cols:(r+1)*grid.Cols])
	}
	return out
}

// Resize 重新分配网格，丢弃所有已有内容
// 调用方负责校验行列数（Dimension 控件在调用前已完成钳制）
func (s *LayoutGridSystem) Resize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	s.destroyPlacedEntities()

	grid := s.Grid()
	grid.Rows = rows
	grid.Cols = cols
	grid.Cells = make([]components.GridCell, rows*cols)

	gridLog.Info().Int("rows", rows).Int("cols", cols).Msg("grid resized")
}

// Place 在空格子上放置组件
//
// 参数:
//   - row, col: 目标格子
//   - ct: 组件类型；ComponentInvalid 会把格子标记为无效区域，不分配ID
//
// 返回:
//   - ecs.EntityID: 新组件ID（标记无效区域时为 0）
//   - bool: 是否放置成功（目标必须在范围内且为空）
func (s *LayoutGridSystem) Place(row, col int, ct types.ComponentType) (ecs.EntityID, bool) {
	grid := s.Grid()
	if !grid.InBounds(row, col) || !ct.IsValid() {
		return 0, false
	}
	if !grid.At(row, col).IsEmpty() {
		return 0, false
	}

	if ct.IsMarker() {
		grid.Set(row, col, components.InvalidCell())
		gridLog.Debug().Int("row", row).Int("col", col).Msg("cell marked invalid")
		return 0, true
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.PlacedComponent{Type: ct})
	ecs.AddComponent(s.entityManager, id, &components.GridPositionComponent{Row: row, Col: col})
	grid.Set(row, col, components.OccupiedCell(ct, id))

	gridLog.Debug().Int("row", row).Int("col", col).Stringer("type", ct).Uint64("id", uint64(id)).Msg("component placed")
	return id, true
}

// ClearCell 无条件清空指定格子
// 用于在同一格子上重复交互时取消占用或无效标记
func (s *LayoutGridSystem) ClearCell(row, col int) {
	grid := s.Grid()
	if !grid.InBounds(row, col) {
		return
	}

	cell := grid.At(row, col)
	if cell.IsOccupied() {
		s.entityManager.DestroyEntity(cell.ID)
		s.entityManager.RemoveMarkedEntities()
	}
	grid.Set(row, col, components.EmptyCell())

	gridLog.Debug().Int("row", row).Int("col", col).Stringer("was", cell.State).Msg("cell cleared")
}

// Move 把组件从源格子移动到目标格子
//
// 仅当源格子被占用、目标在范围内、目标不是无效区域、且目标不是源格子时成功。
// 成功后源格子变为空，目标格子被同一ID、同一类型的组件占用；
// 目标原有的组件（如果有）被替换。失败时不做任何修改。
//
// 返回:
//   - bool: 是否移动成功
func (s *LayoutGridSystem) Move(fromRow, fromCol, toRow, toCol int) bool {
	grid := s.Grid()
	if !grid.InBounds(fromRow, fromCol) || !grid.InBounds(toRow, toCol) {
		return false
	}
	if fromRow == toRow && fromCol == toCol {
		return false
	}

	source := grid.At(fromRow, fromCol)
	target := grid.At(toRow, toCol)
	if !source.IsOccupied() || target.IsInvalid() {
		return false
	}

	if target.IsOccupied() {
		s.entityManager.DestroyEntity(target.ID)
		s.entityManager.RemoveMarkedEntities()
	}

	grid.Set(toRow, toCol, source)
	grid.Set(fromRow, fromCol, components.EmptyCell())

	if pos, ok := ecs.GetComponent[*components.GridPositionComponent](s.entityManager, source.ID); ok {
		pos.Row = toRow
		pos.Col = toCol
	}

	gridLog.Debug().
		Int("fromRow", fromRow).Int("fromCol", fromCol).
		Int("toRow", toRow).Int("toCol", toCol).
		Uint64("id", uint64(source.ID)).
		Msg("component moved")
	return true
}

// ClearAll 清空所有格子，保留行列数
func (s *LayoutGridSystem) ClearAll() {
	s.destroyPlacedEntities()

	grid := s.Grid()
	for i := range grid.Cells {
		grid.Cells[i] = components.EmptyCell()
	}

	gridLog.Info().Int("rows", grid.Rows).Int("cols", grid.Cols).Msg("grid cleared")
}

// OccupiedCount 返回被组件占用的格子数量
func (s *LayoutGridSystem) OccupiedCount() int {
	count := 0
	for _, cell := range s.Grid().Cells {
		if cell.IsOccupied() {
			count++
		}
	}
	return count
}

// InvalidCount 返回无效区域格子数量
func (s *LayoutGridSystem) InvalidCount() int {
	count := 0
	for _, cell := range s.Grid().Cells {
		if cell.IsInvalid() {
			count++
		}
	}
	return count
}

// CountByType 按组件类型统计放置数量
func (s *LayoutGridSystem) CountByType() map[types.ComponentType]int {
	counts := make(map[types.ComponentType]int)
	for _, cell := range s.Grid().Cells {
		if cell.IsOccupied() {
			counts[cell.Type]++
		}
	}
	return counts
}

// destroyPlacedEntities 销毁所有放置组件实体
func (s *LayoutGridSystem) destroyPlacedEntities() {
	for _, id := range ecs.GetEntitiesWith1[*components.PlacedComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}
