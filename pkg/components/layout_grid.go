package components

import (
	"github.com/decker502/ceilplan/pkg/ecs"
	"github.com/decker502/ceilplan/pkg/types"
)

// CellState 格子的三种互斥状态
type CellState uint8

const (
	// CellEmpty 空格子（零值）
	CellEmpty CellState = iota
	// CellOccupied 被组件占用
	CellOccupied
	// CellInvalid 无效区域，阻止放置和拖放，直到被清除
	CellInvalid
)

// String 返回状态名称
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// GridCell 单个格子的内容
//
// 只有 State == CellOccupied 时 Type 和 ID 才有意义；
// 通过构造函数创建可以保证格子不会同时处于占用和无效状态。
type GridCell struct {
	State CellState
	Type  types.ComponentType
	ID    ecs.EntityID
}

// EmptyCell 返回空格子
func EmptyCell() GridCell {
	return GridCell{}
}

// OccupiedCell 返回被指定组件占用的格子
func OccupiedCell(ct types.ComponentType, id ecs.EntityID) GridCell {
	return GridCell{State: CellOccupied, Type: ct, ID: id}
}

// InvalidCell 返回无效区域格子
func InvalidCell() GridCell {
	return GridCell{State: CellInvalid}
}

// IsEmpty 是否为空格子
func (c GridCell) IsEmpty() bool { return c.State == CellEmpty }

// IsOccupied 是否被组件占用
func (c GridCell) IsOccupied() bool { return c.State == CellOccupied }

// IsInvalid 是否为无效区域
func (c GridCell) IsInvalid() bool { return c.State == CellInvalid }

// Cell 网格坐标
type Cell struct {
	Row, Col int
}

// LayoutGridComponent 标识布局网格实体
// 用于存储 rows×cols 的格子内容
//
// Cells 按行优先存储：Cells[row*Cols+col]
// 网格规格: Rows, Cols ∈ [1, 1000]
type LayoutGridComponent struct {
	Rows  int
	Cols  int
	Cells []GridCell
}

// InBounds 检查坐标是否在网格范围内
func (g *LayoutGridComponent) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// index 计算行优先索引（调用方保证坐标合法）
func (g *LayoutGridComponent) index(row, col int) int {
	return row*g.Cols + col
}

// At 返回指定格子的内容，越界时返回空格子
func (g *LayoutGridComponent) At(row, col int) GridCell {
	if !g.InBounds(row, col) {
		return EmptyCell()
	}
	return g.Cells[g.index(row, col)]
}

// Set 写入指定格子，越界时忽略
func (g *LayoutGridComponent) Set(row, col int, cell GridCell) {
	if !g.InBounds(row, col) {
		return
	}
	g.Cells[g.index(row, col)] = cell
}

// PlacedComponent 标识一个放置在网格上的组件实体
// 实体ID即组件ID，在移动过程中保持不变
type PlacedComponent struct {
	Type types.ComponentType
}

// GridPositionComponent 放置组件当前所在的格子
type GridPositionComponent struct {
	Row, Col int
}
