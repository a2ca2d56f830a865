package components

import "testing"

// TestButtonContains 按钮范围包含右边缘和下边缘
func TestButtonContains(t *testing.T) {
	pos := &PositionComponent{X: 100, Y: 50}
	btn := &ButtonComponent{Width: 80, Height: 40}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"左上角", 100, 50, true},
		{"中心", 140, 70, true},
		{"右下角", 180, 90, true},
		{"左侧外", 99.9, 70, false},
		{"下方外", 140, 90.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := btn.Contains(pos, tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestGridCell 格子构造函数保证三种状态互斥
func TestGridCell(t *testing.T) {
	tests := []struct {
		name                     string
		cell                     GridCell
		empty, occupied, invalid bool
	}{
		{"空格子", EmptyCell(), true, false, false},
		{"占用", OccupiedCell(0, 7), false, true, false},
		{"无效", InvalidCell(), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cell.IsEmpty() != tt.empty || tt.cell.IsOccupied() != tt.occupied || tt.cell.IsInvalid() != tt.invalid {
				t.Errorf("%+v: empty=%v occupied=%v invalid=%v", tt.cell, tt.cell.IsEmpty(), tt.cell.IsOccupied(), tt.cell.IsInvalid())
			}
		})
	}
	if (GridCell{}) != EmptyCell() {
		t.Error("zero value should be an empty cell")
	}
}

// TestLayoutGridBounds 越界读写被忽略
func TestLayoutGridBounds(t *testing.T) {
	g := &LayoutGridComponent{Rows: 2, Cols: 3, Cells: make([]GridCell, 6)}
	g.Set(1, 2, InvalidCell())
	g.Set(2, 0, InvalidCell())
	g.Set(0, -1, InvalidCell())

	if !g.At(1, 2).IsInvalid() {
		t.Error("At(1, 2) should be invalid")
	}
	if !g.At(2, 0).IsEmpty() || !g.At(0, -1).IsEmpty() {
		t.Error("out of bounds reads should return an empty cell")
	}
	invalid := 0
	for _, c := range g.Cells {
		if c.IsInvalid() {
			invalid++
		}
	}
	if invalid != 1 {
		t.Errorf("invalid cells = %d, want 1", invalid)
	}
}

// TestDropValid 拖放合法性判断
func TestDropValid(t *testing.T) {
	drag := DraggingState{Source: Cell{Row: 1, Col: 1}}
	tests := []struct {
		name          string
		target        *Cell
		targetInvalid bool
		want          bool
	}{
		{"不在网格上", nil, false, false},
		{"源格子", CellPtr(1, 1), false, false},
		{"无效区域", CellPtr(0, 0), true, false},
		{"其他格子", CellPtr(0, 0), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drag.Target = tt.target
			if got := drag.DropValid(tt.targetInvalid); got != tt.want {
				t.Errorf("DropValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
