package main

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/decker502/ceilplan/pkg/types"
)

// kindSelect 脚本专用事件：切换工具栏选中的组件类型
const kindSelect = "select"

// Script 回放脚本
//
// 示例：
//
//	{
//	  "rows": 3, "cols": 3,
//	  "canvasWidth": 300, "canvasHeight": 300,
//	  "selected": "light",
//	  "events": [
//	    {"kind": "press", "button": "primary", "x": 150, "y": 150},
//	    {"kind": "release", "button": "primary", "x": 150, "y": 150},
//	    {"kind": "select", "type": "invalid"},
//	    {"kind": "wheel", "x": 150, "y": 150, "deltaY": -1}
//	  ]
//	}
type Script struct {
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	CanvasWidth  float64       `json:"canvasWidth"`
	CanvasHeight float64       `json:"canvasHeight"`
	Selected     string        `json:"selected"`
	Events       []ScriptEvent `json:"events"`
}

// ScriptEvent 脚本中的一条事件
type ScriptEvent struct {
	Kind   string  `json:"kind"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// step 解析后的事件，pointer 和 selectType 二选一
type step struct {
	pointer    types.PointerEvent
	selectType *types.ComponentType
}

// Summary 回放结束后的网格快照和统计
type Summary struct {
	Rows     int            `json:"rows"`
	Cols     int            `json:"cols"`
	Zoom     float64        `json:"zoom"`
	PanX     float64        `json:"panX"`
	PanY     float64        `json:"panY"`
	Occupied int            `json:"occupied"`
	Invalid  int            `json:"invalid"`
	ByType   map[string]int `json:"byType"`
	Outcomes []string       `json:"outcomes"`
	State    string         `json:"state"`
	Grid     []string       `json:"grid"`
}

// ParseScript 解码脚本，缺省值与编辑器默认值一致
func ParseScript(data []byte) (*Script, error) {
	sc := &Script{}
	if err := sonic.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if sc.Rows == 0 {
		sc.Rows = config.DefaultGridRows
	}
	if sc.Cols == 0 {
		sc.Cols = config.DefaultGridCols
	}
	if sc.CanvasWidth <= 0 {
		sc.CanvasWidth = config.EditorWindowWidth
	}
	if sc.CanvasHeight <= 0 {
		sc.CanvasHeight = config.EditorWindowHeight - config.ToolbarHeight
	}
	if sc.Selected == "" {
		sc.Selected = types.ComponentLight.String()
	}
	return sc, nil
}

// steps 把脚本事件转换为指针事件，任何一条无法识别时返回错误
func (sc *Script) steps() ([]step, error) {
	steps := make([]step, 0, len(sc.Events))
	for i, ev := range sc.Events {
		if ev.Kind == kindSelect {
			ct, err := types.ParseComponentType(ev.Type)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			steps = append(steps, step{selectType: &ct})
			continue
		}
		kind, err := types.ParsePointerEventKind(ev.Kind)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		button, err := types.ParsePointerButton(ev.Button)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		steps = append(steps, step{pointer: types.PointerEvent{
			Kind:   kind,
			Button: button,
			X:      ev.X,
			Y:      ev.Y,
			DeltaY: ev.DeltaY,
		}})
	}
	return steps, nil
}

// Run 在新的编辑会话上回放脚本
func Run(sc *Script, styles *config.StyleTable) (*Summary, error) {
	selected, err := types.ParseComponentType(sc.Selected)
	if err != nil {
		return nil, err
	}
	steps, err := sc.steps()
	if err != nil {
		return nil, err
	}

	session := game.NewEditorSession(sc.Rows, sc.Cols)
	session.SetCanvasSize(sc.CanvasWidth, sc.CanvasHeight)
	session.SelectType(selected)

	var outcomes []string
	session.AddOutcomeListener(func(o systems.InteractionOutcome) {
		outcomes = append(outcomes, o.String())
	})

	for _, st := range steps {
		if st.selectType != nil {
			session.SelectType(*st.selectType)
			continue
		}
		session.HandlePointer(st.pointer)
	}

	replayLog.Debug().Int("events", len(steps)).Int("outcomes", len(outcomes)).Msg("replay finished")
	return summarize(session, styles, outcomes), nil
}

func summarize(session *game.EditorSession, styles *config.StyleTable, outcomes []string) *Summary {
	stats := session.Stats()
	panX, panY := session.View().Pan()
	sum := &Summary{
		Rows:     stats.Rows,
		Cols:     stats.Cols,
		Zoom:     stats.Zoom,
		PanX:     panX,
		PanY:     panY,
		Occupied: stats.Occupied,
		Invalid:  stats.Invalid,
		ByType:   make(map[string]int, len(stats.ByType)),
		Outcomes: outcomes,
		State:    session.Interaction().State().Mode(),
	}
	if sum.Outcomes == nil {
		sum.Outcomes = []string{}
	}
	for ct, n := range stats.ByType {
		sum.ByType[ct.String()] = n
	}

	for _, row := range session.Grid().Snapshot() {
		var b strings.Builder
		for _, cell := range row {
			switch {
			case cell.IsOccupied():
				b.WriteRune(styles.Lookup(cell.Type).Symbol)
			case cell.IsInvalid():
				b.WriteRune(styles.Lookup(types.ComponentInvalid).Symbol)
			default:
				b.WriteByte('.')
			}
		}
		sum.Grid = append(sum.Grid, b.String())
	}
	return sum
}
