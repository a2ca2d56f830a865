// gridtui 终端版布局编辑器
//
// 与桌面端共用编辑会话、交互状态机和帧构建器，
// 绘制指令被光栅化到字符网格上，鼠标事件通过 PointerTracker 转换为画布事件。
//
// 用法：
//
//	go run ./cmd/gridtui [--rows 10] [--cols 10] [--styles file.yaml] [--no-save] [--mute] [--verbose]
//
// 操作：
//
//	左键单击放置/清除，左键拖拽移动，右键或中键拖拽平移，滚轮缩放
//	1-5 选择组件类型   +/- 缩放   0 缩放复位
//	[ ] 行数减/加       { } 列数减/加
//	c 清空网格         r 全部重置   m 提示音开关   q 退出
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// 每个字符格对应的画布像素，终端字符大约是 1:2 的长方形
const (
	colPx = 10.0
	rowPx = 20.0
)

func main() {
	rows := flag.Int("rows", 0, "Initial grid rows (1-1000, 0 = last used)")
	cols := flag.Int("cols", 0, "Initial grid columns (1-1000, 0 = last used)")
	stylePath := flag.String("styles", "", "Path to a custom style YAML file")
	noSave := flag.Bool("no-save", false, "Do not load or save editor preferences")
	mute := flag.Bool("mute", false, "Disable audio cues")
	verbose := flag.Bool("verbose", false, "Enable debug logging to stderr (redirect it to a file)")
	flag.Parse()

	// 终端被编辑器占用，默认关闭日志
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	styles, err := config.LoadStyleTable(*stylePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load styles: %v\n", err)
		os.Exit(1)
	}

	var store *gdata.Manager
	if !*noSave {
		store, err = gdata.Open(gdata.Config{AppName: config.AppName})
		if err != nil {
			log.Warn().Err(err).Msg("settings storage unavailable")
			store = nil
		}
	}
	settings := game.NewSettingsManager(store)
	if *rows > 0 || *cols > 0 {
		r, c := settings.Settings().Rows, settings.Settings().Cols
		if *rows > 0 {
			r = *rows
		}
		if *cols > 0 {
			c = *cols
		}
		settings.SetDimensions(r, c)
	}
	if *mute {
		settings.SetSoundEnabled(false)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	h := newHost(screen, settings, styles)
	if settings.Settings().SoundEnabled {
		h.enableAudio()
	}

	h.run()
	h.cleanup()

	if err := settings.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save preferences: %v\n", err)
	}
}

// toolbarItem 第一行的可点击条目
type toolbarItem struct {
	label  string
	x0, x1 int
	ct     types.ComponentType
}

// host 终端宿主：事件循环、输入转换和绘制
type host struct {
	screen   tcell.Screen
	session  *game.EditorSession
	settings *game.SettingsManager
	styles   *config.StyleTable
	builder  *systems.FrameBuilder
	painter  *Painter
	tracker  *utils.PointerTracker
	audio    *cue

	width, height int
	pointer       utils.PointerSnapshot
	toolbar       []toolbarItem
	lastOutcome   systems.InteractionOutcome
	dirty         bool
}

func newHost(screen tcell.Screen, settings *game.SettingsManager, styles *config.StyleTable) *host {
	prefs := settings.Settings()
	h := &host{
		screen:   screen,
		session:  game.NewEditorSession(prefs.Rows, prefs.Cols),
		settings: settings,
		styles:   styles,
		builder:  systems.NewFrameBuilder(styles),
		painter:  NewPainter(0, 0, colPx, rowPx, styles.Canvas().Background),
		tracker:  utils.NewPointerTracker(),
		dirty:    true,
	}
	h.session.SelectType(prefs.ComponentType())
	h.session.AddOutcomeListener(h.onOutcome)

	if screen != nil {
		screen.EnableMouse()
		w, hh := screen.Size()
		h.resize(w, hh)
	}
	return h
}

// resize 第一行是工具栏，最后一行是状态栏，中间是画布
func (h *host) resize(width, height int) {
	h.width, h.height = width, height
	rows := height - 2
	if rows < 0 {
		rows = 0
	}
	h.painter.Resize(width, rows)
	h.session.SetCanvasSize(h.painter.CanvasSize())
	h.dirty = true
}

// canvasRect 画布在逻辑像素坐标中的矩形
func (h *host) canvasRect() utils.Rect {
	w, hh := h.painter.CanvasSize()
	return utils.Rect{X: 0, Y: rowPx, Width: w, Height: hh}
}

func (h *host) onOutcome(outcome systems.InteractionOutcome) {
	h.lastOutcome = outcome
	if !h.settings.Settings().SoundEnabled {
		return
	}
	if freq, ok := toneFor(outcome); ok {
		h.audio.play(freq)
	}
}

// enableAudio 打开音频设备，失败时记录日志并保持静音
func (h *host) enableAudio() {
	c, err := openCue()
	if err != nil {
		// 没有声音也可以正常编辑
		log.Warn().Err(err).Msg("audio initialization failed")
		return
	}
	h.audio = c
}

func (h *host) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !h.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if h.dirty {
				h.draw()
				h.dirty = false
			}
		}
	}
}

// handleEvent 返回 false 表示退出
func (h *host) handleEvent(ev tcell.Event) bool {
	h.dirty = true
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize(h.screen.Size())
	}
	return true
}

// handleMouse 把 tcell 鼠标事件转换为指针快照，交给 PointerTracker 生成画布事件
func (h *host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	snap := snapshotFromMouse(ev)

	// 工具栏点击
	if y == 0 && snap.Pressed[0] && !h.pointer.Pressed[0] {
		for _, item := range h.toolbar {
			if x >= item.x0 && x < item.x1 {
				h.selectType(item.ct)
			}
		}
	}
	h.pointer = snap

	for _, pe := range h.tracker.Update(snap, h.canvasRect()) {
		h.session.HandlePointer(pe)
	}
}

// snapshotFromMouse 字符坐标取字符格中心
func snapshotFromMouse(ev *tcell.EventMouse) utils.PointerSnapshot {
	x, y := ev.Position()
	buttons := ev.Buttons()

	snap := utils.PointerSnapshot{
		X: float64(x)*colPx + colPx/2,
		Y: float64(y)*rowPx + rowPx/2,
	}
	snap.Pressed[0] = buttons&tcell.Button1 != 0
	snap.Pressed[1] = buttons&tcell.Button2 != 0
	snap.Pressed[2] = buttons&tcell.Button3 != 0

	switch {
	case buttons&tcell.WheelDown != 0:
		snap.WheelY = 1
	case buttons&tcell.WheelUp != 0:
		snap.WheelY = -1
	}
	return snap
}

// handleKey 返回 false 表示退出
func (h *host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDelete:
		h.session.ClearGridOnly()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	view := h.session.View()
	rows, cols := h.session.Grid().Dimensions()
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case '1', '2', '3', '4', '5':
		all := types.AllComponentTypes()
		if i := int(r - '1'); i < len(all) {
			h.selectType(all[i])
		}
	case '+', '=':
		view.ZoomIn()
	case '-':
		view.ZoomOut()
	case '0':
		view.ResetZoom()
	case '[':
		h.setDimensions(rows-1, cols)
	case ']':
		h.setDimensions(rows+1, cols)
	case '{':
		h.setDimensions(rows, cols-1)
	case '}':
		h.setDimensions(rows, cols+1)
	case 'c':
		h.session.ClearGridOnly()
	case 'r':
		h.session.ResetAll()
		h.settings.SetDimensions(h.session.Grid().Dimensions())
	case 'm':
		enabled := !h.settings.Settings().SoundEnabled
		h.settings.SetSoundEnabled(enabled)
		if enabled && h.audio == nil {
			h.enableAudio()
		}
	}
	return true
}

// setDimensions 调整网格行列数（钳制到合法范围）并记录偏好
func (h *host) setDimensions(rows, cols int) {
	rows = config.ClampGridDimension(rows)
	cols = config.ClampGridDimension(cols)
	if r, c := h.session.Grid().Dimensions(); r == rows && c == cols {
		return
	}
	h.session.Resize(rows, cols)
	h.settings.SetDimensions(rows, cols)
}

func (h *host) selectType(ct types.ComponentType) {
	h.session.SelectType(ct)
	h.settings.SetSelectedType(ct)
}

func (h *host) cleanup() {
	h.audio.close()
	h.screen.Fini()
}
