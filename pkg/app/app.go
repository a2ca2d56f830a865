// Package app 提供编辑器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载样式表和偏好设置，
// 创建编辑会话和编辑器场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/scenes"
	"github.com/decker502/ceilplan/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var appLog zerolog.Logger = log.With().Str("module", "app").Logger()

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Quiet 关闭全部日志输出
	Quiet bool
	// Rows, Cols 初始网格尺寸，0 表示使用上次保存的尺寸
	Rows int
	Cols int
	// StylePath 自定义样式表路径，为空时使用内置样式表
	StylePath string
	// NoSave 不读取也不保存偏好设置
	NoSave bool
	// Mute 关闭提示音（写入偏好设置）
	Mute bool
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	session      *game.EditorSession
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化编辑器应用
func NewApp(cfg Config) (*App, error) {
	styles, err := config.LoadStyleTable(cfg.StylePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load styles: %w", err)
	}

	var store *gdata.Manager
	if !cfg.NoSave {
		if err := utils.EnsureStorageDir(); err != nil {
			appLog.Warn().Err(err).Msg("storage directory unavailable")
		}
		store, err = gdata.Open(gdata.Config{AppName: config.AppName})
		if err != nil {
			// 存储不可用时降级为仅内存设置
			appLog.Warn().Err(err).Msg("settings storage unavailable")
			store = nil
		}
	}
	settings := game.NewSettingsManager(store)
	prefs := settings.Settings()

	rows, cols := prefs.Rows, prefs.Cols
	if cfg.Rows > 0 {
		rows = cfg.Rows
	}
	if cfg.Cols > 0 {
		cols = cfg.Cols
	}
	settings.SetDimensions(rows, cols)

	if cfg.Mute {
		settings.SetSoundEnabled(false)
	}

	session := game.NewEditorSession(rows, cols)
	session.SelectType(prefs.ComponentType())
	session.AddOutcomeListener(newCuePlayer(settings).onOutcome)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewEditorScene(session, settings, styles))

	// 移动端总是全屏，不读取也不切换全屏偏好
	if prefs.Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	appLog.Debug().Str("path", utils.StoragePath()).Msg("storage location")
	appLog.Info().Int("rows", rows).Int("cols", cols).Bool("persist", store != nil).Msg("editor started")

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		session:      session,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.EditorWindowWidth, config.EditorWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.ToggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// ToggleFullscreen 切换全屏并记录到偏好设置
func (a *App) ToggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		appLog.Debug().Msg("exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制编辑器画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 编辑器画布跟随窗口大小变化，逻辑尺寸等于窗口尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在程序关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Session 返回编辑会话
func (a *App) Session() *game.EditorSession {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// ConfigureLogging 根据配置设置全局日志级别
// Quiet 优先于 Verbose
func ConfigureLogging(cfg Config) {
	switch {
	case cfg.Quiet:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case cfg.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
