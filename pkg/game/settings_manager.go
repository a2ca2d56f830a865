package game

import (
	"fmt"

	"github.com/decker502/ceilplan/pkg/config"
	"github.com/decker502/ceilplan/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var settingsLog zerolog.Logger = log.With().Str("module", "settings").Logger()

// EditorSettings 编辑器偏好设置
// 只保存界面偏好，不保存网格内容
type EditorSettings struct {
	// 最近使用的网格尺寸
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// 工具栏选中的组件类型
	SelectedType string `yaml:"selectedType"`

	// 显示设置
	Fullscreen      bool `yaml:"fullscreen"`      // 启动时是否全屏
	ShowCoordinates bool `yaml:"showCoordinates"` // 是否显示坐标信息

	// 放置、移动、清除和拒绝放下时的提示音
	SoundEnabled bool `yaml:"soundEnabled"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EditorSettings {
	return &EditorSettings{
		Rows:            config.DefaultGridRows,
		Cols:            config.DefaultGridCols,
		SelectedType:    types.ComponentLight.String(),
		Fullscreen:      false,
		ShowCoordinates: true,
		SoundEnabled:    true,
	}
}

// normalize 修正从磁盘读取的越界或未知值
func (s *EditorSettings) normalize() {
	s.Rows = config.ClampGridDimension(s.Rows)
	s.Cols = config.ClampGridDimension(s.Cols)
	if _, err := types.ParseComponentType(s.SelectedType); err != nil {
		s.SelectedType = types.ComponentLight.String()
	}
}

// ComponentType 返回选中的组件类型
func (s *EditorSettings) ComponentType() types.ComponentType {
	ct, err := types.ParseComponentType(s.SelectedType)
	if err != nil {
		return types.ComponentLight
	}
	return ct
}

// SettingsManager 设置管理器
// 负责编辑器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EditorSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "editor"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例（加载失败时使用默认设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		settingsLog.Warn().Err(err).Msg("failed to load settings, using defaults")
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或设置不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()

	sm.settings = loaded
	settingsLog.Info().Int("rows", loaded.Rows).Int("cols", loaded.Cols).Msg("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	settingsLog.Debug().Msg("settings saved")
	return nil
}

// Settings 获取当前设置
func (sm *SettingsManager) Settings() *EditorSettings {
	return sm.settings
}

// SetDimensions 记录网格尺寸（自动钳制）
// 仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetDimensions(rows, cols int) {
	sm.settings.Rows = config.ClampGridDimension(rows)
	sm.settings.Cols = config.ClampGridDimension(cols)
}

// SetSelectedType 记录工具栏选中的组件类型，未定义的类型被忽略
func (sm *SettingsManager) SetSelectedType(ct types.ComponentType) {
	if !ct.IsValid() {
		return
	}
	sm.settings.SelectedType = ct.String()
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowCoordinates 设置是否显示坐标信息
func (sm *SettingsManager) SetShowCoordinates(enabled bool) {
	sm.settings.ShowCoordinates = enabled
}

// SetSoundEnabled 设置提示音开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}
