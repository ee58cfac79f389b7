package game

import (
	"fmt"
	"log"

	"github.com/decker502/herbscape/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences 跨会话保留的背景偏好
// 粒子状态不持久化，每次启动都从空池开始
type Preferences struct {
	LastEnvironment string `yaml:"lastEnvironment"` // 上次选择的环境 slug，空表示未选择
	Activated       bool   `yaml:"activated"`       // 上次是否处于激活状态
	Fullscreen      bool   `yaml:"fullscreen"`      // 启动时是否全屏
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{
		LastEnvironment: "",
		Activated:       true,
		Fullscreen:      false,
	}
}

// PreferencesManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type PreferencesManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	prefs        *Preferences
	dirty        bool
}

// 存储路径常量
const (
	preferencesObject   = "preferences"
	preferencesProperty = "backdrop"
)

// OpenPreferenceStore 打开应用的 gdata 存储
// 失败时返回 nil 管理器和错误，调用方应以降级模式继续运行
func OpenPreferenceStore(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("prepare preference store: %w", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open preference store %q: %w", appName, err)
	}
	return m, nil
}

// NewPreferencesManager 创建偏好管理器并尝试加载已保存的偏好
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存偏好）
//
// 加载失败不是致命错误，记录警告后使用默认偏好。
func NewPreferencesManager(gdataManager *gdata.Manager) *PreferencesManager {
	pm := &PreferencesManager{
		gdataManager: gdataManager,
		prefs:        DefaultPreferences(),
	}
	if err := pm.Load(); err != nil {
		log.Printf("[PreferencesManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}
	return pm
}

// Load 从 gdata 加载偏好
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认偏好
func (pm *PreferencesManager) Load() error {
	pm.prefs = DefaultPreferences()
	pm.dirty = false

	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	pm.prefs = &loaded
	log.Printf("[PreferencesManager] Preferences loaded (env=%q, activated=%v)", loaded.LastEnvironment, loaded.Activated)
	return nil
}

// Save 保存偏好到 gdata
//
// 降级模式下直接返回 nil
func (pm *PreferencesManager) Save() error {
	if pm.gdataManager == nil {
		pm.dirty = false
		return nil
	}

	data, err := yaml.Marshal(pm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	pm.dirty = false
	log.Printf("[PreferencesManager] Preferences saved")
	return nil
}

// SaveIfDirty 仅在偏好被修改过时保存
func (pm *PreferencesManager) SaveIfDirty() error {
	if !pm.dirty {
		return nil
	}
	return pm.Save()
}

// Dirty 偏好是否有未保存的修改
func (pm *PreferencesManager) Dirty() bool {
	return pm.dirty
}

// GetPreferences 获取当前偏好
func (pm *PreferencesManager) GetPreferences() *Preferences {
	return pm.prefs
}

// SetLastEnvironment 记录最近选择的环境（空字符串表示未选择）
// 注意：仅修改内存中的偏好，需调用 Save() 持久化
func (pm *PreferencesManager) SetLastEnvironment(slug string) {
	if pm.prefs.LastEnvironment != slug {
		pm.prefs.LastEnvironment = slug
		pm.dirty = true
	}
}

// SetActivated 记录激活状态
func (pm *PreferencesManager) SetActivated(activated bool) {
	if pm.prefs.Activated != activated {
		pm.prefs.Activated = activated
		pm.dirty = true
	}
}

// SetFullscreen 记录全屏状态
func (pm *PreferencesManager) SetFullscreen(enabled bool) {
	if pm.prefs.Fullscreen != enabled {
		pm.prefs.Fullscreen = enabled
		pm.dirty = true
	}
}
