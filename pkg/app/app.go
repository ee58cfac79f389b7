// Package app 提供背景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/game"
	"github.com/decker502/herbscape/pkg/render"
	"github.com/decker502/herbscape/pkg/scenes"
	"github.com/decker502/herbscape/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "herbscape"

// EnvironmentConfigPath 环境配置在嵌入文件系统中的路径
const EnvironmentConfigPath = "data/environments.yaml"

// NoEnvironment 作为 Config.Environment 时表示以休眠配色启动
const NoEnvironment = "none"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Environment 启动时选择的环境 slug，为空则使用上次的选择或配置中的默认值
	Environment string
	// Inactive 以未激活状态启动（只显示渐变）
	Inactive bool
	// Width/Height 初始窗口尺寸
	Width  int
	Height int
}

// App 是背景应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	backdrop     *scenes.BackdropScene
	canvas       *render.EbitenCanvas
	environments *config.EnvironmentConfig
	preferences  *game.PreferencesManager

	verbose                  bool
	width                    int
	height                   int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	shutdown                 bool
}

// NewApp 创建并初始化背景应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	environments, err := config.LoadEnvironmentConfig(EnvironmentConfigPath)
	if err != nil {
		return nil, fmt.Errorf("环境配置加载失败: %w", err)
	}

	// 偏好存储不可用时降级为内存模式
	store, err := game.OpenPreferenceStore(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (preferences will not persist)", err)
	}
	preferences := game.NewPreferencesManager(store)

	return New(cfg, environments, preferences)
}

// New 使用已加载的环境配置和偏好创建应用
func New(cfg Config, environments *config.EnvironmentConfig, preferences *game.PreferencesManager) (*App, error) {
	if environments == nil {
		return nil, errors.New("environment config is nil")
	}
	if preferences == nil {
		preferences = game.NewPreferencesManager(nil)
	}
	if cfg.Width <= 0 {
		cfg.Width = config.DefaultWindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = config.DefaultWindowHeight
	}

	env, err := resolveEnvironment(cfg.Environment, environments, preferences.GetPreferences())
	if err != nil {
		return nil, err
	}

	backdrop := scenes.NewBackdropScene(cfg.Width, cfg.Height)
	backdrop.SelectEnvironment(env)
	backdrop.SetActivated(preferences.GetPreferences().Activated && !cfg.Inactive)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(backdrop)

	a := &App{
		sceneManager: sceneManager,
		backdrop:     backdrop,
		canvas:       render.NewEbitenCanvas(),
		environments: environments,
		preferences:  preferences,
		verbose:      cfg.Verbose,
		width:        cfg.Width,
		height:       cfg.Height,
	}
	a.rememberSelection()

	if env != nil {
		log.Printf("[App] Starting with environment: %s (activated=%v)", env.Slug, backdrop.Activated())
	} else {
		log.Printf("[App] Starting dormant (activated=%v)", backdrop.Activated())
	}
	return a, nil
}

// resolveEnvironment 启动环境的优先级：命令行参数 > 上次选择 > 配置默认值
func resolveEnvironment(flag string, environments *config.EnvironmentConfig, prefs *game.Preferences) (*config.Environment, error) {
	switch flag {
	case NoEnvironment:
		return nil, nil
	case "":
	default:
		env := environments.Find(flag)
		if env == nil {
			return nil, fmt.Errorf("unknown environment %q", flag)
		}
		return env, nil
	}

	if prefs.LastEnvironment != "" {
		if env := environments.Find(prefs.LastEnvironment); env != nil {
			return env, nil
		}
		log.Printf("[App] Warning: saved environment %q no longer exists", prefs.LastEnvironment)
	}
	return environments.DefaultEnvironment(), nil
}

// Update 更新背景逻辑
// 每个 tick 调用一次（每秒 config.TicksPerSecond 次）
func (a *App) Update() error {
	if a.shutdown {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset && !utils.IsMobile() {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Shutdown()
		return ebiten.Termination
	}

	a.handleInput()
	a.step()
	return nil
}

// step 推进一个逻辑帧
func (a *App) step() {
	a.sceneManager.Update(1.0 / config.TicksPerSecond)
}

// handleInput 键盘输入：1-6 选择环境，空格切换激活，退格取消选择，F11 全屏
func (a *App) handleInput() {
	for i, key := range environmentKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.SelectIndex(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.ToggleActivation()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.Deselect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) && !utils.IsMobile() {
		a.toggleFullscreen()
	}
}

var environmentKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// SelectIndex 按配置中的序号（0 起）选择环境，越界时忽略
func (a *App) SelectIndex(index int) {
	env := a.environments.At(index)
	if env == nil {
		return
	}
	a.backdrop.SelectEnvironment(env)
	a.rememberSelection()
}

// Deselect 取消选择环境，回到休眠配色
func (a *App) Deselect() {
	a.backdrop.SelectEnvironment(nil)
	a.rememberSelection()
}

// ToggleActivation 切换激活状态
func (a *App) ToggleActivation() {
	a.backdrop.SetActivated(!a.backdrop.Activated())
	a.preferences.SetActivated(a.backdrop.Activated())
}

func (a *App) rememberSelection() {
	slug := ""
	if env := a.backdrop.Environment(); env != nil {
		slug = env.Slug
	}
	a.preferences.SetLastEnvironment(slug)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.preferences.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.preferences.SetFullscreen(true)
}

// Shutdown 拆除场景并保存偏好，重复调用无副作用
func (a *App) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	a.sceneManager.Shutdown()
	if err := a.preferences.SaveIfDirty(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	log.Printf("[App] Shutdown complete")
}

// Draw 绘制背景
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.canvas.SetTarget(screen)
	a.sceneManager.Draw(a.canvas)
}

// Layout 逻辑屏幕尺寸与窗口尺寸一致，背景始终铺满视口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Backdrop 返回背景场景
func (a *App) Backdrop() *scenes.BackdropScene {
	return a.backdrop
}

// Preferences 返回偏好管理器
func (a *App) Preferences() *game.PreferencesManager {
	return a.preferences
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
