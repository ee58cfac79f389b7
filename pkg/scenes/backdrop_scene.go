package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/render"
	"github.com/decker502/herbscape/pkg/systems"
	"github.com/decker502/herbscape/pkg/utils"
)

// BackdropScene is the full-viewport atmospheric backdrop.
//
// It owns the surface, particle pool, tween controller and frame loop, and
// exposes the only two inputs the backdrop accepts: the active environment
// (or none) and the activation flag. Every change retargets the tweens from
// their current values, so switching never produces a visible jump.
type BackdropScene struct {
	surface *systems.Surface
	pool    *systems.ParticlePool
	tweens  *systems.EnvironmentTweenController
	loop    *systems.FrameLoop

	environment *config.Environment
	activated   bool

	dormantPrimary   color.NRGBA
	dormantSecondary color.NRGBA
	defaultParticle  color.NRGBA

	mountAttempted bool
	torndown       bool
}

// NewBackdropScene creates a dormant, unmounted scene of the given size.
func NewBackdropScene(width, height int) *BackdropScene {
	return NewBackdropSceneWithPool(width, height, systems.NewParticlePool())
}

// NewBackdropSceneWithPool is NewBackdropScene with a caller-supplied pool
// (seeded pools make headless output reproducible).
func NewBackdropSceneWithPool(width, height int, pool *systems.ParticlePool) *BackdropScene {
	s := &BackdropScene{
		surface:          systems.NewSurface(width, height),
		pool:             pool,
		dormantPrimary:   utils.MustParseColor(config.DormantPrimaryColor),
		dormantSecondary: utils.MustParseColor(config.DormantSecondaryColor),
		defaultParticle:  utils.MustParseColor(config.DefaultParticleColor),
	}
	s.tweens = systems.NewEnvironmentTweenController(s.dormantPrimary, s.dormantSecondary)
	s.loop = systems.NewFrameLoop(s.surface, s.pool, s.tweens)
	s.loop.SetStyle(systems.StyleFor(""), s.defaultParticle, false)
	return s
}

// Mount binds the drawing context and starts the frame loop.
// A nil canvas leaves the scene inert; the error wraps render.ErrNoContext.
func (s *BackdropScene) Mount(canvas render.Canvas) error {
	s.mountAttempted = true
	if s.torndown {
		return nil
	}
	return s.loop.Mount(canvas)
}

// SelectEnvironment switches the active environment. nil selects the dormant
// palette: colors tween to the dormant gradient, activation tweens to 0 and no
// particles spawn. Existing particles are kept and follow the new style.
func (s *BackdropScene) SelectEnvironment(env *config.Environment) {
	if s.torndown {
		return
	}
	s.environment = env

	if env == nil {
		log.Printf("[BackdropScene] 切换到休眠配色")
		s.tweens.RetargetColors(s.dormantPrimary, s.dormantSecondary)
		s.loop.SetStyle(systems.StyleFor(""), s.defaultParticle, false)
		s.tweens.RetargetActivation(false)
		return
	}

	log.Printf("[BackdropScene] 切换环境: %s (%s, %s)", env.Slug, env.AnimationType, env.Mood)
	s.tweens.RetargetColors(s.parseColor(env.Primary, s.dormantPrimary), s.parseColor(env.Secondary, s.dormantSecondary))
	s.loop.SetStyle(systems.StyleFor(env.AnimationType), s.parseColor(env.ParticleColor, s.defaultParticle), true)
	s.tweens.RetargetActivation(s.activated)
}

// SetActivated sets the activation flag. Activation opacity tweens toward 1
// only while an environment is selected.
func (s *BackdropScene) SetActivated(activated bool) {
	if s.torndown {
		return
	}
	if s.activated != activated {
		log.Printf("[BackdropScene] 激活状态: %v", activated)
	}
	s.activated = activated
	s.loop.SetActivated(activated)
	s.tweens.RetargetActivation(activated && s.environment != nil)
}

// Update advances the tweens by deltaTime seconds, then runs the simulation
// half of the frame.
func (s *BackdropScene) Update(deltaTime float64) {
	if s.torndown {
		return
	}
	s.tweens.Update(deltaTime)
	s.loop.Update()
}

// Draw paints the frame. The first call mounts the scene on canvas if Mount
// was never called.
func (s *BackdropScene) Draw(canvas render.Canvas) {
	if s.torndown {
		return
	}
	if !s.mountAttempted {
		if err := s.Mount(canvas); err != nil {
			log.Printf("[BackdropScene] Warning: mount failed: %v", err)
		}
	}
	s.loop.Draw()
}

// Resize updates the surface dimensions. Safe to call from any goroutine.
func (s *BackdropScene) Resize(width, height int) {
	s.surface.Resize(width, height)
}

// Teardown stops the frame loop and cancels in-flight tweens.
// Every later call on the scene is a no-op.
func (s *BackdropScene) Teardown() {
	if s.torndown {
		return
	}
	s.torndown = true
	s.loop.Stop()
	s.tweens.Stop()
	log.Printf("[BackdropScene] Teardown (%d particles dropped)", s.pool.Len())
	s.pool.Clear()
}

// Running 帧循环是否处于 Running 状态
func (s *BackdropScene) Running() bool {
	return s.loop.State() == systems.LoopRunning
}

// Environment 当前环境，nil 表示休眠配色
func (s *BackdropScene) Environment() *config.Environment {
	return s.environment
}

// Activated 当前激活标志
func (s *BackdropScene) Activated() bool {
	return s.activated
}

// ParticleCount 当前存活粒子数
func (s *BackdropScene) ParticleCount() int {
	return s.pool.Len()
}

// ActivationOpacity 当前激活透明度
func (s *BackdropScene) ActivationOpacity() float64 {
	return s.tweens.CurrentActivationOpacity()
}

// Gradient 当前渐变的顶部与底部颜色
func (s *BackdropScene) Gradient() (color.NRGBA, color.NRGBA) {
	return s.tweens.CurrentPrimary(), s.tweens.CurrentSecondary()
}

// Size 当前表面尺寸
func (s *BackdropScene) Size() (int, int) {
	return s.surface.Size()
}

// parseColor 解析环境颜色，空字符串使用 fallback
// 格式错误时记录警告，结果为全透明黑色
func (s *BackdropScene) parseColor(value string, fallback color.NRGBA) color.NRGBA {
	if value == "" {
		return fallback
	}
	c, err := utils.ParseColor(value)
	if err != nil {
		log.Printf("[BackdropScene] Warning: %v", err)
	}
	return c
}
