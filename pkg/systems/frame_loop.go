package systems

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/render"
)

// LoopState 帧循环状态
type LoopState int

const (
	// LoopStopped 未挂载或已拆除，不再绘制
	LoopStopped LoopState = iota
	// LoopRunning 场景挂载中，每 tick 推进并绘制
	LoopRunning
)

func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "Running"
	default:
		return "Stopped"
	}
}

// FrameLoop is the per-tick driver of the backdrop.
//
// A tick is split into two halves so it maps onto ebiten's Update/Draw:
//   - Update: snapshot surface bounds, then (when particles are eligible)
//     spawn one particle if under capacity and advance the pool.
//   - Draw: paint the current gradient, then every surviving particle at its
//     rendered opacity.
//
// Particles are eligible only while an environment is selected, the scene is
// activated, and the activation opacity is above config.ActivationThreshold.
// The loop reads tween values but never writes them.
type FrameLoop struct {
	state   LoopState
	canvas  render.Canvas
	surface *Surface
	pool    *ParticlePool
	tweens  *EnvironmentTweenController

	style          Style
	particleColor  color.NRGBA
	hasEnvironment bool
	activated      bool

	bounds        Bounds
	particlesLive bool
	ticks         uint64
}

// NewFrameLoop creates a stopped loop; call Mount to start it.
func NewFrameLoop(surface *Surface, pool *ParticlePool, tweens *EnvironmentTweenController) *FrameLoop {
	return &FrameLoop{
		state:   LoopStopped,
		surface: surface,
		pool:    pool,
		tweens:  tweens,
		style:   StyleFor(""),
	}
}

// Mount binds the drawing context and enters Running.
// A nil canvas means no 2D context is available: the loop stays Stopped and
// renders nothing, and the returned error wraps render.ErrNoContext.
func (l *FrameLoop) Mount(canvas render.Canvas) error {
	if canvas == nil {
		log.Printf("[FrameLoop] Warning: no drawing context, backdrop stays inert")
		return fmt.Errorf("mount frame loop: %w", render.ErrNoContext)
	}
	l.canvas = canvas
	l.bounds = l.surface.Bounds()
	l.canvas.SetSize(int(l.bounds.Width), int(l.bounds.Height))
	l.state = LoopRunning
	log.Printf("[FrameLoop] Mounted (%.0fx%.0f)", l.bounds.Width, l.bounds.Height)
	return nil
}

// Stop cancels all further ticks. Idempotent.
func (l *FrameLoop) Stop() {
	if l.state == LoopStopped {
		return
	}
	l.state = LoopStopped
	l.particlesLive = false
	log.Printf("[FrameLoop] Stopped after %d ticks", l.ticks)
}

// State returns the loop state.
func (l *FrameLoop) State() LoopState {
	return l.state
}

// Ticks returns how many Update calls ran while Running.
func (l *FrameLoop) Ticks() uint64 {
	return l.ticks
}

// Pool exposes the particle pool (read-only use).
func (l *FrameLoop) Pool() *ParticlePool {
	return l.pool
}

// Style returns the active style.
func (l *FrameLoop) Style() Style {
	return l.style
}

// SetStyle switches the active style and particle color. Existing particles are
// kept and follow the new style from the next tick on.
func (l *FrameLoop) SetStyle(style Style, particleColor color.NRGBA, hasEnvironment bool) {
	if style == nil {
		style = StyleFor("")
	}
	l.style = style
	l.particleColor = particleColor
	l.hasEnvironment = hasEnvironment
}

// SetActivated sets the activation flag read at the next tick.
func (l *FrameLoop) SetActivated(activated bool) {
	l.activated = activated
}

// ParticlesLive reports whether the last Update ran the particle phase.
func (l *FrameLoop) ParticlesLive() bool {
	return l.particlesLive
}

// Update runs the simulation half of a tick.
func (l *FrameLoop) Update() {
	if l.state != LoopRunning {
		return
	}
	l.ticks++

	bounds := l.surface.Bounds()
	if bounds != l.bounds {
		l.canvas.SetSize(int(bounds.Width), int(bounds.Height))
	}
	l.bounds = bounds

	l.particlesLive = l.hasEnvironment && l.activated &&
		l.tweens.CurrentActivationOpacity() > config.ActivationThreshold
	if !l.particlesLive {
		return
	}

	l.pool.SpawnIfUnderCapacity(l.style, l.bounds)
	l.pool.Tick(l.style, l.bounds)
}

// Draw runs the paint half of a tick.
func (l *FrameLoop) Draw() {
	if l.state != LoopRunning {
		return
	}

	l.canvas.FillVerticalGradient(l.bounds.Width, l.bounds.Height,
		l.tweens.CurrentPrimary(), l.tweens.CurrentSecondary())

	if !l.particlesLive {
		return
	}

	activation := l.tweens.CurrentActivationOpacity()
	particles := l.pool.Particles()
	for i := range particles {
		p := &particles[i]
		l.style.Paint(l.canvas, p, l.particleColor, RenderedOpacity(p, activation))
	}
}

// Tick runs a full frame: Update followed by Draw.
func (l *FrameLoop) Tick() {
	l.Update()
	l.Draw()
}
