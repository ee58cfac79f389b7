package systems

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/render"
	"github.com/decker502/herbscape/pkg/types"
)

var dustColor = color.NRGBA{R: 110, G: 231, B: 183, A: 38}

// newTestLoop 创建 800×600 的帧循环，激活缓动已推进到 1
func newTestLoop(t *testing.T, rng RandomSource, tag types.AnimationStyle) (*FrameLoop, *recordingCanvas, *Surface) {
	t.Helper()

	surface := NewSurface(800, 600)
	pool := NewParticlePoolWithSource(rng)
	tweens := NewEnvironmentTweenController(mintTop, mintBottom)
	tweens.RetargetActivation(true)
	tweens.Update(2)

	loop := NewFrameLoop(surface, pool, tweens)
	canvas := &recordingCanvas{}
	if err := loop.Mount(canvas); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	loop.SetStyle(StyleFor(tag), dustColor, true)
	loop.SetActivated(true)
	return loop, canvas, surface
}

// TestFrameLoop_MountWithoutContext 无绘制上下文：返回错误，保持 Stopped，不绘制
func TestFrameLoop_MountWithoutContext(t *testing.T) {
	tweens := NewEnvironmentTweenController(dormantTop, dormantBottom)
	loop := NewFrameLoop(NewSurface(800, 600), NewParticlePool(), tweens)

	err := loop.Mount(nil)
	if !errors.Is(err, render.ErrNoContext) {
		t.Fatalf("Mount(nil) error = %v, want ErrNoContext", err)
	}
	if loop.State() != LoopStopped {
		t.Errorf("state = %v, want Stopped", loop.State())
	}

	for i := 0; i < 10; i++ {
		loop.Tick()
	}
	if loop.Ticks() != 0 || loop.Pool().Len() != 0 {
		t.Errorf("inert loop advanced: ticks=%d particles=%d", loop.Ticks(), loop.Pool().Len())
	}
}

// TestFrameLoop_MountSizesCanvas 挂载时按表面尺寸设置画布
func TestFrameLoop_MountSizesCanvas(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5}, types.StyleMist)

	if loop.State() != LoopRunning {
		t.Fatalf("state = %v, want Running", loop.State())
	}
	if len(canvas.sizes) != 1 || canvas.sizes[0] != [2]int{800, 600} {
		t.Errorf("canvas sizes = %v, want [[800 600]]", canvas.sizes)
	}
}

// TestFrameLoop_InactiveDrawsGradientOnly 未激活时只绘制渐变
func TestFrameLoop_InactiveDrawsGradientOnly(t *testing.T) {
	surface := NewSurface(800, 600)
	tweens := NewEnvironmentTweenController(dormantTop, dormantBottom)
	loop := NewFrameLoop(surface, NewParticlePool(), tweens)
	canvas := &recordingCanvas{}
	if err := loop.Mount(canvas); err != nil {
		t.Fatal(err)
	}
	loop.SetStyle(StyleFor(types.StyleMist), dustColor, true)

	for i := 0; i < 30; i++ {
		loop.Tick()
	}

	if canvas.gradients != 30 {
		t.Errorf("gradients = %d, want 30", canvas.gradients)
	}
	if canvas.top != dormantTop || canvas.bottom != dormantBottom {
		t.Errorf("gradient = %v/%v, want dormant colors", canvas.top, canvas.bottom)
	}
	if canvas.gradientW != 800 || canvas.gradientH != 600 {
		t.Errorf("gradient size = %vx%v", canvas.gradientW, canvas.gradientH)
	}
	if len(canvas.calls) != 0 || loop.Pool().Len() != 0 {
		t.Errorf("particles drawn while inactive: calls=%d pool=%d", len(canvas.calls), loop.Pool().Len())
	}
}

// TestFrameLoop_NoEnvironmentNoParticles 未选择环境时即使激活也不生成粒子
func TestFrameLoop_NoEnvironmentNoParticles(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5}, types.StyleMist)
	loop.SetStyle(StyleFor(""), dustColor, false)

	for i := 0; i < 20; i++ {
		loop.Tick()
	}
	if loop.ParticlesLive() || loop.Pool().Len() != 0 || len(canvas.calls) != 0 {
		t.Errorf("particles without environment: live=%v pool=%d calls=%d",
			loop.ParticlesLive(), loop.Pool().Len(), len(canvas.calls))
	}
}

// TestFrameLoop_ActivationBelowThreshold 激活透明度未超过阈值时不生成粒子
func TestFrameLoop_ActivationBelowThreshold(t *testing.T) {
	surface := NewSurface(800, 600)
	tweens := NewEnvironmentTweenController(mintTop, mintBottom)
	loop := NewFrameLoop(surface, NewParticlePool(), tweens)
	canvas := &recordingCanvas{}
	if err := loop.Mount(canvas); err != nil {
		t.Fatal(err)
	}
	loop.SetStyle(StyleFor(types.StyleParticles), dustColor, true)
	loop.SetActivated(true)

	// 激活刚开始，透明度仍为 0
	tweens.RetargetActivation(true)
	loop.Tick()
	if loop.Pool().Len() != 0 {
		t.Fatalf("spawned at activation %v", tweens.CurrentActivationOpacity())
	}

	tweens.Update(0.1)
	if tweens.CurrentActivationOpacity() <= config.ActivationThreshold {
		t.Fatalf("activation %v should be above threshold", tweens.CurrentActivationOpacity())
	}
	loop.Tick()
	if loop.Pool().Len() != 1 {
		t.Errorf("pool = %d after activation rose, want 1", loop.Pool().Len())
	}
}

// TestFrameLoop_ActiveSpawnsAndPaints 激活后每 tick 生成一个粒子并全部绘制
func TestFrameLoop_ActiveSpawnsAndPaints(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5, n: 100}, types.StyleParticles)

	for tick := 1; tick <= 10; tick++ {
		canvas.reset()
		loop.Tick()

		if !loop.ParticlesLive() {
			t.Fatalf("tick %d: particles not live", tick)
		}
		if loop.Pool().Len() != tick {
			t.Fatalf("tick %d: pool = %d", tick, loop.Pool().Len())
		}
		if canvas.gradients != 1 || len(canvas.calls) != tick {
			t.Fatalf("tick %d: gradients=%d calls=%d", tick, canvas.gradients, len(canvas.calls))
		}
		for _, c := range canvas.calls {
			if c.kind != "circle" || c.color != dustColor {
				t.Fatalf("unexpected paint %+v", c)
			}
			if c.opacity < 0 || c.opacity > 0.25 {
				t.Fatalf("opacity %v out of range", c.opacity)
			}
		}
	}
}

// TestFrameLoop_MistSaturation 薄雾：前 80 个 tick 每 tick 加一，之后不超过 80
func TestFrameLoop_MistSaturation(t *testing.T) {
	loop, _, _ := newTestLoop(t, fixedRand{f: 0.3, n: 300}, types.StyleMist)

	for tick := 1; tick <= 300; tick++ {
		loop.Tick()
		n := loop.Pool().Len()
		if tick <= config.MaxParticles && n != tick {
			t.Fatalf("tick %d: pool = %d, want %d", tick, n, tick)
		}
		if n > config.MaxParticles {
			t.Fatalf("tick %d: pool = %d exceeds cap", tick, n)
		}
	}
}

// TestFrameLoop_DeactivateStopsParticles 取消激活后立即停止绘制粒子，只画渐变
func TestFrameLoop_DeactivateStopsParticles(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5, n: 100}, types.StyleParticles)
	for i := 0; i < 5; i++ {
		loop.Tick()
	}

	loop.SetActivated(false)
	canvas.reset()
	loop.Tick()

	if canvas.gradients != 1 || len(canvas.calls) != 0 {
		t.Errorf("after deactivation: gradients=%d calls=%d", canvas.gradients, len(canvas.calls))
	}
}

// TestFrameLoop_Stop 停止后不再推进也不再绘制
func TestFrameLoop_Stop(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5, n: 100}, types.StyleParticles)
	loop.Tick()

	loop.Stop()
	loop.Stop()
	if loop.State() != LoopStopped {
		t.Fatalf("state = %v after Stop", loop.State())
	}

	ticks := loop.Ticks()
	canvas.reset()
	for i := 0; i < 10; i++ {
		loop.Tick()
	}
	if loop.Ticks() != ticks || canvas.gradients != 0 || len(canvas.calls) != 0 {
		t.Errorf("stopped loop painted: ticks %d->%d gradients=%d calls=%d",
			ticks, loop.Ticks(), canvas.gradients, len(canvas.calls))
	}
	if loop.State().String() != "Stopped" {
		t.Errorf("String() = %q", loop.State().String())
	}
}

// TestFrameLoop_ResizeKeepsParticles 调整尺寸保留已有粒子，新粒子按新尺寸出生
func TestFrameLoop_ResizeKeepsParticles(t *testing.T) {
	loop, canvas, surface := newTestLoop(t, fixedRand{f: 0.5, n: 100}, types.StyleVerticalDrift)
	for i := 0; i < 3; i++ {
		loop.Tick()
	}
	before := append([]float64(nil), loop.Pool().Particles()[0].Y, loop.Pool().Particles()[1].Y)

	surface.Resize(1920, 1080)
	loop.Tick()

	if loop.Pool().Len() != 4 {
		t.Fatalf("pool = %d after resize, want 4", loop.Pool().Len())
	}
	if got := canvas.sizes[len(canvas.sizes)-1]; got != [2]int{1920, 1080} {
		t.Errorf("canvas not resized: %v", got)
	}
	if canvas.gradientW != 1920 || canvas.gradientH != 1080 {
		t.Errorf("gradient size = %vx%v", canvas.gradientW, canvas.gradientH)
	}

	// 旧粒子只是继续上升 0.7
	particles := loop.Pool().Particles()
	for i := 0; i < 2; i++ {
		if math.Abs(particles[i].Y-(before[i]-0.7)) > 1e-9 {
			t.Errorf("particle %d: y = %v, want %v", i, particles[i].Y, before[i]-0.7)
		}
	}

	// 新粒子：y = 1080 + size + vy
	newest := particles[3]
	if want := 1080 + newest.Size - 0.7; math.Abs(newest.Y-want) > 1e-9 {
		t.Errorf("new particle y = %v, want %v", newest.Y, want)
	}
	if newest.X != 960 {
		t.Errorf("new particle x = %v, want 960", newest.X)
	}
}

// TestFrameLoop_StyleSwitchAppliesToExisting 切换风格后已有粒子按新风格推进与绘制
func TestFrameLoop_StyleSwitchAppliesToExisting(t *testing.T) {
	loop, canvas, _ := newTestLoop(t, fixedRand{f: 0.5, n: 100}, types.StyleParticles)
	for i := 0; i < 3; i++ {
		loop.Tick()
	}

	loop.SetStyle(StyleFor(types.StyleLeafSway), dustColor, true)
	canvas.reset()
	loop.Tick()

	for _, c := range canvas.calls {
		if c.kind != "ellipse" {
			t.Fatalf("paint kind = %q after switching to leafSway", c.kind)
		}
	}
	for _, p := range loop.Pool().Particles() {
		if p.VelocityX != LeafSwayVelocity(p.Age) {
			t.Errorf("particle age %d: vx = %v, want sway velocity", p.Age, p.VelocityX)
		}
	}
	if loop.Style().Tag() != types.StyleLeafSway {
		t.Errorf("Style() = %s", loop.Style().Tag())
	}
}
