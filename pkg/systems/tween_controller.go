package systems

import (
	"image/color"
	"log"

	"github.com/decker502/herbscape/pkg/components"
	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/utils"
)

// EnvironmentTweenController 管理背景的两条独立缓动
//
//   - 渐变色：primary/secondary 同一时间线，时长 config.ColorTweenDuration
//   - 激活透明度：目标 1（激活）或 0（休眠），时长 config.ActivationTweenDuration
//
// 两条缓动可以同时进行。重新设定目标时总是从当前插值出发，不会跳变。
// Update 是当前值的唯一写入者，帧循环只读取 Current* 的最新值。
type EnvironmentTweenController struct {
	colors     components.ColorTweenComponent
	activation components.ScalarTweenComponent
	ease       utils.EaseFunc
	stopped    bool
}

// NewEnvironmentTweenController 创建控制器，初始颜色为 primary/secondary，激活透明度为 0
func NewEnvironmentTweenController(primary, secondary color.NRGBA) *EnvironmentTweenController {
	return &EnvironmentTweenController{
		colors: components.ColorTweenComponent{
			FromPrimary:      primary,
			FromSecondary:    secondary,
			ToPrimary:        primary,
			ToSecondary:      secondary,
			CurrentPrimary:   primary,
			CurrentSecondary: secondary,
			Duration:         config.ColorTweenDuration,
		},
		activation: components.ScalarTweenComponent{
			Duration: config.ActivationTweenDuration,
		},
		ease: utils.EaseOutQuad,
	}
}

// SetEase 替换缓动曲线（默认 EaseOutQuad）
func (tc *EnvironmentTweenController) SetEase(ease utils.EaseFunc) {
	if ease != nil {
		tc.ease = ease
	}
}

// RetargetColors 将渐变色过渡到新目标
// 目标与正在前往的目标相同时不重新计时
func (tc *EnvironmentTweenController) RetargetColors(primary, secondary color.NRGBA) {
	if tc.stopped {
		return
	}
	c := &tc.colors
	if c.ToPrimary == primary && c.ToSecondary == secondary {
		return
	}
	c.FromPrimary = c.CurrentPrimary
	c.FromSecondary = c.CurrentSecondary
	c.ToPrimary = primary
	c.ToSecondary = secondary
	c.Elapsed = 0
	c.Active = true
}

// RetargetActivation 将激活透明度过渡到 1（activated）或 0
func (tc *EnvironmentTweenController) RetargetActivation(activated bool) {
	if tc.stopped {
		return
	}
	target := 0.0
	if activated {
		target = 1.0
	}
	a := &tc.activation
	if a.To == target && (a.Active || a.Current == target) {
		return
	}
	a.From = a.Current
	a.To = target
	a.Elapsed = 0
	a.Active = true
}

// Update 推进两条缓动 dt 秒
func (tc *EnvironmentTweenController) Update(dt float64) {
	if tc.stopped || dt <= 0 {
		return
	}

	if c := &tc.colors; c.Active {
		c.Elapsed += dt
		t := tc.ease(progress(c.Elapsed, c.Duration))
		c.CurrentPrimary = utils.LerpColor(c.FromPrimary, c.ToPrimary, t)
		c.CurrentSecondary = utils.LerpColor(c.FromSecondary, c.ToSecondary, t)
		if finished(c.Elapsed, c.Duration) {
			c.CurrentPrimary = c.ToPrimary
			c.CurrentSecondary = c.ToSecondary
			c.Active = false
		}
	}

	if a := &tc.activation; a.Active {
		a.Elapsed += dt
		t := tc.ease(progress(a.Elapsed, a.Duration))
		a.Current = utils.Clamp01(utils.Lerp(a.From, a.To, t))
		if finished(a.Elapsed, a.Duration) {
			a.Current = a.To
			a.Active = false
		}
	}
}

// Stop 取消进行中的缓动，之后 Update/Retarget 不再修改任何状态
func (tc *EnvironmentTweenController) Stop() {
	if tc.stopped {
		return
	}
	tc.stopped = true
	tc.colors.Active = false
	tc.activation.Active = false
	log.Printf("[TweenController] Stopped (activation=%.2f)", tc.activation.Current)
}

// Stopped 是否已停止
func (tc *EnvironmentTweenController) Stopped() bool {
	return tc.stopped
}

// CurrentPrimary 当前渐变顶部颜色
func (tc *EnvironmentTweenController) CurrentPrimary() color.NRGBA {
	return tc.colors.CurrentPrimary
}

// CurrentSecondary 当前渐变底部颜色
func (tc *EnvironmentTweenController) CurrentSecondary() color.NRGBA {
	return tc.colors.CurrentSecondary
}

// CurrentActivationOpacity 当前激活透明度 ∈ [0, 1]
func (tc *EnvironmentTweenController) CurrentActivationOpacity() float64 {
	return tc.activation.Current
}

// ColorsInFlight 渐变色是否仍在过渡
func (tc *EnvironmentTweenController) ColorsInFlight() bool {
	return tc.colors.Active
}

// ActivationInFlight 激活透明度是否仍在过渡
func (tc *EnvironmentTweenController) ActivationInFlight() bool {
	return tc.activation.Active
}

// finishEpsilon 吸收按帧累加 dt 产生的浮点误差
const finishEpsilon = 1e-9

func finished(elapsed, duration float64) bool {
	return elapsed >= duration-finishEpsilon
}

func progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(elapsed / duration)
}
