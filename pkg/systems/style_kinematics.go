package systems

import (
	"image/color"
	"math"

	"github.com/decker502/herbscape/pkg/components"
	"github.com/decker502/herbscape/pkg/render"
	"github.com/decker502/herbscape/pkg/types"
)

// RandomSource 粒子初始化使用的随机数来源
// *math/rand.Rand 满足该接口；引擎使用未固定种子的实例，画面不可复现
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// Style 动画风格的运动学与绘制规则
//
// 四种风格是封闭集合，每种风格各自实现初始化、每 tick 扰动和绘制，
// 新增风格只需要新增一个实现并登记到 StyleFor。
type Style interface {
	// Tag 返回风格标签
	Tag() types.AnimationStyle

	// Initialize 根据当前表面尺寸生成新粒子的初始状态（Age=0）
	Initialize(bounds Bounds, rng RandomSource) components.ParticleComponent

	// Perturb 在位移之后原地修改粒子速度（无扰动的风格为空操作）
	Perturb(p *components.ParticleComponent)

	// Paint 以给定颜色和最终透明度绘制粒子
	Paint(canvas render.Canvas, p *components.ParticleComponent, c color.NRGBA, opacity float64)
}

// 粒子寿命范围（tick），所有风格共用
const (
	minLifespan   = 200
	lifespanRange = 400
)

// Leaf sway 参数
const (
	leafSwayFrequency = 0.02 // 水平速度 = sin(age × 0.02) × 0.5
	leafSwayAmplitude = 0.5
	leafSpinRate      = 0.01 // 旋转角 = age × 0.01 弧度
	leafAspect        = 0.5  // 竖直半径 = 0.5 × 水平半径
)

var (
	mist          Style = mistStyle{}
	leafSway      Style = leafSwayStyle{}
	floatingDust  Style = particlesStyle{}
	verticalDrift Style = verticalDriftStyle{}
)

// StyleFor 返回风格标签对应的实现，未知标签回退为薄雾
func StyleFor(tag types.AnimationStyle) Style {
	switch tag {
	case types.StyleLeafSway:
		return leafSway
	case types.StyleParticles:
		return floatingDust
	case types.StyleVerticalDrift:
		return verticalDrift
	default:
		return mist
	}
}

// randRange 返回 [min, max) 内的均匀随机数
func randRange(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// baseParticle 所有风格共用的默认值：全屏随机位置与随机寿命
func baseParticle(bounds Bounds, rng RandomSource) components.ParticleComponent {
	return components.ParticleComponent{
		X:        rng.Float64() * bounds.Width,
		Y:        rng.Float64() * bounds.Height,
		Lifespan: minLifespan + rng.Intn(lifespanRange),
	}
}

// mistStyle 薄雾：大而淡，从底边外缓慢上升，径向柔光绘制
type mistStyle struct{}

func (mistStyle) Tag() types.AnimationStyle { return types.StyleMist }

func (mistStyle) Initialize(bounds Bounds, rng RandomSource) components.ParticleComponent {
	p := baseParticle(bounds, rng)
	p.Size = randRange(rng, 20, 80)
	p.VelocityX = randRange(rng, -0.15, 0.15)
	p.VelocityY = -randRange(rng, 0.2, 0.7)
	p.BaseOpacity = randRange(rng, 0.02, 0.08)
	p.Y = bounds.Height + p.Size
	return p
}

func (mistStyle) Perturb(*components.ParticleComponent) {}

func (mistStyle) Paint(canvas render.Canvas, p *components.ParticleComponent, c color.NRGBA, opacity float64) {
	canvas.FillRadialFalloff(p.X, p.Y, p.Size, c, opacity)
}

// leafSwayStyle 落叶：从顶边外缓慢下落，水平速度按正弦摆动，椭圆叶片缓慢翻转
type leafSwayStyle struct{}

func (leafSwayStyle) Tag() types.AnimationStyle { return types.StyleLeafSway }

func (leafSwayStyle) Initialize(bounds Bounds, rng RandomSource) components.ParticleComponent {
	p := baseParticle(bounds, rng)
	p.Size = randRange(rng, 3, 11)
	p.VelocityX = math.Sin(rng.Float64()*math.Pi*2) * 0.4
	p.VelocityY = randRange(rng, 0.1, 0.4)
	p.BaseOpacity = randRange(rng, 0.05, 0.2)
	p.Y = -p.Size
	return p
}

func (leafSwayStyle) Perturb(p *components.ParticleComponent) {
	p.VelocityX = LeafSwayVelocity(p.Age)
}

func (leafSwayStyle) Paint(canvas render.Canvas, p *components.ParticleComponent, c color.NRGBA, opacity float64) {
	canvas.FillEllipse(p.X, p.Y, p.Size, p.Size*leafAspect, float64(p.Age)*leafSpinRate, c, opacity)
}

// LeafSwayVelocity 落叶在给定年龄时的水平速度
func LeafSwayVelocity(age int) float64 {
	return math.Sin(float64(age)*leafSwayFrequency) * leafSwayAmplitude
}

// particlesStyle 浮尘：细小圆点，全屏任意位置出生，双轴随机漂移
type particlesStyle struct{}

func (particlesStyle) Tag() types.AnimationStyle { return types.StyleParticles }

func (particlesStyle) Initialize(bounds Bounds, rng RandomSource) components.ParticleComponent {
	p := baseParticle(bounds, rng)
	p.Size = randRange(rng, 1, 4)
	p.VelocityX = randRange(rng, -0.4, 0.4)
	p.VelocityY = randRange(rng, -0.4, 0.4)
	p.BaseOpacity = randRange(rng, 0.05, 0.25)
	return p
}

func (particlesStyle) Perturb(*components.ParticleComponent) {}

func (particlesStyle) Paint(canvas render.Canvas, p *components.ParticleComponent, c color.NRGBA, opacity float64) {
	canvas.FillCircle(p.X, p.Y, p.Size, c, opacity)
}

// verticalDriftStyle 垂直上升：细小圆点从底边外快速上升，水平几乎不动
type verticalDriftStyle struct{}

func (verticalDriftStyle) Tag() types.AnimationStyle { return types.StyleVerticalDrift }

func (verticalDriftStyle) Initialize(bounds Bounds, rng RandomSource) components.ParticleComponent {
	p := baseParticle(bounds, rng)
	p.Size = randRange(rng, 1, 5)
	p.VelocityX = randRange(rng, -0.075, 0.075)
	p.VelocityY = -randRange(rng, 0.3, 1.1)
	p.BaseOpacity = randRange(rng, 0.05, 0.2)
	p.Y = bounds.Height + p.Size
	return p
}

func (verticalDriftStyle) Perturb(*components.ParticleComponent) {}

func (verticalDriftStyle) Paint(canvas render.Canvas, p *components.ParticleComponent, c color.NRGBA, opacity float64) {
	canvas.FillCircle(p.X, p.Y, p.Size, c, opacity)
}
