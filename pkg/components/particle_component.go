package components

// ParticleComponent represents a single live particle of the backdrop.
//
// Particles are owned exclusively by the ParticlePool, which creates them from a
// style's initial parameters, advances them every tick and evicts them once they
// expire or drift off the surface.
//
// This is a pure data component - it contains no methods.
type ParticleComponent struct {
	// Position (像素坐标，表面空间)
	X float64
	Y float64

	// Size 半径或半边长（像素），范围取决于动画风格
	Size float64

	// Velocity (每 tick 位移，像素)
	// 摆动类风格每 tick 会原地改写 VelocityX
	VelocityX float64
	VelocityY float64

	// BaseOpacity 创建时确定的基础透明度，∈ (0, 1)
	BaseOpacity float64

	// Lifecycle (生命周期，单位 tick)
	Age      int // 从 0 开始，每 tick +1
	Lifespan int // Age 达到该值的那一 tick 被移除

	// Fade 当前 tick 的淡入淡出系数 ∈ [0, 1]，由 ParticlePool.Tick 计算
	Fade float64
}
