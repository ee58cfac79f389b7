package config

// 背景场景配置常量
// 本文件定义了粒子引擎与过渡动画的调参值

// Particle pool (粒子池配置)
const (
	// MaxParticles 是粒子池的硬上限
	// 长时间激活时防止内存和 CPU 无限增长
	MaxParticles = 80

	// ActivationThreshold 激活透明度高于此值时才生成/更新/绘制粒子
	ActivationThreshold = 0.01

	// BoundsMarginFactor 越界判定的外扩系数（外扩 2×size）
	BoundsMarginFactor = 2.0
)

// Tween durations (过渡时长，单位：秒)
const (
	// ColorTweenDuration 渐变色过渡时长
	ColorTweenDuration = 1.8

	// ActivationTweenDuration 激活透明度过渡时长
	ActivationTweenDuration = 1.2
)

// Dormant palette (休眠默认配色)
// 未选择任何环境时使用
const (
	DormantPrimaryColor   = "#0a0a0a"
	DormantSecondaryColor = "#111111"

	// DefaultParticleColor 环境未提供粒子颜色时的回退值
	DefaultParticleColor = "rgba(255,255,255,0.05)"
)

// Frame timing (帧率配置)
const (
	// TicksPerSecond 逻辑帧率，与 ebiten 默认 TPS 一致
	TicksPerSecond = 60

	// DefaultWindowWidth 默认窗口宽度
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 默认窗口高度
	DefaultWindowHeight = 800
)
