package utils

import "math"

// 缓动函数
//
// 所有函数接受进度 t ∈ [0, 1]，返回缓动后的进度 ∈ [0, 1]。
// 超出范围的输入会先被夹紧，保证插值结果不会越过起点或终点。
//
// 参考：https://easings.net/

// EaseFunc 缓动函数签名
type EaseFunc func(t float64) float64

// EaseLinear 线性（匀速）
func EaseLinear(t float64) float64 {
	return Clamp01(t)
}

// EaseOutQuad 二次方缓出（开始快，结束慢）
// 背景过渡默认使用该曲线
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出，比 Quad 收尾更慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutQuad 二次方缓入缓出
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
