package components

import "image/color"

// ScalarTweenComponent 单个标量的缓动过渡状态
//
// 每次重新设定目标时 From 取当前插值，Elapsed 清零，
// 因此中途改变目标不会产生跳变。
type ScalarTweenComponent struct {
	From     float64
	To       float64
	Current  float64
	Elapsed  float64 // 已经过的时间（秒）
	Duration float64 // 总时长（秒）
	Active   bool    // 是否仍在过渡中
}

// ColorTweenComponent 渐变双色的缓动过渡状态
// Primary 与 Secondary 共用同一条时间线
type ColorTweenComponent struct {
	FromPrimary   color.NRGBA
	FromSecondary color.NRGBA
	ToPrimary     color.NRGBA
	ToSecondary   color.NRGBA

	CurrentPrimary   color.NRGBA
	CurrentSecondary color.NRGBA

	Elapsed  float64
	Duration float64
	Active   bool
}
