// Package render 提供背景场景的绘制表面抽象
//
// Canvas 是引擎唯一的输出：渐变底色与各风格粒子都通过它绘制。
// EbitenCanvas 在窗口中逐帧绘制，ImageCanvas 在内存图像上软件光栅化
// （用于离屏渲染与测试）。
package render

import (
	"errors"
	"image/color"
)

// ErrNoContext 绘制表面无法提供 2D 绘制上下文
var ErrNoContext = errors.New("render: drawing context unavailable")

// Canvas 2D 绘制上下文
//
// 所有颜色都是直通 alpha 的 NRGBA；opacity 是额外的整体透明度乘数，
// 最终 alpha = color.A/255 × opacity。
type Canvas interface {
	// SetSize 设置表面像素尺寸（视口变化时调用）
	SetSize(width, height int)

	// FillVerticalGradient 用 top→bottom 的竖直线性渐变覆盖 [0,width]×[0,height]
	// 每帧第一笔，同时起到清屏作用
	FillVerticalGradient(width, height float64, top, bottom color.NRGBA)

	// FillRadialFalloff 在边长 2×radius 的方框内绘制径向衰减：中心不透明，边缘全透明
	FillRadialFalloff(cx, cy, radius float64, c color.NRGBA, opacity float64)

	// FillEllipse 绘制以 (cx,cy) 为中心、旋转 rotation 弧度的实心椭圆
	FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA, opacity float64)

	// FillCircle 绘制实心圆
	FillCircle(cx, cy, r float64, c color.NRGBA, opacity float64)
}
