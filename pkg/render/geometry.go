package render

import "math"

type point struct {
	X, Y float64
}

// segmentsFor 根据半径选择多边形近似的边数
func segmentsFor(radius float64) int {
	n := int(radius*1.5) + 8
	if n < 12 {
		return 12
	}
	if n > 64 {
		return 64
	}
	return n
}

// ellipsePoints 生成旋转椭圆的外轮廓顶点（逆时针，不闭合）
func ellipsePoints(dst []point, cx, cy, rx, ry, rotation float64) []point {
	dst = dst[:0]
	n := segmentsFor(math.Max(rx, ry))
	sinR, cosR := math.Sincos(rotation)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ex := rx * math.Cos(theta)
		ey := ry * math.Sin(theta)
		dst = append(dst, point{
			X: cx + ex*cosR - ey*sinR,
			Y: cy + ex*sinR + ey*cosR,
		})
	}
	return dst
}

// effectiveAlpha 把颜色自带 alpha 与整体透明度合成到 [0,1]
func effectiveAlpha(a uint8, opacity float64) float64 {
	v := float64(a) / 255 * opacity
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
