package utils

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor 解析环境配置中的颜色字符串
//
// 支持的格式：
//   - "#rgb" / "#rrggbb"（通过 go-colorful 解析）
//   - "#rrggbbaa"
//   - "rgb(r, g, b)" / "rgba(r, g, b, a)"，r/g/b ∈ [0,255]，a ∈ [0,1]
//
// 返回直通透明度（非预乘）的 NRGBA。
// 解析失败时返回全透明黑色和错误；调用方可以忽略错误，画面只会变色而不会崩溃。
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHexColor(lower)
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		return parseFunctionalColor(lower)
	case lower == "transparent":
		return color.NRGBA{}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color format: %q", s)
}

// MustParseColor 解析颜色，失败时返回全透明黑色
func MustParseColor(s string) color.NRGBA {
	c, _ := ParseColor(s)
	return c
}

func parseHexColor(s string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunctionalColor(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") || open < 0 {
		return color.NRGBA{}, fmt.Errorf("malformed color function: %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("color %q needs 3 or 4 components, got %d", s, len(parts))
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid channel %d in %q: %w", i, s, err)
		}
		channels[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}

	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(math.Round(Clamp01(a) * 255))
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// LerpColor 在两个颜色之间逐通道插值（含 alpha）
// RGB 通道使用 go-colorful 的 BlendRgb，与逐分量线性插值等价
func LerpColor(from, to color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	a := toColorful(from)
	b := toColorful(to)
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return color.NRGBA{
		R: r,
		G: g,
		B: bl,
		A: uint8(math.Round(Lerp(float64(from.A), float64(to.A), t))),
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
