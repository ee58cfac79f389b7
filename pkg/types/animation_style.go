// Package types 定义共享的基础类型
package types

// AnimationStyle 定义背景环境的动画风格标签
// 取值与 data/environments.yaml 中的 animationType 字段一致
type AnimationStyle string

const (
	// StyleMist 薄雾：大而淡的柔光团，从底部缓慢上升
	StyleMist AnimationStyle = "mist"
	// StyleLeafSway 落叶摇摆：椭圆叶片从顶部飘落，左右摆动并缓慢翻转
	StyleLeafSway AnimationStyle = "leafSway"
	// StyleParticles 浮尘：细小圆点在全屏随机漂移
	StyleParticles AnimationStyle = "particles"
	// StyleVerticalDrift 垂直上升：细小圆点从底部快速上升
	StyleVerticalDrift AnimationStyle = "verticalDrift"
)

// AllAnimationStyles 返回全部已知风格（顺序固定）
func AllAnimationStyles() []AnimationStyle {
	return []AnimationStyle{StyleMist, StyleLeafSway, StyleParticles, StyleVerticalDrift}
}

// IsValid 检查风格标签是否属于已知集合
func (s AnimationStyle) IsValid() bool {
	switch s {
	case StyleMist, StyleLeafSway, StyleParticles, StyleVerticalDrift:
		return true
	}
	return false
}

func (s AnimationStyle) String() string {
	return string(s)
}
