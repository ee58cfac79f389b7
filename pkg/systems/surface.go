package systems

import (
	"log"
	"sync/atomic"
)

// Bounds 一次 tick 内使用的表面尺寸快照（像素）
type Bounds struct {
	Width  float64
	Height float64
}

// ContainsExpanded 判断点是否位于四周各外扩 margin 的表面矩形内（开区间）
func (b Bounds) ContainsExpanded(x, y, margin float64) bool {
	return x > -margin && x < b.Width+margin &&
		y > -margin && y < b.Height+margin
}

// Surface 绘制表面的像素尺寸
//
// 宽高打包在同一个原子字中：Resize 可能来自任意 goroutine（视口事件），
// 帧循环每 tick 通过 Bounds() 读取一次，保证宽高来自同一次 Resize。
// 调整尺寸不会影响已有粒子，只影响之后生成的粒子与越界判定。
type Surface struct {
	dims atomic.Uint64
}

// NewSurface 创建指定初始尺寸的表面
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize 设置表面尺寸，返回尺寸是否发生变化
// 负值按 0 处理
func (s *Surface) Resize(width, height int) bool {
	next := pack(width, height)
	prev := s.dims.Swap(next)
	if prev == next {
		return false
	}
	w, h := unpack(next)
	log.Printf("[Surface] Resize: %dx%d", w, h)
	return true
}

// Size 返回当前宽高
func (s *Surface) Size() (int, int) {
	return unpack(s.dims.Load())
}

// Bounds 返回当前尺寸的浮点快照
func (s *Surface) Bounds() Bounds {
	w, h := s.Size()
	return Bounds{Width: float64(w), Height: float64(h)}
}

func pack(width, height int) uint64 {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return uint64(uint32(width))<<32 | uint64(uint32(height))
}

func unpack(v uint64) (int, int) {
	return int(uint32(v >> 32)), int(uint32(v))
}
