package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteTexture 懒加载 1×1 纯白贴图（取 3×3 图像的中心像素，避免边缘采样溢出）
func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// EbitenCanvas 在 ebiten 屏幕图像上绘制
//
// 所有图元都通过 DrawTriangles + 纯白贴图 + 顶点颜色实现：
// 渐变是 4 顶点矩形，椭圆/圆/径向衰减是以中心为公共顶点的三角扇。
// 顶点与索引缓冲在帧间复用，避免每帧分配。
type EbitenCanvas struct {
	target   *ebiten.Image
	width    int
	height   int
	vertices []ebiten.Vertex
	indices  []uint16
	outline  []point
}

// NewEbitenCanvas 创建画布，绘制前需要 SetTarget
func NewEbitenCanvas() *EbitenCanvas {
	return &EbitenCanvas{
		vertices: make([]ebiten.Vertex, 0, 128),
		indices:  make([]uint16, 0, 384),
		outline:  make([]point, 0, 64),
	}
}

// SetTarget 绑定本帧的绘制目标（ebiten 每次 Draw 传入的 screen）
func (c *EbitenCanvas) SetTarget(screen *ebiten.Image) {
	c.target = screen
}

// SetSize 记录表面尺寸；实际像素尺寸由 ebiten Layout 决定
func (c *EbitenCanvas) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Size 返回最近一次 SetSize 的尺寸
func (c *EbitenCanvas) Size() (int, int) {
	return c.width, c.height
}

// FillVerticalGradient 绘制整屏竖直渐变
func (c *EbitenCanvas) FillVerticalGradient(width, height float64, top, bottom color.NRGBA) {
	if c.target == nil {
		return
	}
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]

	w, h := float32(width), float32(height)
	c.vertices = append(c.vertices,
		vertex(0, 0, top, float32(top.A)/255),
		vertex(w, 0, top, float32(top.A)/255),
		vertex(0, h, bottom, float32(bottom.A)/255),
		vertex(w, h, bottom, float32(bottom.A)/255),
	)
	c.indices = append(c.indices, 0, 1, 2, 1, 3, 2)
	c.flush()
}

// FillRadialFalloff 三角扇：中心顶点带完整 alpha，外圈顶点 alpha 为 0
// 三角形内的线性插值正好得到随半径线性衰减的效果
func (c *EbitenCanvas) FillRadialFalloff(cx, cy, radius float64, col color.NRGBA, opacity float64) {
	alpha := effectiveAlpha(col.A, opacity)
	if c.target == nil || alpha <= 0 || radius <= 0 {
		return
	}
	c.outline = ellipsePoints(c.outline, cx, cy, radius, radius, 0)
	c.fan(cx, cy, col, float32(alpha), 0)
}

// FillEllipse 绘制旋转椭圆
func (c *EbitenCanvas) FillEllipse(cx, cy, rx, ry, rotation float64, col color.NRGBA, opacity float64) {
	alpha := effectiveAlpha(col.A, opacity)
	if c.target == nil || alpha <= 0 || rx <= 0 || ry <= 0 {
		return
	}
	c.outline = ellipsePoints(c.outline, cx, cy, rx, ry, rotation)
	c.fan(cx, cy, col, float32(alpha), float32(alpha))
}

// FillCircle 绘制实心圆
func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, opacity float64) {
	c.FillEllipse(cx, cy, r, r, 0, col, opacity)
}

// fan 以 (cx,cy) 为中心、c.outline 为外圈构建三角扇并提交
func (c *EbitenCanvas) fan(cx, cy float64, col color.NRGBA, centerAlpha, rimAlpha float32) {
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]

	c.vertices = append(c.vertices, vertex(float32(cx), float32(cy), col, centerAlpha))
	for _, p := range c.outline {
		c.vertices = append(c.vertices, vertex(float32(p.X), float32(p.Y), col, rimAlpha))
	}

	n := uint16(len(c.outline))
	for i := uint16(0); i < n; i++ {
		next := (i+1)%n + 1
		c.indices = append(c.indices, 0, i+1, next)
	}
	c.flush()
}

func (c *EbitenCanvas) flush() {
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	c.target.DrawTriangles(c.vertices, c.indices, whiteTexture(), op)
}

// vertex 构建一个采样白色像素的顶点，颜色为直通 alpha
func vertex(x, y float32, col color.NRGBA, alpha float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(col.R) / 255,
		ColorG: float32(col.G) / 255,
		ColorB: float32(col.B) / 255,
		ColorA: alpha,
	}
}
