package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/decker502/herbscape/pkg/utils"
)

// ImageCanvas 基于内存 RGBA 图像的软件画布
//
// 圆与椭圆通过 golang.org/x/image/vector 光栅化为局部遮罩后合成，
// 径向衰减逐像素计算。用于离屏渲染（cmd/render_frames）和测试。
type ImageCanvas struct {
	img     *image.RGBA
	rast    *vector.Rasterizer
	outline []point
}

// NewImageCanvas 创建指定尺寸的画布
// 尺寸非正时无法提供绘制上下文，返回 ErrNoContext
func NewImageCanvas(width, height int) (*ImageCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrNoContext, width, height)
	}
	return &ImageCanvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		rast: vector.NewRasterizer(1, 1),
	}, nil
}

// Image 返回底层图像（与画布共享内存）
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// SetSize 调整画布尺寸，内容被丢弃（与 HTML canvas 改尺寸的行为一致）
func (c *ImageCanvas) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b := c.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// FillVerticalGradient 逐行填充竖直渐变，使用 draw.Src 覆盖上一帧
func (c *ImageCanvas) FillVerticalGradient(width, height float64, top, bottom color.NRGBA) {
	rows := int(math.Ceil(height))
	cols := int(math.Ceil(width))
	if rows <= 0 || cols <= 0 {
		return
	}
	row := image.NewUniform(top)
	for y := 0; y < rows; y++ {
		t := (float64(y) + 0.5) / height
		row.C = utils.LerpColor(top, bottom, t)
		draw.Draw(c.img, image.Rect(0, y, cols, y+1), row, image.Point{}, draw.Src)
	}
}

// FillRadialFalloff 径向线性衰减：alpha 从中心的 a 线性降到半径处的 0
func (c *ImageCanvas) FillRadialFalloff(cx, cy, radius float64, col color.NRGBA, opacity float64) {
	alpha := effectiveAlpha(col.A, opacity)
	if alpha <= 0 || radius <= 0 {
		return
	}

	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	).Intersect(c.img.Bounds())

	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Sqrt(dx*dx+dy*dy) / radius
			if d >= 1 {
				continue
			}
			c.blendPixel(x, y, col, alpha*(1-d))
		}
	}
}

// FillEllipse 光栅化旋转椭圆
func (c *ImageCanvas) FillEllipse(cx, cy, rx, ry, rotation float64, col color.NRGBA, opacity float64) {
	alpha := effectiveAlpha(col.A, opacity)
	if alpha <= 0 || rx <= 0 || ry <= 0 {
		return
	}
	c.outline = ellipsePoints(c.outline, cx, cy, rx, ry, rotation)
	c.fillPolygon(c.outline, col, alpha)
}

// FillCircle 光栅化实心圆
func (c *ImageCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, opacity float64) {
	c.FillEllipse(cx, cy, r, r, 0, col, opacity)
}

// fillPolygon 在多边形包围盒大小的遮罩上光栅化，再以 Over 合成到画布
func (c *ImageCanvas) fillPolygon(pts []point, col color.NRGBA, alpha float64) {
	if len(pts) < 3 {
		return
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	clipped := box.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}

	w, h := box.Dx(), box.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	c.rast.Reset(w, h)
	c.rast.DrawOp = draw.Src

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.rast.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		c.rast.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	c.rast.ClosePath()
	c.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(math.Round(alpha * 255))})
	draw.DrawMask(c.img, clipped, src, image.Point{}, mask, clipped.Min.Sub(box.Min), draw.Over)
}

// blendPixel 以 source-over 方式把 (col, alpha) 合成到预乘 RGBA 像素
func (c *ImageCanvas) blendPixel(x, y int, col color.NRGBA, alpha float64) {
	dst := c.img.RGBAAt(x, y)
	inv := 1 - alpha
	c.img.SetRGBA(x, y, color.RGBA{
		R: uint8(math.Round(float64(col.R)*alpha + float64(dst.R)*inv)),
		G: uint8(math.Round(float64(col.G)*alpha + float64(dst.G)*inv)),
		B: uint8(math.Round(float64(col.B)*alpha + float64(dst.B)*inv)),
		A: uint8(math.Round(255*alpha + float64(dst.A)*inv)),
	})
}
