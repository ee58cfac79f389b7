package systems

import "image/color"

// paintCall 记录一次图元绘制
type paintCall struct {
	kind     string
	x, y     float64
	rx, ry   float64
	rotation float64
	color    color.NRGBA
	opacity  float64
}

// recordingCanvas 记录所有绘制调用的假画布
type recordingCanvas struct {
	sizes     [][2]int
	gradients int
	top       color.NRGBA
	bottom    color.NRGBA
	gradientW float64
	gradientH float64
	calls     []paintCall
}

func (c *recordingCanvas) SetSize(w, h int) {
	c.sizes = append(c.sizes, [2]int{w, h})
}

func (c *recordingCanvas) FillVerticalGradient(w, h float64, top, bottom color.NRGBA) {
	c.gradients++
	c.gradientW, c.gradientH = w, h
	c.top, c.bottom = top, bottom
}

func (c *recordingCanvas) FillRadialFalloff(cx, cy, r float64, col color.NRGBA, opacity float64) {
	c.calls = append(c.calls, paintCall{kind: "radial", x: cx, y: cy, rx: r, ry: r, color: col, opacity: opacity})
}

func (c *recordingCanvas) FillEllipse(cx, cy, rx, ry, rot float64, col color.NRGBA, opacity float64) {
	c.calls = append(c.calls, paintCall{kind: "ellipse", x: cx, y: cy, rx: rx, ry: ry, rotation: rot, color: col, opacity: opacity})
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, opacity float64) {
	c.calls = append(c.calls, paintCall{kind: "circle", x: cx, y: cy, rx: r, ry: r, color: col, opacity: opacity})
}

func (c *recordingCanvas) reset() {
	c.gradients = 0
	c.calls = c.calls[:0]
}
