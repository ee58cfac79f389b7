package game

import "github.com/decker502/herbscape/pkg/render"

// Scene represents one full-screen scene driven by the application loop.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw paints the scene onto the canvas.
	Draw(canvas render.Canvas)
}

// Resizable 是可选接口，视口尺寸变化时由 SceneManager 转发
type Resizable interface {
	Resize(width, height int)
}

// Teardownable 是可选接口，场景被替换或程序退出时调用
//
// 实现此接口的场景会在以下时机被调用 Teardown()：
//   - SceneManager.SwitchTo 切换到其他场景
//   - 窗口关闭或按下退出键
//
// Teardown 之后场景不再推进也不再绘制，重复调用无副作用。
type Teardownable interface {
	Teardown()
}
