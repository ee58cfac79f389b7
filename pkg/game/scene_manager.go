package game

import (
	"log"

	"github.com/decker502/herbscape/pkg/render"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	width        int
	height       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is torn down if it supports it, and the new scene receives
// the last known viewport size.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if prev, ok := sm.currentScene.(Teardownable); ok {
		prev.Teardown()
		log.Printf("[SceneManager] 旧场景已拆除")
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene onto the canvas.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(canvas render.Canvas) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(canvas)
	}
}

// Resize 记录视口尺寸并转发给当前场景
func (sm *SceneManager) Resize(width, height int) {
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Shutdown 拆除当前场景（程序退出时调用）
func (sm *SceneManager) Shutdown() {
	if s, ok := sm.currentScene.(Teardownable); ok {
		s.Teardown()
		log.Printf("[SceneManager] 当前场景已拆除")
	}
}
