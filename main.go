// Package main runs the herb backdrop in a resizable window.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--env <slug>     Start with the given environment ("none" starts dormant)
//	--inactive       Start deactivated (gradient only)
//	--verbose        Enable verbose logging (default off)
//	--width/--height Initial window size
//
// Controls:
//
//	1-6        Select environment
//	Space      Toggle activation
//	Backspace  Deselect environment (dormant palette)
//	F11        Toggle fullscreen
//	Escape     Quit
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/decker502/herbscape/pkg/app"
	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	envFlag      = flag.String("env", "", "Environment slug to start with (\"none\" for the dormant palette)")
	inactiveFlag = flag.Bool("inactive", false, "Start deactivated")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	widthFlag    = flag.Int("width", config.DefaultWindowWidth, "Initial window width")
	heightFlag   = flag.Int("height", config.DefaultWindowHeight, "Initial window height")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	backdrop, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		Environment: *envFlag,
		Inactive:    *inactiveFlag,
		Width:       *widthFlag,
		Height:      *heightFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Herbscape")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(config.TicksPerSecond)
	if backdrop.Preferences().GetPreferences().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(backdrop); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	backdrop.Shutdown()
}
