// Package main renders the backdrop headlessly and writes PNG frames.
//
// Usage:
//
//	go run ./cmd/render_frames [flags]
//
// Flags:
//
//	--config <path>   Environment config (default data/environments.yaml)
//	--env <slug>      Environment to render ("none" renders the dormant palette)
//	--ticks <n>       Number of ticks to simulate (60 ticks = 1s)
//	--every <n>       Write one frame every n ticks
//	--out <dir>       Output directory
//	--seed <n>        Random seed for particle spawning
//	--inactive        Render without activating the scene
//	--deactivate-at   Tick at which the scene is deactivated (0 = never)
//	--width/--height  Frame size
//	--verbose         Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/decker502/herbscape/pkg/config"
	"github.com/decker502/herbscape/pkg/render"
	"github.com/decker502/herbscape/pkg/scenes"
	"github.com/decker502/herbscape/pkg/systems"
)

var (
	configFlag       = flag.String("config", "data/environments.yaml", "Environment config path")
	envFlag          = flag.String("env", "", "Environment slug (empty = config default, \"none\" = dormant)")
	ticksFlag        = flag.Int("ticks", 240, "Number of ticks to simulate")
	everyFlag        = flag.Int("every", 30, "Write one frame every n ticks")
	outFlag          = flag.String("out", "frames", "Output directory")
	seedFlag         = flag.Int64("seed", 1, "Random seed")
	inactiveFlag     = flag.Bool("inactive", false, "Do not activate the scene")
	deactivateAtFlag = flag.Int("deactivate-at", 0, "Tick at which to deactivate (0 = never)")
	widthFlag        = flag.Int("width", 960, "Frame width")
	heightFlag       = flag.Int("height", 540, "Frame height")
	verboseFlag      = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	written, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "render_frames: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d frames to %s\n", written, *outFlag)
}

func run() (int, error) {
	if *everyFlag <= 0 {
		return 0, fmt.Errorf("--every must be positive, got %d", *everyFlag)
	}

	environments, err := config.LoadEnvironmentConfig(*configFlag)
	if err != nil {
		return 0, err
	}

	var env *config.Environment
	switch *envFlag {
	case "":
		env = environments.DefaultEnvironment()
	case "none":
	default:
		if env = environments.Find(*envFlag); env == nil {
			return 0, fmt.Errorf("unknown environment %q", *envFlag)
		}
	}

	canvas, err := render.NewImageCanvas(*widthFlag, *heightFlag)
	if err != nil {
		return 0, err
	}

	pool := systems.NewParticlePoolWithSource(rand.New(rand.NewSource(*seedFlag)))
	scene := scenes.NewBackdropSceneWithPool(*widthFlag, *heightFlag, pool)
	if err := scene.Mount(canvas); err != nil {
		return 0, err
	}
	defer scene.Teardown()

	scene.SelectEnvironment(env)
	scene.SetActivated(!*inactiveFlag)

	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	dt := 1.0 / config.TicksPerSecond
	for tick := 1; tick <= *ticksFlag; tick++ {
		if *deactivateAtFlag > 0 && tick == *deactivateAtFlag {
			scene.SetActivated(false)
		}

		scene.Update(dt)
		scene.Draw(canvas)

		if tick%*everyFlag != 0 {
			continue
		}
		path := filepath.Join(*outFlag, fmt.Sprintf("frame_%05d.png", tick))
		if err := writePNG(path, canvas.Image()); err != nil {
			return written, err
		}
		written++
		log.Printf("[RenderFrames] tick %d: %d particles, activation %.3f -> %s",
			tick, scene.ParticleCount(), scene.ActivationOpacity(), path)
	}
	return written, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
