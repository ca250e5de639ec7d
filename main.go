package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/bottlefx/pkg/app"
	"github.com/decker502/bottlefx/pkg/embedded"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag   = flag.String("config", "", "Scene config file (default: embedded data/scene.yaml)")
	seedFlag     = flag.Int64("seed", 0, "Override the particle seed (0 keeps the config value)")
	progressFlag = flag.Float64("progress", 0, "Initial scroll progress in [0, 1]")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在加载配置之前）
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:   *verboseFlag,
		ScenePath: *configFlag,
		Seed:      *seedFlag,
		Progress:  *progressFlag,
	})
	if err != nil {
		// NewApp 可能已经关闭了日志输出
		fmt.Fprintf(os.Stderr, "Failed to start viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Bottle Spill Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
