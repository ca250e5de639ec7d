// Package main provides a terminal tool for inspecting the scroll timeline of
// the bottle scene.
//
// Usage:
//
//	go run ./cmd/curves [flags]
//
// Flags:
//
//	--config <path>     Scene config file (default: built-in defaults)
//	--samples <n>       Samples per curve (default 60)
//	--dump              Print one frame as YAML instead of the curve report
//	--progress <p>      Progress of the dumped frame
//	--t <seconds>       Elapsed time of the dumped frame
//	--seed <n>          Particle seed of the dumped frame
//	--verbose           Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/scene"
)

var (
	configFlag   = flag.String("config", "", "Scene config file (default: built-in defaults)")
	samplesFlag  = flag.Int("samples", 60, "Samples per curve")
	dumpFlag     = flag.Bool("dump", false, "Print one frame as YAML")
	progressFlag = flag.Float64("progress", 0.5, "Progress of the dumped frame")
	timeFlag     = flag.Float64("t", 0, "Elapsed time of the dumped frame (seconds)")
	seedFlag     = flag.Int64("seed", 1, "Particle seed of the dumped frame")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultSceneConfig()
	if *configFlag != "" {
		loaded, err := config.LoadSceneConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	sc, err := scene.New(cfg, rand.New(rand.NewSource(*seedFlag)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dumpFlag {
		out := sc.Update(scene.FrameContext{Progress: *progressFlag, Elapsed: *timeFlag})
		data, err := dumpFrame(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Println(renderReport(sc, *samplesFlag))
}
