// Command gpdump resolves a geometry processor from a draw description and
// prints its configuration, optionally with the generated vertex stage.
//
//	gpdump -config draw.yaml -wgsl
//	gpdump -color straight -coverage attribute -local position -view 2,0,0,0,2,0
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/geoproc"
	"github.com/gogpu/geoproc/shader"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML draw description; overrides the option flags")
		label      = flag.String("label", "gpdump", "processor label")
		space      = flag.String("space", "world", "input position space: world or device")
		color      = flag.String("color", "uniform", "color source: uniform, premul or straight")
		colorValue = flag.String("color-value", "0xFFFFFFFF", "uniform color as 0xAARRGGBB")
		colorSrc   = flag.String("color-src", "srgb", "straight color source space: srgb or linear")
		colorDst   = flag.String("color-dst", "srgb", "straight color destination space: srgb or linear")
		coverage   = flag.String("coverage", "solid", "coverage source: solid, uniform or attribute")
		covValue   = flag.Uint("coverage-value", 0xFF, "uniform coverage byte")
		local      = flag.String("local", "unused", "local coordinates: unused, position, explicit or transformed")
		localM     = flag.String("local-matrix", "", "local matrix as 6 or 9 comma-separated values")
		view       = flag.String("view", "", "view matrix as 6 or 9 comma-separated values")
		wgsl       = flag.Bool("wgsl", false, "print the generated WGSL vertex stage")
		spirv      = flag.Bool("spirv", false, "compile the vertex stage to SPIR-V and report its size")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		geoproc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfg Config
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}
		if cfg, err = parseConfig(data); err != nil {
			log.Fatalf("Failed to parse %s: %v", *configPath, err)
		}
	} else {
		v, err := parseFloats(*view)
		if err != nil {
			log.Fatalf("Invalid -view: %v", err)
		}
		lm, err := parseFloats(*localM)
		if err != nil {
			log.Fatalf("Invalid -local-matrix: %v", err)
		}
		if *covValue > 0xFF {
			log.Fatalf("Invalid -coverage-value: %d > 255", *covValue)
		}
		cfg = Config{
			Label:       *label,
			Space:       *space,
			View:        v,
			Color:       ColorConfig{Kind: *color, Value: *colorValue, Src: *colorSrc, Dst: *colorDst},
			Coverage:    CoverageConfig{Kind: *coverage, Value: uint8(*covValue)},
			LocalCoords: LocalCoordsConfig{Kind: *local, Matrix: lm},
		}
	}

	gp, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to build processor: %v", err)
	}
	fmt.Print(gp)

	if *wgsl {
		src, err := shader.VertexWGSL(gp)
		if err != nil {
			log.Fatalf("Failed to generate WGSL: %v", err)
		}
		fmt.Println()
		fmt.Print(src)
	}
	if *spirv {
		words, err := shader.CompileProcessor(gp)
		if err != nil {
			log.Fatalf("Failed to compile: %v", err)
		}
		log.Printf("Vertex stage compiled to %d SPIR-V words\n", len(words))
	}
}
