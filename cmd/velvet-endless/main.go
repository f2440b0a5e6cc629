// Command velvet-endless turns a short WAV recording into an endless texture.
//
// Usage:
//
//	velvet-endless source.wav texture.wav
//	velvet-endless -seconds 60 -taps 48 source.wav texture.wav
//	velvet-endless -mono -seed 3 source.wav texture.wav
//	velvet-endless -gain 0.05 loud.wav texture.wav
//
// Velvet noise taps walk through the source one sample per output sample and
// are replaced with fresh random signs when they fall off its end, so the
// output never repeats.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

const (
	// CLI defaults
	defaultSeconds  = 10.0
	defaultCeiling  = 1.0
	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	defaults := velvet.DefaultTextureConfig(velvet.RateCD)

	var s settings
	flag.Float64Var(&s.seconds, "seconds", defaultSeconds, "Length of the rendered texture in seconds")
	flag.IntVar(&s.taps, "taps", defaults.Taps, "Number of simultaneous taps over the source")
	flag.Float64Var(&s.gain, "gain", defaults.Gain, "Output gain")
	flag.Float64Var(&s.ceiling, "ceiling", defaultCeiling, "Fail if any output sample reaches this magnitude (0 disables)")
	flag.Uint64Var(&s.seed, "seed", 0, "Seed for the tap generator (0 draws random taps)")
	flag.BoolVar(&s.mono, "mono", false, "Mix the source down to one channel before rendering")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] source.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	inputPath := args[0]
	outputPath := args[1]

	start := time.Now()
	source, err := wavio.Read(inputPath)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Source: %s (%d Hz, %d channels, %.2fs)",
			inputPath, source.SampleRate, len(source.Channels), source.Duration())
	}

	out, err := renderTexture(source, s)
	if err != nil {
		return err
	}
	if *verbose {
		cfg := s.config(source.SampleRate)
		log.Printf("Taps: %d, density: %d impulses/s", cfg.Taps, cfg.Density(source.Frames()))
	}

	if err := wavio.Write(outputPath, out); err != nil {
		return err
	}

	fmt.Printf("Rendered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d samples -> %d samples (%d channels)\n", source.Frames(), out.Frames(), len(out.Channels))
	fmt.Printf("  Duration: %.2fs\n", time.Since(start).Seconds())
	return nil
}
