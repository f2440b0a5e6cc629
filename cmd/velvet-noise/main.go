// Command velvet-noise renders velvet noise to a mono WAV file.
//
// Usage:
//
//	velvet-noise noise.wav
//	velvet-noise -density 1000 -rate 48000 -seconds 5 noise.wav
//	velvet-noise -kind arn -delta 0.25 noise.wav
//	velvet-noise -crush 0.8 crushed.wav          # mostly positive impulses
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/analysis"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

const (
	// CLI defaults
	defaultDensity  = 2000
	defaultSeconds  = 1.0
	defaultDelta    = 0.5
	defaultGain     = 0.5
	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var s settings
	flag.StringVar(&s.kind, "kind", kindOVN, "Impulse location generator: ovn or arn")
	flag.IntVar(&s.density, "density", defaultDensity, "Impulses per second")
	flag.IntVar(&s.sampleRate, "rate", velvet.RateCD, "Sample rate in Hz")
	flag.Float64Var(&s.seconds, "seconds", defaultSeconds, "Length in seconds")
	flag.Float64Var(&s.delta, "delta", defaultDelta, "ARN spacing deviation in [0, 1]")
	flag.Float64Var(&s.crush, "crush", velvet.ClassicSkew, "Probability of a positive impulse")
	flag.Float64Var(&s.gain, "gain", defaultGain, "Impulse amplitude")
	flag.Uint64Var(&s.seed, "seed", 0, "Seed for the generators (0 draws random noise)")
	flag.IntVar(&s.bitDepth, "bits", wavio.BitDepth16, "Output bit depth: 16, 24 or 32")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}
	outputPath := args[0]

	samples, err := renderNoise(s)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Generator: %s, density %d at %d Hz, crush %.2f", s.kind, s.density, s.sampleRate, s.crush)
		indices := impulseIndices(samples)
		if stats, err := analysis.Describe(indices); err == nil {
			log.Printf("Impulses: %d, mean spacing %.2f (std %.2f), spread %.0f",
				len(indices), stats.MeanSpacing, stats.StdDev, stats.Spread())
		}
	}

	out := &wavio.Audio{
		SampleRate: s.sampleRate,
		BitDepth:   s.bitDepth,
		Channels:   [][]float64{samples},
	}
	if err := wavio.Write(outputPath, out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d samples at %d Hz\n", filepath.Base(outputPath), len(samples), s.sampleRate)
	return nil
}
