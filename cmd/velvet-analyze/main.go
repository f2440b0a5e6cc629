// Command velvet-analyze prints statistics of the velvet noise generators,
// the diffusion cascade and the late reverb kernel.
package main

import (
	"flag"
	"fmt"
	"log"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

const (
	// Measurement parameters (velvet noise reference values)
	defaultDensity    = 2000
	defaultSampleRate = velvet.RateHiRes96
	defaultImpulses   = 10000
	defaultDelta      = 0.5

	// Cascade impulse response length
	defaultResponseLength = 1 << 17
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 1, "Seed for all generators")
	impulses := flag.Int("n", defaultImpulses, "Number of impulses drawn per generator")
	flag.Parse()

	opts := []velvet.Option{velvet.WithSeed(*seed)}

	fmt.Println("=== Platform ===")
	fmt.Printf("  SIMD: %s\n\n", simdops.Info())

	fmt.Printf("=== Impulse Locations (%d/s at %d Hz) ===\n", defaultDensity, defaultSampleRate)
	gens, err := measureGenerators(defaultDensity, defaultSampleRate, defaultDelta, *impulses, opts...)
	if err != nil {
		return err
	}
	for _, g := range gens {
		fmt.Printf("  %-10s count=%d mean=%.3f std=%.3f min=%.0f max=%.0f spread=%.0f density=%.1f/s\n",
			g.name, g.stats.Count, g.stats.MeanSpacing, g.stats.StdDev,
			g.stats.MinSpacing, g.stats.MaxSpacing, g.stats.Spread(), g.density)
	}

	fmt.Println("\n=== Sign Skew ===")
	skews, err := measureSkews([]float64{0.1, 0.25, velvet.ClassicSkew, 0.75, 0.9}, *impulses, opts...)
	if err != nil {
		return err
	}
	for _, s := range skews {
		fmt.Printf("  p=%.2f  mean sign %+.4f (expected %+.4f)\n", s.p, s.mean, 2*s.p-1)
	}

	fmt.Println("\n=== Diffusion Cascade ===")
	cascade, err := measureCascade(velvet.DefaultReverbConfig().Diffusion, defaultResponseLength)
	if err != nil {
		return err
	}
	fmt.Printf("  Stages: %d, total delay: %d samples\n", cascade.stages, cascade.totalDelay)
	fmt.Printf("  Impulse response energy: %.8f\n", cascade.energy)
	fmt.Printf("  Magnitude range: %.4f dB .. %.4f dB\n", cascade.minDB, cascade.maxDB)

	fmt.Println("\n=== Late Reverb Kernel ===")
	kernel, err := measureReverb(velvet.DefaultReverbConfig(), opts...)
	if err != nil {
		return err
	}
	for i, seg := range kernel.segments {
		fmt.Printf("  Segment %2d [%5d, %5d): density %3d, gain %6.2f dB, taps %d\n",
			i, seg.start, seg.end, seg.density, seg.gainDB, seg.taps)
	}
	fmt.Printf("  Total taps: %d\n", kernel.taps)
	for i, st := range kernel.stages {
		fmt.Printf("  Stage %d: filter length %d, memory %d bytes\n", i, st.FilterLength, st.MemoryUsage)
	}
	fmt.Printf("  Total memory: %d bytes\n", kernel.memory)

	return nil
}
