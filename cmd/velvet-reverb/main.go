// Command velvet-reverb applies the velvet noise late reverb to a WAV file.
//
// Usage:
//
//	velvet-reverb input.wav output.wav
//	velvet-reverb -tail 8 -gain 0.15 input.wav output.wav
//	velvet-reverb -native-rate input_48k.wav out.wav   # scale the kernel instead of resampling
//	velvet-reverb -seed 42 input.wav output.wav        # reproducible kernel
//
// The reverb is defined at 44.1 kHz. Input at other rates is resampled to
// 44.1 kHz, reverberated and resampled back unless -native-rate is given.
// Channels are reverberated concurrently with independent kernels.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

const (
	// CLI defaults
	defaultGain     = 0.2
	defaultCeiling  = 1.0
	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var s settings
	flag.Float64Var(&s.tailSeconds, "tail", defaultTailSeconds, "Seconds of silence appended for the reverb to decay")
	flag.Float64Var(&s.gain, "gain", defaultGain, "Output gain applied to the reverberated signal")
	flag.Float64Var(&s.ceiling, "ceiling", defaultCeiling, "Fail if any output sample reaches this magnitude (0 disables)")
	flag.Uint64Var(&s.seed, "seed", 0, "Seed for the kernel generator (0 draws a random kernel)")
	flag.IntVar(&s.bitDepth, "bits", 0, "Output bit depth: 16, 24 or 32 (0 keeps the input depth)")
	flag.BoolVar(&s.nativeRate, "native-rate", false, "Scale the kernel to the input rate instead of resampling")
	flag.BoolVar(&s.parallel, "parallel", true, "Enable parallel channel processing")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s dry.wav wet.wav                 # 5 s tail, gain 0.2\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tail 8 -seed 7 dry.wav wet.wav # longer tail, fixed kernel\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Tail: %.2fs, gain: %.3f", s.tailSeconds, s.gain)
		if s.parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	stats, err := reverbWAV(inputPath, outputPath, s, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Reverberated %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz (%d channels, %d-bit), processed at %d Hz\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.processingRate)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

type reverbStats struct {
	sampleRate     int
	processingRate int
	channels       int
	bitDepth       int
	inputSamples   int
	outputSamples  int
}

func reverbWAV(inputPath, outputPath string, s settings, verbose bool) (*reverbStats, error) {
	input, err := wavio.Read(inputPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", input.SampleRate, len(input.Channels), input.BitDepth)
	}

	bitDepth, err := outputBitDepth(s.bitDepth, input.BitDepth)
	if err != nil {
		return nil, err
	}

	plan, err := newPlan(input.SampleRate, s)
	if err != nil {
		return nil, err
	}
	if verbose {
		if plan.resample {
			log.Printf("Resampling %d Hz -> %d Hz for processing", input.SampleRate, plan.config.SampleRate)
		} else if input.SampleRate != plan.reference {
			log.Printf("Scaling kernel from %d Hz to %d Hz", plan.reference, input.SampleRate)
		}
		log.Printf("Kernel: %d segments, delay capacity %d samples", plan.config.Segments(), plan.config.DelayCapacity)
	}

	wet, err := plan.apply(input.Channels, s)
	if err != nil {
		return nil, err
	}

	out := &wavio.Audio{
		SampleRate: input.SampleRate,
		BitDepth:   bitDepth,
		Channels:   wet,
	}
	if err := wavio.Write(outputPath, out); err != nil {
		return nil, err
	}

	return &reverbStats{
		sampleRate:     input.SampleRate,
		processingRate: plan.config.SampleRate,
		channels:       len(input.Channels),
		bitDepth:       bitDepth,
		inputSamples:   input.Frames(),
		outputSamples:  out.Frames(),
	}, nil
}
