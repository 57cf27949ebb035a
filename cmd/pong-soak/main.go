// Command pong-soak runs the full game headless with random input and
// checks the match invariants on every frame.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/pong/internal/config"
	"github.com/plus3/pong/pong"
)

type soakOptions struct {
	Frames    int
	Seed      uint64
	DeltaTime float64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pong-soak:", err)
		os.Exit(1)
	}
}

func run() error {
	frames := flag.Int("frames", 100000, "Number of frames to simulate.")
	seed := flag.Uint64("seed", 0, "Random seed. 0 picks one.")
	fps := flag.Float64("fps", 60, "Simulated frame rate.")
	level := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	if *frames <= 0 || *fps <= 0 {
		return fmt.Errorf("frames and fps must be positive")
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}

	log, err := config.NewLogger(config.LoggingConfig{Level: *level})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	opts := soakOptions{Frames: *frames, Seed: *seed, DeltaTime: 1 / *fps}
	log.Info("starting soak", zap.Int("frames", opts.Frames), zap.Uint64("seed", opts.Seed))

	report := soak(opts, log)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	if !report.Passed() {
		return fmt.Errorf("%d invariant violation(s)", report.ViolationCount)
	}
	log.Info("soak complete")
	return nil
}

// soak plays opts.Frames frames of a seeded game and reports what happened.
func soak(opts soakOptions, log *zap.Logger) *Report {
	input := newRandomInput(rand.New(rand.NewPCG(opts.Seed, 1)))
	cues := &tally{}
	game := pong.NewGame(pong.Options{
		Input:  input,
		Cues:   cues,
		Rand:   rand.New(rand.NewPCG(opts.Seed, 2)),
		Logger: log.Named("game"),
	})
	checks := newChecker(game)

	report := &Report{
		Frames:    opts.Frames,
		Seed:      opts.Seed,
		DeltaTime: opts.DeltaTime,
		FrameTime: Stats{Samples: make([]time.Duration, 0, opts.Frames)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	start := time.Now()
	for frame := range opts.Frames {
		input.roll()
		before := takeSnapshot(game, cues)

		frameStart := time.Now()
		game.Step(opts.DeltaTime)
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))

		after := takeSnapshot(game, cues)
		if before.mode.Kind == pong.ModeScored && after.mode.Kind == pong.ModePaused {
			report.Resets++
		}
		checks.check(frame, before, after)
	}
	report.WallTime = time.Since(start)
	report.SimTime = time.Duration(float64(opts.Frames) * opts.DeltaTime * float64(time.Second))
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Score = game.Score()
	report.Points = cues.points
	report.PaddleHits = cues.paddleHits
	report.WallBounces = cues.wallBounces
	report.Entities = game.Storage().Len()
	report.Archetypes = len(game.Storage().Archetypes())
	report.Systems = game.Scheduler().GetStats().Systems
	report.Violations = checks.Violations
	report.ViolationCount = checks.Total

	if report.ViolationCount > 0 {
		log.Warn("invariant violations", zap.Int("count", report.ViolationCount))
	}
	return report
}
