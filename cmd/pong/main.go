package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/pong/internal/audio"
	"github.com/plus3/pong/internal/config"
	"github.com/plus3/pong/internal/frontend/term"
	"github.com/plus3/pong/internal/frontend/window"
	"github.com/plus3/pong/internal/prefs"
	"github.com/plus3/pong/pong"
)

type frontend interface {
	Input() pong.Input
	Run(game *pong.Game) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pong:", err)
		os.Exit(1)
	}
}

func run() error {
	defaultConfig := os.Getenv("PONG_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "config/pong.toml"
	}

	configPath := flag.String("config", defaultConfig, "Path to the TOML config file.")
	frontendKind := flag.String("frontend", "", "Frontend to use: window or terminal. Overrides the config file.")
	debug := flag.Bool("debug", false, "Open the debug overlay at startup.")
	seed := flag.Uint64("seed", 0, "Random seed. 0 uses the config value, or a random seed if that is 0 too.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *frontendKind != "" {
		cfg.Frontend.Kind = *frontendKind
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal frontend owns stderr.
	if cfg.Frontend.Kind == config.FrontendTerminal && cfg.Logging.Output == "" {
		cfg.Logging.Output = "pong.log"
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = rand.Uint64()
	}
	log.Info("starting",
		zap.String("config", *configPath),
		zap.String("frontend", cfg.Frontend.Kind),
		zap.Uint64("seed", cfg.Game.Seed),
	)

	settings := prefs.Open(log.Named("prefs"))

	cues := audio.New(cfg.Audio.Volume, log.Named("audio"))
	if cfg.Audio.Enabled {
		if err := cues.Init(); err != nil {
			log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
		defer cues.Close()
	}

	gameLog := log.Named("game")

	var front frontend
	switch cfg.Frontend.Kind {
	case config.FrontendTerminal:
		t := term.New(term.Options{Prefs: settings, Cues: cues, Logger: log})
		// Logs go to a file here; a fatal error must still reach the player.
		gameLog = gameLog.WithOptions(zap.WithFatalHook(t.FatalHook()))
		front = t
	default:
		front = window.New(window.Options{
			Window: cfg.Window,
			Debug:  cfg.Debug.Overlay,
			Prefs:  settings,
			Cues:   cues,
			Logger: log,
		})
	}

	game := pong.NewGame(pong.Options{
		Input:  front.Input(),
		Cues:   cues,
		Rand:   rand.New(rand.NewPCG(cfg.Game.Seed, cfg.Game.Seed^0x9e3779b97f4a7c15)),
		Logger: gameLog,
	})

	return front.Run(game)
}
