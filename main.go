package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/game"
	"github.com/iburimskiy/constellation/internal/logging"
)

var CLI struct {
	Config     string `short:"c" help:"Configuration file path" default:"constellation.yaml" type:"path"`
	Verbose    bool   `short:"v" help:"Enable verbose logging"`
	Seed       int64  `help:"Random seed for the constellation (0 uses the config value or the clock)"`
	Width      int    `help:"Window width override"`
	Height     int    `help:"Window height override"`
	Watch      bool   `short:"w" help:"Reload palette and HUD settings when the config file changes"`
	Soundtrack string `short:"s" help:"Ambient audio file to loop (wav, mp3, flac)" type:"path"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("constellation"),
		kong.Description("Book landing page with an animated constellation hero."),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		slog.Warn("Falling back to info logging", "error", err)
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger, closer, err := logging.New(os.Stderr, level, cfg.Log.File)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Constellation exited with error", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	if CLI.Seed != 0 {
		cfg.Seed = CLI.Seed
	}
	if CLI.Width > 0 {
		cfg.Window.Width = CLI.Width
	}
	if CLI.Height > 0 {
		cfg.Window.Height = CLI.Height
	}
	if CLI.Soundtrack != "" {
		cfg.Soundtrack = CLI.Soundtrack
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := game.Options{Config: cfg}
	if CLI.Watch {
		w, err := config.NewWatcher(CLI.Config)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Start(ctx); err != nil {
			return err
		}
		opts.Reloads = w.Updates()
	}

	g := game.NewGame(opts)
	defer g.Close()
	if cfg.Soundtrack != "" {
		if err := g.LoadSoundtrack(cfg.Soundtrack); err != nil {
			slog.Warn("Soundtrack not loaded", "path", cfg.Soundtrack, "error", err)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	slog.Info("Starting constellation", "width", cfg.Window.Width, "height", cfg.Window.Height, "seed", cfg.Seed)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
