package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/demo"
	"github.com/pthm-cable/wireframe/game"
	"github.com/pthm-cable/wireframe/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	demoName := flag.String("demo", "", "Demo to start with: models, planets or box (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = demos.seed from config, then time-based)")
	maxTicks := flag.Int("ticks", 0, "Stop after N ticks (0 = unlimited, headless requires > 0)")
	dt := flag.Float64("dt", 0.016, "Fixed time step for headless runs, in seconds")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	watch := flag.Bool("watch", false, "Reload -config when the file changes")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Demos.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := telemetry.NewRunID()
	slog.Info("starting", "run_id", runID, "seed", rngSeed, "headless", *headless)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reload chan *config.Config
	if *watch {
		if *configPath == "" {
			slog.Warn("-watch needs -config, ignoring")
		} else {
			reload = make(chan *config.Config, 1)
			go func() {
				if err := config.Watch(ctx, *configPath, reload); err != nil {
					slog.Error("config watch stopped", "error", err)
				}
			}()
		}
	}

	opts := game.Options{
		Seed:      rngSeed,
		Demo:      demo.Kind(*demoName),
		RunID:     runID,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Reload:    reload,
	}

	if *headless {
		if *maxTicks <= 0 {
			slog.Error("headless runs need -ticks > 0")
			os.Exit(1)
		}
		g, err := game.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation", "ticks", *maxTicks, "dt", *dt)
		for int(g.Frame()) < *maxTicks {
			g.UpdateHeadless(*dt)
		}
		slog.Info("max ticks reached", "tick", g.Frame(), "digest", telemetry.FormatDigest(g.Scene().Digest()))
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Frame()) >= *maxTicks {
			break
		}
	}
}
