package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/cardarena/internal/config"
	"github.com/udisondev/cardarena/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("arenasim", flag.ContinueOnError)
	cfgPath := fs.String("config", "config/arena.yaml", "arena config (sim section)")
	matchupPath := fs.String("matchup", "matchup.yaml", "matchup YAML")
	out := fs.String("out", "", "summary file, stdout when empty")
	n := fs.Int("n", 0, "number of battles, overrides config")
	workers := fs.Int("workers", 0, "worker limit, overrides config")
	seed := fs.Uint64("seed", 0, "first seed, overrides config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadArena(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	opts := sim.Options{Battles: cfg.Sim.Battles, Workers: cfg.Sim.Workers, Seed: cfg.Sim.Seed}
	if *n > 0 {
		opts.Battles = *n
	}
	if *workers > 0 {
		opts.Workers = *workers
	}
	if *seed > 0 {
		opts.Seed = *seed
	}

	m, err := sim.LoadMatchup(*matchupPath)
	if err != nil {
		return err
	}
	a, b, err := m.Sides()
	if err != nil {
		return fmt.Errorf("building matchup: %w", err)
	}

	start := time.Now()
	summary, err := sim.Run(ctx, a, b, opts)
	if err != nil {
		return fmt.Errorf("running batch: %w", err)
	}
	slog.Info("batch finished",
		"battles", summary.Battles,
		"workers", opts.Workers,
		"win_rate_a", summary.WinRateA,
		"elapsed", time.Since(start))

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if *out == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
