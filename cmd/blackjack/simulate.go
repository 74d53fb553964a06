package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs bot-only tables in parallel
type SimulateCmd struct {
	Tables   int           `default:"4" help:"Independent tables to run"`
	Rounds   int           `default:"1000" help:"Rounds per table"`
	Seed     *int64        `help:"Base seed (overrides the config)"`
	Parallel int           `default:"0" help:"Tables run at once (0 uses every CPU)"`
	Timeout  time.Duration `default:"0s" help:"Per-table time limit (0 disables)"`
	Out      string        `type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	_, seed := resolveSeed(c.Seed, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "tables", c.Tables, "rounds", c.Rounds, "seats", len(cfg.Participants))
	sim := simulator.New(simulator.Config{
		Table:    cfg,
		Tables:   c.Tables,
		Rounds:   c.Rounds,
		Seed:     seed,
		Parallel: c.Parallel,
		Timeout:  c.Timeout,
		Logger:   logger,
	})
	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, report)

	if c.Out != "" {
		if err := fileutil.WriteJSONAtomic(c.Out, report.JSON()); err != nil {
			return err
		}
		logger.Info("Report written", "file", c.Out)
	}
	return nil
}
