package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
)

// setup loads the configuration and builds the logger every command uses.
// fallback receives logs when neither --log-file nor log.file is set; the
// returned func closes any log file.
func (g *Globals) setup(fallback io.Writer) (*config.Config, *log.Logger, func(), error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", g.Config, err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	if g.Debug {
		level = log.DebugLevel
	}

	out, closer := fallback, func() {}
	file := cfg.Log.File
	if g.LogFile != "" {
		file = g.LogFile
	}
	if file != "" {
		f, err := fileutil.OpenLogFile(file)
		if err != nil {
			return nil, nil, nil, err
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return cfg, logger, closer, nil
}

// resolveSeed picks the seed in order of precedence: flag, config, clock.
func resolveSeed(flag *int64, cfg *config.Config, logger *log.Logger) (*rand.Rand, int64) {
	switch {
	case flag != nil:
		logger.Info("Using seed from flag", "seed", *flag)
		return randutil.New(*flag), *flag
	case cfg.Table.Seed != 0:
		logger.Info("Using seed from config", "seed", cfg.Table.Seed)
		return randutil.New(cfg.Table.Seed), cfg.Table.Seed
	}
	rng, seed := randutil.NewFromTime()
	logger.Info("Using random seed", "seed", seed)
	return rng, seed
}
