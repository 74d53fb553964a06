package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
)

// CheckConfigCmd validates the configuration without playing
type CheckConfigCmd struct{}

func (c *CheckConfigCmd) Run(g *Globals) error {
	cfg, _, closeLog, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	printConfig(os.Stdout, g.Config, cfg)
	return nil
}

func printConfig(w io.Writer, filename string, cfg *config.Config) {
	fmt.Fprintf(w, "%s: OK\n", filename)
	fmt.Fprintf(w, "Dealer: %s\n", cfg.DealerRule())
	switch {
	case cfg.Table.MaxBet > 0:
		fmt.Fprintf(w, "Bets: %d to %d\n", max(cfg.Table.MinBet, 1), cfg.Table.MaxBet)
	case cfg.Table.MinBet > 0:
		fmt.Fprintf(w, "Bets: at least %d\n", cfg.Table.MinBet)
	default:
		fmt.Fprintln(w, "Bets: no limits")
	}
	if cfg.Table.ManualDealer {
		fmt.Fprintln(w, "Dealer turn: manual")
	}
	fmt.Fprintf(w, "Seats (%d):\n", len(cfg.Participants))
	for i, p := range cfg.Participants {
		fmt.Fprintf(w, "  %d. %-12s %-8s balance %d", i+1, p.ID, p.Brain, p.Balance)
		if p.Brain != bot.Human {
			fmt.Fprintf(w, " bet %d", p.Bet)
		}
		fmt.Fprintln(w)
	}
}
