package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/table"
)

// PlayCmd runs an interactive table in the terminal
type PlayCmd struct {
	Rounds   int    `default:"0" help:"Stop after this many rounds (0 plays until you quit)"`
	Seed     *int64 `help:"Deterministic shoe seed (overrides the config)"`
	ShowBots bool   `help:"Print every bot decision"`
	History  string `default:"" help:"Readline history file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	// the prompt owns the terminal, so logs only go to a file
	cfg, logger, closeLog, err := g.setup(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	rng, seed := resolveSeed(c.Seed, cfg, logger)
	participants, err := cfg.BuildParticipants(rng, logger)
	if err != nil {
		return err
	}
	gm, err := game.New(rng, participants, cfg.GameOptions(logger)...)
	if err != nil {
		return err
	}
	tbl := table.New(gm, table.WithLogger(logger))
	logger.Info("Table ready", "table", tbl.ID(), "seed", seed, "seats", len(participants), "humans", cfg.Humans())

	perspective := ""
	for _, p := range cfg.Participants {
		if p.Brain == bot.Human && cfg.Humans() == 1 {
			perspective = p.ID
		}
	}

	con, err := newConsole(c.History, table.FormattingOptions{
		ShowBalances: true,
		ShowBotMoves: c.ShowBots,
		Perspective:  perspective,
	})
	if err != nil {
		return err
	}
	defer con.Close()

	unsubscribe := tbl.Subscribe(con)
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con.Title(fmt.Sprintf(" ♠ ♥ Blackjack ♦ ♣  table %s, seed %d ", tbl.ID(), seed))
	err = play(ctx, tbl, con, c.Rounds, logger)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		con.Info("Thanks for playing.")
		return nil
	}
	return err
}

// play drives tbl until the round limit, a quit or a broke table
func play(ctx context.Context, tbl *table.Table, con *console, rounds int, logger *log.Logger) error {
	played := 0
	for rounds == 0 || played < rounds {
		pending, err := tbl.PlayRound(ctx)
		if errors.Is(err, game.ErrInvalidTransition) && tbl.View().Phase == game.PhaseWaiting {
			con.Warn("Nobody at the table can cover a bet. Game over.")
			return nil
		}
		if err != nil {
			return err
		}
		if pending.Done() {
			played++
			continue
		}

		view := tbl.View()
		switch pending.Phase {
		case game.PhaseBetting:
			amount, err := con.AskBet(view, pending.ParticipantID)
			if err != nil {
				return err
			}
			if err := tbl.Bet(pending.ParticipantID, amount); err != nil {
				logger.Debug("Bet rejected", "participant", pending.ParticipantID, "amount", amount, "error", err)
				con.Error(err.Error())
			}

		case game.PhasePlaying:
			action, err := con.AskAction(view, pending.ParticipantID)
			if err != nil {
				return err
			}
			if err := tbl.Act(pending.ParticipantID, action); err != nil {
				logger.Debug("Action rejected", "participant", pending.ParticipantID, "action", action, "error", err)
				con.Error(err.Error())
			}

		default:
			return fmt.Errorf("unexpected pending phase %s", pending.Phase)
		}
	}
	return nil
}

// errQuit ends the session from the prompt
var errQuit = errors.New("quit")

// readLine wraps readline so interrupts and EOF read as a quit
func readLine(rl *readline.Instance) (string, error) {
	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", errQuit
	}
	return line, err
}
