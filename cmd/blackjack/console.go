package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/table"
)

type consoleStyles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Header  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Money   lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#1B7F3B")).Padding(0, 1).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Money:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
	}
}

// console is the terminal side of a human seat: it prints table events and
// reads bets and actions.
type console struct {
	rl        *readline.Instance
	out       io.Writer
	styles    consoleStyles
	formatter *table.EventFormatter
	lastBet   map[string]game.Coin
}

func newConsole(historyFile string, opts table.FormattingOptions) (*console, error) {
	completer := readline.NewPrefixCompleter()
	for _, a := range game.Actions {
		completer.Children = append(completer.Children, readline.PcItem(a.String()))
	}
	completer.Children = append(completer.Children, readline.PcItem("help"), readline.PcItem("quit"))

	styles := newConsoleStyles()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          styles.Prompt.Render("> "),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start prompt: %w", err)
	}
	return &console{
		rl:        rl,
		out:       rl.Stdout(),
		styles:    styles,
		formatter: table.NewEventFormatter(opts),
		lastBet:   map[string]game.Coin{},
	}, nil
}

// Close releases the terminal
func (c *console) Close() error {
	return c.rl.Close()
}

// OnEvent prints table events as they happen
func (c *console) OnEvent(ev table.Event) {
	text := c.formatter.Format(ev)
	if text == "" {
		return
	}
	switch ev.EventType() {
	case table.EventTypeRoundStart:
		c.println(c.styles.Header.Render(text))
	case table.EventTypeRoundSettled:
		lines := strings.Split(text, "\n")
		c.println(c.styles.Header.Render(lines[0]))
		for _, line := range lines[1:] {
			c.println(c.styles.Success.Render(line))
		}
	case table.EventTypeReshuffle:
		c.println(c.styles.Warning.Render(text))
	default:
		c.println(text)
	}
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) Title(s string) { c.println(c.styles.Title.Render(s) + "\n") }
func (c *console) Info(s string)  { c.println(c.styles.Info.Render(s)) }
func (c *console) Warn(s string)  { c.println(c.styles.Warning.Render(s)) }
func (c *console) Error(s string) { c.println(c.styles.Error.Render("✗ " + s)) }

// AskBet prompts id for a wager until a number, an empty line or a quit is
// entered. An empty line repeats the previous bet.
func (c *console) AskBet(view game.View, id string) (game.Coin, error) {
	seat, _ := view.Seat(id)
	def := c.defaultBet(view, seat)
	c.println(fmt.Sprintf("%s has %s. Limits: %s.", seat.Name, c.styles.Money.Render(seat.Balance.String()), limits(view)))
	c.rl.SetPrompt(c.styles.Prompt.Render(fmt.Sprintf("%s bet [%s]> ", seat.Name, def)))

	for {
		line, err := readLine(c.rl)
		if err != nil {
			return 0, err
		}
		amount, err := parseBet(line, def)
		if errors.Is(err, errQuit) {
			return 0, err
		}
		if err != nil {
			c.Error(err.Error())
			continue
		}
		c.lastBet[id] = amount
		return amount, nil
	}
}

func (c *console) defaultBet(view game.View, seat game.SeatView) game.Coin {
	def, ok := c.lastBet[seat.ID]
	if !ok {
		def = max(view.MinBet, 10)
		if view.MaxBet > 0 {
			def = min(def, view.MaxBet)
		}
	}
	return max(min(def, seat.Balance), 1)
}

func limits(view game.View) string {
	switch {
	case view.MaxBet > 0:
		return fmt.Sprintf("%s to %s", max(view.MinBet, 1), view.MaxBet)
	case view.MinBet > 0:
		return fmt.Sprintf("at least %s", view.MinBet)
	}
	return "none"
}

// AskAction shows the table from id's seat and reads an action. Help and
// illegal choices re-prompt.
func (c *console) AskAction(view game.View, id string) (game.Action, error) {
	c.println(c.renderView(view, id))
	seat, _ := view.Seat(id)
	c.rl.SetPrompt(c.styles.Prompt.Render(seat.Name + "> "))

	for {
		line, err := readLine(c.rl)
		if err != nil {
			return 0, err
		}
		in, err := parseInput(line)
		switch {
		case err != nil:
			c.Error(err.Error())
		case in.quit:
			return 0, errQuit
		case in.help:
			c.Info(helpText(view))
		case !view.CanAct(in.action):
			c.Error(fmt.Sprintf("%s is not allowed now; choose from %s", in.action, actionList(view.Legal)))
		default:
			return in.action, nil
		}
	}
}

func (c *console) renderView(view game.View, id string) string {
	var b strings.Builder
	dealer := table.FormatHand(view.Dealer)
	if view.DealerHidden > 0 {
		dealer += fmt.Sprintf(" (+%d hidden)", view.DealerHidden)
	}
	fmt.Fprintf(&b, "Dealer: %s\n", dealer)
	for _, s := range view.Seats {
		if s.Status == game.SittingOut {
			continue
		}
		marker := "  "
		if s.ID == id {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s%s: %s bet %s\n", marker, s.Name, table.FormatHand(s.Hand), c.styles.Money.Render(s.Bet.String()))
	}
	fmt.Fprintf(&b, "Options: %s", actionList(view.Legal))
	return b.String()
}

func actionList(actions []game.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}

func helpText(view game.View) string {
	return "Type an action (" + actionList(view.Legal) + ") or its first letter; " +
		"p splits, r surrenders. quit leaves the table."
}

type input struct {
	action game.Action
	help   bool
	quit   bool
}

// parseInput reads a prompt line as a command or an action
func parseInput(line string) (input, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return input{}, fmt.Errorf("enter an action, or help")
	case "?", "help":
		return input{help: true}, nil
	case "q", "quit", "exit":
		return input{quit: true}, nil
	}
	a, err := game.ParseAction(line)
	if err != nil {
		return input{}, err
	}
	return input{action: a}, nil
}

// parseBet reads a wager like "25" or "$25". An empty line takes def.
func parseBet(line string, def game.Coin) (game.Coin, error) {
	s := strings.TrimSpace(line)
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "q", "quit", "exit":
		return 0, errQuit
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "$"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bet must be a whole number, got %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("bet must be positive, got %d", n)
	}
	return game.Coin(n), nil
}
