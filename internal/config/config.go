// Package config loads table configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/dealer"
	"github.com/lox/blackjack/internal/game"
)

// Default values applied to missing settings
const (
	DefaultBalance  = 1000
	DefaultBotBet   = 10
	DefaultLogLevel = "info"
)

// Config represents a complete table configuration
type Config struct {
	Table        *TableSettings      `hcl:"table,block"`
	Participants []ParticipantConfig `hcl:"participant,block"`
	Log          *LogSettings        `hcl:"log,block"`
}

// TableSettings are the house rules
type TableSettings struct {
	Seed             int64 `hcl:"seed,optional"` // zero picks a seed from the clock
	DealerHitsSoft17 bool  `hcl:"dealer_hits_soft_17,optional"`
	MinBet           int64 `hcl:"min_bet,optional"`
	MaxBet           int64 `hcl:"max_bet,optional"`
	ManualDealer     bool  `hcl:"manual_dealer,optional"`
}

// ParticipantConfig seats one participant
type ParticipantConfig struct {
	ID      string `hcl:"id,label"`
	Name    string `hcl:"name,optional"`
	Balance int64  `hcl:"balance,optional"`
	Brain   string `hcl:"brain,optional"`
	Bet     int64  `hcl:"bet,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns a table with one human and one basic-strategy bot
func Default() *Config {
	c := &Config{
		Participants: []ParticipantConfig{
			{ID: "you", Name: "You", Brain: bot.Human},
			{ID: "basic", Name: "Basic Bot", Brain: bot.Basic},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(config.Participants) == 0 {
		config.Participants = Default().Participants
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	for i := range c.Participants {
		p := &c.Participants[i]
		if p.Name == "" {
			p.Name = p.ID
		}
		if p.Balance == 0 {
			p.Balance = DefaultBalance
		}
		if p.Brain == "" {
			p.Brain = bot.Human
		}
		p.Brain = strings.ToLower(p.Brain)
		if p.Bet == 0 {
			p.Bet = max(DefaultBotBet, c.Table.MinBet)
		}
	}
}

// Validate checks the configuration for values the game would reject
func (c *Config) Validate() error {
	if len(c.Participants) == 0 {
		return fmt.Errorf("at least one participant must be configured")
	}
	if len(c.Participants) > game.MaxParticipants {
		return fmt.Errorf("at most %d participants allowed, got %d", game.MaxParticipants, len(c.Participants))
	}
	if c.Table.MinBet < 0 || c.Table.MaxBet < 0 {
		return fmt.Errorf("bet limits must not be negative")
	}
	if c.Table.MaxBet > 0 && c.Table.MinBet > c.Table.MaxBet {
		return fmt.Errorf("min_bet %d exceeds max_bet %d", c.Table.MinBet, c.Table.MaxBet)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	seen := map[string]bool{}
	for _, p := range c.Participants {
		switch {
		case p.ID == "":
			return fmt.Errorf("participant id must not be empty")
		case p.ID == dealer.ID:
			return fmt.Errorf("participant %q: id is reserved", p.ID)
		case strings.HasSuffix(p.ID, game.SplitSuffix):
			return fmt.Errorf("participant %q: id must not end in %q", p.ID, game.SplitSuffix)
		case seen[p.ID]:
			return fmt.Errorf("participant %q: duplicate id", p.ID)
		case p.Balance < 0:
			return fmt.Errorf("participant %q: balance must not be negative", p.ID)
		case !slices.Contains(bot.Names, p.Brain):
			return fmt.Errorf("participant %q: invalid brain %s", p.ID, p.Brain)
		case p.Bet <= 0:
			return fmt.Errorf("participant %q: bet must be positive", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Humans counts participants that need external input
func (c *Config) Humans() int {
	n := 0
	for _, p := range c.Participants {
		if p.Brain == bot.Human {
			n++
		}
	}
	return n
}

// DealerRule returns the configured soft-17 policy
func (c *Config) DealerRule() dealer.Rule {
	if c.Table.DealerHitsSoft17 {
		return dealer.HitSoft17
	}
	return dealer.StandSoft17
}

// GameOptions translates the table settings into game options
func (c *Config) GameOptions(logger *log.Logger) []game.Option {
	opts := []game.Option{
		game.WithDealerRule(c.DealerRule()),
		game.WithBetLimits(game.Coin(c.Table.MinBet), game.Coin(c.Table.MaxBet)),
	}
	if c.Table.ManualDealer {
		opts = append(opts, game.WithManualDealer())
	}
	if logger != nil {
		opts = append(opts, game.WithLogger(logger))
	}
	return opts
}

// BuildParticipants creates the seats with their brains. rng seeds the
// random strategy; each random bot gets its own stream derived from it.
func (c *Config) BuildParticipants(rng *rand.Rand, logger *log.Logger) ([]game.Participant, error) {
	out := make([]game.Participant, 0, len(c.Participants))
	for _, p := range c.Participants {
		var botRNG *rand.Rand
		if rng != nil {
			botRNG = rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
		}
		brain, err := bot.New(p.Brain, game.Coin(p.Bet), botRNG, logger)
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.ID, err)
		}
		out = append(out, game.NewParticipant(p.ID, p.Name, game.Coin(p.Balance), brain))
	}
	return out, nil
}
