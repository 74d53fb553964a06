package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"blackjack.hcl" type:"path" help:"HCL table configuration (defaults apply when missing)"`
	Debug   bool   `help:"Enable debug logging"`
	LogFile string `help:"Write logs to this file instead of the configured destination"`
	NoColor bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"1" help:"Play at the table from the terminal"`
	Simulate    SimulateCmd      `cmd:"" help:"Run bot-only tables and report results"`
	CheckConfig CheckConfigCmd   `cmd:"check-config" help:"Validate a configuration file and print the seating"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-table blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
