package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"blackjack.hcl" help:"Path to an HCL session config (defaults apply when missing)"`
	Seed    *int64 `help:"Deterministic RNG seed (random when omitted)"`
	Debug   bool   `help:"Enable debug logging and mirror the log to stderr"`
	LogFile string `help:"Results log path (overrides the config file)"`
	NoColor bool   `help:"Disable colours"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play interactively against the dealer"`
	Simulate SimulateCmd      `cmd:"" help:"Estimate expected value by playing many rounds by the book"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-table blackjack: H17, double after split, 6:5 naturals"),
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
