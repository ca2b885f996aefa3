package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/faqbot"
	"github.com/google/uuid"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Router *faqbot.Router
	NewID  func() string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"Config file (default $FAQBOT_CONFIG or ~/.faqbot/config.toml)"`
	Verbose bool   `short:"v" help:"Log requests and compilations to stderr"`

	Console  ConsoleCmd  `cmd:"" help:"Chat with the bot on the terminal"`
	Run      RunCmd      `cmd:"" help:"Answer a single message"`
	Commands CommandsCmd `cmd:"" help:"List chat commands"`
}

// ConsoleCmd is the "console" subcommand.
type ConsoleCmd struct {
	Out string `short:"o" type:"path" default:"." help:"Directory for image replies"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Message string `arg:"" help:"Message text, e.g. \"/tyd table\""`
	Quote   string `short:"q" help:"Text of the quoted message"`
	Sender  string `short:"s" help:"Author of the quoted message"`
	Out     string `short:"o" type:"path" default:"." help:"Directory for image replies"`
}

// CommandsCmd is the "commands" subcommand.
type CommandsCmd struct{}

func newID() string {
	return uuid.NewString()
}
