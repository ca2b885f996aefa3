package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Router built from the configuration. Set before calling Run() to
	// skip wiring, as end-to-end tests do.
	Router *faqbot.Router

	// NewID generates message and reply IDs.
	NewID func() string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{NewID: newID}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		NewID:  m.NewID,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("faqbot"),
		kong.Description("Answer chat commands about typst and BIThesis."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'faqbot --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Router == nil {
		path := cli.Config
		if path == "" {
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}

		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different config file\n", config.EnvPath)
			return fmt.Errorf("failed to load config %q: %w", path, err)
		}

		m.Router, err = NewRouter(ctx, cfg, deps.Logger)
		if err != nil {
			return err
		}
	}
	deps.Router = m.Router

	if deps.NewID == nil {
		deps.NewID = newID
	}

	return kongCtx.Run(deps)
}
