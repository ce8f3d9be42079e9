package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"weatherbot/internal/config"
	"weatherbot/internal/gateway"
	"weatherbot/internal/logging"
	"weatherbot/internal/mcpserver"
)

var (
	cfgFile  string
	logLevel string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "weatherbot",
		Short: "A small rule-based chatbot that answers weather questions",
		Long: `WeatherBot classifies what you type into a handful of intents and, for
weather questions, looks up the named city on Open-Meteo and describes the
forecast for the day you asked about. Without a subcommand it opens the
interactive chat.`,
		Version:       mcpserver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChat,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level (trace, debug, info, warn, error)")
	root.Flags().Bool("plain", false, "use the line REPL instead of the full-screen chat")

	root.AddCommand(
		newChatCmd(),
		newAskCmd(),
		newServeCmd(),
		newTelegramCmd(),
		newMCPCmd(),
		newCitiesCmd(),
		newInitCmd(),
	)
	return root
}

// app is what every command runs on: the validated config, its logger and
// the gateway that builds the chat service.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	gw     *gateway.Gateway
	closer io.Closer
}

// loadApp reads the config and builds the logger. quiet keeps console logs
// off the terminal, for full-screen commands; the debug file still gets them.
func loadApp(quiet bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, DebugLog: cfg.DebugLog}
	if quiet {
		opts.Output = io.Discard
	}
	log, closer, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, gw: gateway.New(cfg, log), closer: closer}, nil
}

func (a *app) Close() error {
	return errors.Join(a.gw.Close(), a.closer.Close())
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
