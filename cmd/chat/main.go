package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anythingboes/studio-chat/internal/config"
	"github.com/anythingboes/studio-chat/internal/logging"
	"github.com/anythingboes/studio-chat/internal/service/answer"
	"github.com/anythingboes/studio-chat/internal/service/chat"
	"github.com/anythingboes/studio-chat/internal/tui"
)

type options struct {
	apiURL   string
	timeout  time.Duration
	logLevel string
	logFile  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the Anything Boes Studio bot from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "answering endpoint base URL (defaults to CHAT_API_URL or the build mode's endpoint)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (defaults to CHAT_REQUEST_TIMEOUT)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (defaults to LOG_LEVEL)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "chat.log", "file receiving diagnostic logs while the UI owns the terminal")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.logLevel == "" {
		opts.logLevel = cfg.Log.Level
	}
	if opts.timeout <= 0 {
		opts.timeout = cfg.Widget.RequestTimeout
	}

	logOut, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	logger := logging.NewWithWriter(logOut, opts.logLevel, "json")

	base := opts.apiURL
	if base == "" {
		base, err = cfg.Widget.AnswerBaseURL()
	} else {
		base, err = answer.ResolveBaseURL(base, cfg.Widget.DevOrigin)
	}
	if err != nil {
		return err
	}

	client, err := answer.NewClient(base, answer.WithTimeout(opts.timeout), answer.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info().Str("endpoint", client.Endpoint()).Msg("terminal chat started")

	var program *tea.Program
	ctrl := chat.NewController(client,
		chat.WithLogger(logger),
		chat.WithListener(tui.Listener(func(msg tea.Msg) { program.Send(msg) })),
	)
	program = tea.NewProgram(tui.New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = program.Run()
	// An answer still in flight is applied before the view goes away.
	ctrl.Wait()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
