package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"niv-scholar-be/internal/config"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/terminal"
	"niv-scholar-be/pkg/llm/factory"
	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/reference"
	"niv-scholar-be/pkg/scholar/session"
	"niv-scholar-be/pkg/scholar/topic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type options struct {
	verse     string
	topic     string
	simulated bool
	interval  time.Duration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask NIV Scholar a single question from the terminal",
		Example: `  ask "What does grace mean here?" --verse "Ephesians 2:8"
  ask --topic "Faith and Doubt"
  ask --simulated "Who wrote Hebrews?"`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.verse, "verse", "", `verse under discussion, e.g. "John 3:16"`)
	cmd.Flags().StringVar(&opts.topic, "topic", "", "study topic to send instead of a question")
	cmd.Flags().BoolVar(&opts.simulated, "simulated", false, "answer with the offline simulated provider")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "reveal speed per character (default from REVEAL_INTERVAL)")
	cmd.AddCommand(newTopicsCmd())
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the study topics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			title := color.New(color.Bold)
			for _, t := range topic.All() {
				title.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Icon, t.Title)
				fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", t.Description)
			}
		},
	}
}

func run(parent context.Context, opts *options, question string) error {
	if strings.TrimSpace(question) == "" && opts.topic == "" {
		return errors.New("a question or --topic is required")
	}

	cfg := config.Load()
	provider := cfg.Ai.LLMProvider
	if opts.simulated {
		provider = "simulated"
	}
	interval := cfg.Scholar.RevealInterval
	if opts.interval > 0 {
		interval = opts.interval
	}

	log := logger.NewIsolatedLogger("logs/ask.log")
	defer func() { _ = log.Sync() }()

	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:    provider,
		APIKey:      cfg.Ai.OpenAIKey,
		BaseURL:     cfg.Ai.OpenAIBaseURL,
		Model:       cfg.Ai.OpenAIModel,
		MaxTokens:   cfg.Ai.MaxTokens,
		Temperature: cfg.Ai.Temperature,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := session.New(session.Config{
		Gateway:        gateway.New(llmProvider, log),
		Presenter:      terminal.NewPresenter(os.Stdout),
		Logger:         log,
		RevealInterval: interval,
	})
	defer s.Close()

	if opts.verse != "" {
		ref, err := reference.Parse(opts.verse)
		if err != nil {
			return fmt.Errorf("invalid --verse %q: %w", opts.verse, err)
		}
		if err := s.SetVerseContext(ref.Context()); err != nil {
			return err
		}
	}

	var reply *session.Reply
	if opts.topic != "" {
		reply, err = s.SelectTopic(ctx, opts.topic)
	} else {
		reply, err = s.SendMessage(ctx, question)
	}
	if err != nil {
		return err
	}

	select {
	case <-reply.Done:
	case <-ctx.Done():
		fmt.Println()
	}
	if !reply.Result.Success {
		return fmt.Errorf("no answer: %s", reply.Result.Error)
	}
	return nil
}
