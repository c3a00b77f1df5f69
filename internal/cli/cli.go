package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"release-notes-drafter/internal"
	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/types"
	"release-notes-drafter/internal/logger"
	"release-notes-drafter/internal/releases"
	"release-notes-drafter/internal/report"
	"release-notes-drafter/internal/server"
)

// Drafter is what the commands need from internal.Drafter
type Drafter interface {
	server.Drafter
	DraftAll(ctx context.Context, reqs []types.CompareRequest, ignoreNoise bool) ([]*internal.DraftResult, error)
	PublishDraft(ctx context.Context, result *internal.DraftResult) (releases.Entry, error)
	ModelID() string
	Close() error
}

// DrafterFactory builds the Drafter once configuration is loaded
type DrafterFactory func(ctx context.Context, cfg *config.Config) (Drafter, error)

func newDrafter(ctx context.Context, cfg *config.Config) (Drafter, error) {
	d, err := internal.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// app carries state shared by all commands
type app struct {
	envFile    string
	newDrafter DrafterFactory
	config     *config.Config
}

// Execute runs the root command until it finishes or SIGINT/SIGTERM arrives
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand(newDrafter).ExecuteContext(ctx)
}

// NewRootCommand assembles the command tree
func NewRootCommand(factory DrafterFactory) *cobra.Command {
	a := &app{newDrafter: factory}

	cmd := &cobra.Command{
		Use:   "rnd",
		Short: "Release notes drafter",
		Long: `Release notes drafter compares a repository range on GitHub or GitLab,
selects the most relevant patches under a budget and asks an LLM to draft
user-facing release notes (title, changes, impact, risks).

CONFIGURATION:
  All configuration is set via RND_* environment variables or a .env file.
  See .env.example for all available options.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.compareCmd())
	cmd.AddCommand(a.draftCmd())
	cmd.AddCommand(a.releasesCmd())

	return cmd
}

// setup loads configuration, configures logging and creates the Drafter
func (a *app) setup(ctx context.Context) (Drafter, error) {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Setup(cfg)
	a.config = cfg

	d, err := a.newDrafter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create release drafter: %w", err)
	}
	return d, nil
}

// outputFlag registers --output on cmd
func outputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", string(report.FormatMarkdown), "Output format: markdown, json or yaml")
}
