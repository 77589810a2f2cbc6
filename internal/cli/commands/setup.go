package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/rowql/internal/cli/config"
	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/internal/engine"
	"github.com/leapstack-labs/rowql/internal/loader"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config and logger
// stored on the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	engCfg := cfg.EngineConfig()
	engCfg.Logger = logger

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   engine.New(engCfg),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output),
	}
}

// LoadTable reads the configured table source.
func (cc *CommandContext) LoadTable(ctx context.Context) (core.Table, error) {
	if err := cc.Cfg.RequireTable(); err != nil {
		return nil, err
	}
	opts := cc.Cfg.LoaderOptions()
	opts.Logger = cc.Logger
	return loader.Load(ctx, cc.Cfg.Table, opts)
}

// SetOptions replaces the engine with one using opts.
func (cc *CommandContext) SetOptions(opts core.Options) {
	engCfg := cc.Cfg.EngineConfig()
	engCfg.Options = opts
	engCfg.Logger = cc.Logger
	cc.Engine = engine.New(engCfg)
}
