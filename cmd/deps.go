package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/profilecard/internal/config"
	"github.com/abhisek/profilecard/internal/llm"
	"github.com/abhisek/profilecard/internal/logging"
	"github.com/abhisek/profilecard/internal/profile"
	"github.com/abhisek/profilecard/internal/profilegen"
	"github.com/abhisek/profilecard/internal/store"
)

// resolveVariant applies --config and --variant on top of the environment.
func resolveVariant(cmd *cobra.Command) (profile.Config, error) {
	opts := config.OptionsFromEnv()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		opts.Path = p
	}
	if v, _ := cmd.Flags().GetString("variant"); v != "" {
		opts.Variant = v
		if p, _ := cmd.Flags().GetString("config"); p == "" {
			opts.Path = ""
		}
	}
	cfg, err := config.Resolve(opts)
	if err != nil {
		return profile.Config{}, fmt.Errorf("load variant: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger. toFile routes output to the rotating log
// file, which the TUI needs since it owns the terminal.
func newLogger(cmd *cobra.Command, toFile bool) (*log.Logger, io.Closer, error) {
	cfg := logging.ConfigFromEnv()
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Level = lvl
	}
	if toFile {
		if f, _ := cmd.Flags().GetString("log-file"); f != "" {
			cfg.File = f
		}
		if cfg.File == "" {
			p, err := logging.DefaultLogPath()
			if err != nil {
				return nil, nil, err
			}
			cfg.File = p
		}
	} else {
		cfg.File = ""
	}
	return logging.New(cfg)
}

const fallbackGrace = 15 * time.Second

// generatorDeps is everything a profile generator needs to be torn down.
type generatorDeps struct {
	Generator profile.Generator
	Timeout   time.Duration
	closers   []io.Closer
}

func (d *generatorDeps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	return errors.Join(errs...)
}

// buildGenerator returns the random-data generator, or with --ai an LLM
// generator that falls back to random data. LLM requests are recorded in
// the SQLite request log.
func buildGenerator(ctx context.Context, cmd *cobra.Command, variant profile.Config, logger *log.Logger) (*generatorDeps, error) {
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fake := profilegen.NewFake(variant, seed)
	deps := &generatorDeps{Generator: fake}

	useAI, _ := cmd.Flags().GetBool("ai")
	if !useAI {
		return deps, nil
	}

	llmCfg, ok, err := llm.ResolveConfig()
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("no LLM provider configured, using random data")
		return deps, nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	deps.closers = append(deps.closers, st)

	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}
	if mock, ok := llm.Unwrap(provider).(*llm.MockProvider); ok {
		mock.SetResponder(profilegen.MockResponder(profilegen.NewFake(variant, seed+1)))
	}

	genCfg := profilegen.DefaultConfig()
	genCfg.Timeout = max(genCfg.Timeout, llmCfg.Timeout)
	ai := profilegen.New(provider, variant, genCfg, fake)
	ai.SetLogger(logger.WithPrefix("profilegen"))

	fallback := profilegen.NewFallback(ai, fake)
	fallback.Logger = logger
	deps.Generator = fallback
	// Leave the fallback room to run after the LLM gives up.
	deps.Timeout = genCfg.Timeout + fallbackGrace

	logger.Info("using LLM generator", "provider", llmCfg.Provider)
	return deps, nil
}
