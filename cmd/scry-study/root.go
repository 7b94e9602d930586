package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/clock"
	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/domain/srs"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

// app carries what PersistentPreRunE loaded for the subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "scry-study",
		Short:         "Spaced-repetition study scheduler",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg

			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			a.logger = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"config file (default ./config.yaml when present)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newTokenCmd(a),
		newDrillCmd(a),
	)
	return root
}

// studyRuntime is the part of the study stack shared by serve and drill.
type studyRuntime struct {
	catalogs *catalog.Catalogs
	model    srs.MemoryModel
	clock    clock.Clock
}

func (a *app) studyRuntime() (*studyRuntime, error) {
	cats, err := catalog.Load(a.cfg.Study.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	model, err := srs.NewFSRS(srs.Params{
		DesiredRetention:    a.cfg.Study.DesiredRetention,
		MaximumIntervalDays: a.cfg.Study.MaximumIntervalDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory model: %w", err)
	}

	clk, err := clock.NewReal(a.cfg.Study.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid study timezone: %w", err)
	}

	return &studyRuntime{catalogs: cats, model: model, clock: clk}, nil
}
