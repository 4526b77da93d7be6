package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/enrich"
	"github.com/thierryx96/cellar-ai/internal/config"
	"github.com/thierryx96/cellar-ai/internal/logging"
)

// app carries the state shared by all subcommands
type app struct {
	cfgFile  string
	output   string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cellar",
		Short: "Turn photographed wine menus into structured wine listings",
		Long: `Cellar reads the words detected on a wine menu photo, tags them
(vintage, price, varietal, region, country) and groups them into listings.

The pipeline includes:
  - OCR word extraction (build with -tags ocr)
  - Token enrichment from a wine lexicon
  - Grouping by penalized density clustering or a trained affinity model
  - Entry building (year, price, type, variety, region, country)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML); CELLAR_* env vars override it")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write JSON to this file instead of stdout")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newEnrichCmd(a),
		newGroupCmd(a),
		newScanCmd(a),
		newTrainCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) enricher() (*enrich.Enricher, error) {
	lex, err := a.cfg.Lexicon()
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return enrich.NewWithConfig(lex, a.cfg.EnrichSettings(a.logger)), nil
}
