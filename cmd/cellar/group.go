package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thierryx96/cellar-ai"
	"github.com/thierryx96/cellar-ai/grouping"
	"github.com/thierryx96/cellar-ai/model"
)

const (
	strategyCluster  = "cluster"
	strategyAffinity = "affinity"
)

// groupFlags are shared by group and scan
type groupFlags struct {
	strategy  string
	modelPath string
}

func (f *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "strategy", strategyCluster, "grouping strategy: cluster or affinity")
	cmd.Flags().StringVar(&f.modelPath, "model", "", "affinity model file (default: affinity.model_path)")
}

func newGroupCmd(a *app) *cobra.Command {
	var (
		input string
		raw   bool
		flags groupFlags
	)

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group tagged tokens into wine entries",
		Example: `  cellar group -i tagged.json
  cellar group -i tokens.json --raw
  cellar group -i tagged.json --strategy affinity --model model.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := readTokens(cmd, input)
			if err != nil {
				return err
			}

			report, err := a.runPipeline(tokens, raw, flags)
			if err != nil {
				return err
			}
			if err := a.writeJSON(cmd, report); err != nil {
				return err
			}
			summary(cmd, "group", len(report.Entries), len(report.Noise), strategyDetail(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "token JSON file (- for stdin)")
	cmd.Flags().BoolVar(&raw, "raw", false, "enrich untagged tokens before grouping")
	flags.register(cmd)
	return cmd
}

// runPipeline groups tokens with the selected strategy and builds entries
func (a *app) runPipeline(tokens []model.Token, raw bool, flags groupFlags) (*cellar.Report, error) {
	lex, err := a.cfg.Lexicon()
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	strategy, err := a.strategy(flags, lex.HeaderList())
	if err != nil {
		return nil, err
	}

	p := cellar.FromTokens(tokens).WithStrategy(strategy).WithLogger(a.logger)
	if raw {
		e, err := a.enricher()
		if err != nil {
			return nil, err
		}
		p = p.WithEnricher(e)
	}
	return p.Entries()
}

func (a *app) strategy(flags groupFlags, headers []string) (grouping.Strategy, error) {
	switch flags.strategy {
	case strategyCluster, "":
		return grouping.NewClustererWithConfig(a.cfg.ClusterSettings(a.logger, headers)), nil

	case strategyAffinity:
		assembler := grouping.NewAssemblerWithConfig(nil, a.cfg.AssemblerSettings(a.logger))
		path := flags.modelPath
		if path == "" {
			path = a.cfg.Affinity.ModelPath
		}
		if path == "" {
			// Grouping reports ErrModelNotReady
			return assembler, nil
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open model: %w", err)
		}
		defer f.Close()

		m, err := grouping.LoadModel(f)
		if err != nil {
			return nil, err
		}
		assembler.SetModel(m)
		return assembler, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (want %s or %s)", flags.strategy, strategyCluster, strategyAffinity)
	}
}

func strategyDetail(r *cellar.Report) string {
	if r.Strategy == strategyCluster {
		return fmt.Sprintf("%s, eps %.2f", r.Strategy, r.Eps)
	}
	return r.Strategy
}
