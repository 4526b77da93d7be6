package main

import (
	"github.com/spf13/cobra"
)

func newEnrichCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Tag raw tokens with wine semantics",
		Example: `  cellar enrich -i tokens.json
  cat tokens.json | cellar enrich`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := readTokens(cmd, input)
			if err != nil {
				return err
			}
			e, err := a.enricher()
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, e.EnrichAll(tokens))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "token JSON file (- for stdin)")
	return cmd
}
