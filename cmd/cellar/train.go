package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thierryx96/cellar-ai/grouping"
)

func newTrainCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit an affinity model from manually grouped menus",
		Long: `Train reads a JSON array of grouped menus:

  [{"groups": [[token, ...], ...], "noise": [token, ...]}, ...]

and writes the fitted affinity model used by "group --strategy affinity".`,
		Example: `  cellar train -i menus.json -o model.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()

			var menus []grouping.TrainingMenu
			if err := json.NewDecoder(in).Decode(&menus); err != nil {
				return fmt.Errorf("failed to decode training menus: %w", err)
			}

			trainer := grouping.NewTrainerWithConfig(a.cfg.AssemblerSettings(a.logger).Trainer)
			m, err := trainer.Fit(menus)
			if err != nil {
				return err
			}

			w, err := a.openOutput(cmd)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := m.SaveModel(w); err != nil {
				return err
			}

			okStyle.Fprint(cmd.ErrOrStderr(), "✔ ")
			fmt.Fprintf(cmd.ErrOrStderr(), "trained on %d tokens from %d menus, accuracy %.2f, loss %.4f\n",
				m.Stats.Samples, m.Stats.Menus, m.Stats.Accuracy, m.Stats.Loss)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "training menus JSON file (- for stdin)")
	return cmd
}
