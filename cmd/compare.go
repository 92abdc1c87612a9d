package cmd

import (
	"github.com/spf13/cobra"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/stats"
)

func newCompareCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Simulate and solve the same model and print the estimates side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := o.scenario(cmd)
			if err != nil {
				return err
			}
			model, err := sim.NewQueueModel(sc.Model)
			if err != nil {
				return err
			}
			tr, err := sim.RunBatch(sc.Batch())
			if err != nil {
				return err
			}
			a, err := solveScenario(sc)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printModel(w, model)
			printComparison(w, stats.Summarize(tr), a)
			return nil
		},
	}
	addModelFlags(cmd, o)
	addSimulationFlags(cmd, o)
	addChainFlags(cmd, o)
	return cmd
}
