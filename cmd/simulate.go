package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/stats"
)

func newSimulateCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run independent simulation replications and report confidence intervals",
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

			logrus.Infof("Starting %s simulation: %d runs, seed=%d, max_time=%v, max_events=%d",
				sim.Kendall(model), sc.Runs, sc.Seed, sc.Horizon.MaxTime, sc.Horizon.MaxEvents)
			startTime := time.Now()
			tr, err := sim.RunBatch(sc.Batch())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printModel(w, model)
			printSimulation(w, tr, stats.Summarize(tr))
			if o.pdf {
				printOccupancyPDF(w, stats.OccupancyPDF(tr))
			}
			logrus.Infof("Simulation complete in %v", time.Since(startTime))
			return nil
		},
	}
	addModelFlags(cmd, o)
	addSimulationFlags(cmd, o)
	cmd.Flags().BoolVar(&o.pdf, "pdf", false, "Also print the estimated occupancy distribution")
	return cmd
}
