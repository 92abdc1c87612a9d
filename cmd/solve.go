package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/markov"
)

// analysis is the outcome of solving a scenario's chain.
type analysis struct {
	chain      *markov.Chain
	pi         markov.Distribution
	residual   float64
	measures   markov.Measures
	closedForm markov.Measures
	solver     markov.SolverConfig
}

func solveScenario(sc Scenario) (*analysis, error) {
	chain, err := markov.Build(sc.Chain())
	if err != nil {
		return nil, err
	}
	solver, err := markov.NewSolver(sc.Solver)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Solving %s with %d states", chain.Kind, chain.Capacity)
	pi, err := solver.Solve(chain)
	if errors.Is(err, markov.ErrNotConverged) {
		return nil, fmt.Errorf("%w; retry with a larger --solver-horizon or --solver-power", err)
	}
	if err != nil {
		return nil, err
	}
	closedForm, err := markov.ClosedForm(sc.Model)
	if err != nil {
		return nil, err
	}
	return &analysis{
		chain:      chain,
		pi:         pi,
		residual:   markov.Residual(chain, pi),
		measures:   markov.Analyze(sc.Model, pi),
		closedForm: closedForm,
		solver:     solver.Config(),
	}, nil
}

func newSolveCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build the model's Markov chain and compute its stationary distribution",
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
			a, err := solveScenario(sc)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printModel(w, model)
			printAnalysis(w, a, o.states)
			return nil
		},
	}
	addModelFlags(cmd, o)
	addChainFlags(cmd, o)
	cmd.Flags().IntVar(&o.states, "states", 10, "Number of leading stationary probabilities to print")
	return cmd
}
