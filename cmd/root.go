package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the flag values of one command tree. Scenario flags are bound
// to flags and copied over the loaded scenario only when set explicitly.
type options struct {
	logLevel   string // Log verbosity level
	configPath string // Scenario YAML file
	flags      Scenario
	pdf        bool // Print the occupancy distribution after a simulation
	states     int  // Number of stationary probabilities to print
}

// rootCmd is the base command for the CLI
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	o := &options{flags: DefaultScenario()}
	root := &cobra.Command{
		Use:          "queueing-sim",
		Short:        "Discrete-event simulator and Markov-chain solver for M/M/1, M/D/1 and M/M/k queues",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(o.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&o.logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "Scenario YAML file; flags set on the command line override it")

	root.AddCommand(newSimulateCmd(o), newSolveCmd(o), newCompareCmd(o))
	return root
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command, o *options) {
	m := &o.flags.Model
	cmd.Flags().Float64Var(&m.ArrivalRate, "arrival-rate", m.ArrivalRate, "Arrival rate λ")
	cmd.Flags().Float64Var(&m.ServiceRate, "service-rate", m.ServiceRate, "Service rate μ per server")
	cmd.Flags().Var(newServiceKindValue(m.ServiceKind(), &m.Service), "service", "Service-time kind: M (exponential) or D (deterministic)")
	cmd.Flags().IntVar(&m.Servers, "servers", m.ServerCount(), "Number of servers k")
}

func addSimulationFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().Float64Var(&o.flags.Horizon.MaxTime, "max-time", o.flags.Horizon.MaxTime, "Stop a run once its clock reaches this time")
	cmd.Flags().Int64Var(&o.flags.Horizon.MaxEvents, "max-events", o.flags.Horizon.MaxEvents, "Stop a run after this many events")
	cmd.Flags().IntVar(&o.flags.Runs, "runs", o.flags.Runs, "Number of independent runs")
	cmd.Flags().Int64Var(&o.flags.Seed, "seed", o.flags.Seed, "Seed for the random streams of all runs")
}

func addChainFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().IntVar(&o.flags.Capacity, "capacity", o.flags.Capacity, "Number of chain states (truncation)")
	cmd.Flags().Float64Var(&o.flags.Solver.Horizon, "solver-horizon", o.flags.Solver.Horizon, "T in exp(Q·T) for continuous-time chains")
	cmd.Flags().IntVar(&o.flags.Solver.Power, "solver-power", o.flags.Solver.Power, "n in P^n for discrete-time chains")
}

// scenario loads --config, if any, and applies the flags the user set.
func (o *options) scenario(cmd *cobra.Command) (Scenario, error) {
	sc := DefaultScenario()
	if o.configPath != "" {
		loaded, err := LoadScenario(o.configPath)
		if err != nil {
			return Scenario{}, err
		}
		sc = loaded
		logrus.Debugf("Loaded scenario %s: %+v", o.configPath, sc)
	}

	// Only explicit flags may overwrite file values.
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"arrival-rate", func() { sc.Model.ArrivalRate = o.flags.Model.ArrivalRate }},
		{"service-rate", func() { sc.Model.ServiceRate = o.flags.Model.ServiceRate }},
		{"service", func() { sc.Model.Service = o.flags.Model.Service }},
		{"servers", func() { sc.Model.Servers = o.flags.Model.Servers }},
		{"max-time", func() { sc.Horizon.MaxTime = o.flags.Horizon.MaxTime }},
		{"max-events", func() { sc.Horizon.MaxEvents = o.flags.Horizon.MaxEvents }},
		{"runs", func() { sc.Runs = o.flags.Runs }},
		{"seed", func() { sc.Seed = o.flags.Seed }},
		{"capacity", func() { sc.Capacity = o.flags.Capacity }},
		{"solver-horizon", func() { sc.Solver.Horizon = o.flags.Solver.Horizon }},
		{"solver-power", func() { sc.Solver.Power = o.flags.Solver.Power }},
	}
	for _, ov := range overrides {
		if cmd.Flags().Changed(ov.flag) {
			ov.apply()
		}
	}
	return sc, nil
}
