package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/lendsim/analysis"
	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/datarecording"
	"github.com/sarchlab/lendsim/sim"
	"github.com/sarchlab/lendsim/simulation"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"
)

type runOptions struct {
	configPath string
	years      float64
	seed       int64
	csvDir     string
	sqlitePath string
	dumpState  bool
	progress   bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a lending pool simulation.",
	Long: "`run` simulates the pool for the given number of years and logs a " +
		"summary of the rate and the utilization. The records of every tick " +
		"can be exported to CSV files or to a SQLite database.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := runSimulation(runOpts, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		logResourceUsage()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVar(&runOpts.configPath, "config", "",
		"YAML configuration file. Defaults are used if it is not given.")
	f.Float64Var(&runOpts.years, "years", 1, "Simulated years.")
	f.Int64Var(&runOpts.seed, "seed", 1, "Seed of the random source.")
	f.StringVar(&runOpts.csvDir, "csv", "",
		"Directory to write the records and period metrics into, as CSV.")
	f.StringVar(&runOpts.sqlitePath, "sqlite", "",
		"Name of a new SQLite database, without the .sqlite3 extension, to "+
			"write the records and period metrics into.")
	f.BoolVar(&runOpts.dumpState, "dump-state", false,
		"Print the final state of the pool as JSON.")
	f.BoolVar(&runOpts.progress, "progress", false,
		"Log the state of the pool after every simulated year.")
}

func runSimulation(
	opts runOptions,
	out io.Writer,
) (analysis.Summary, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return analysis.Summary{}, err
	}

	s, err := simulation.MakeBuilder().
		WithConfig(cfg).
		WithSeed(opts.seed).
		Build()
	if err != nil {
		return analysis.Summary{}, err
	}

	recorders, err := openRecorders(opts)
	if err != nil {
		return analysis.Summary{}, err
	}

	for _, r := range recorders {
		s.AttachRecorder(r)

		analysis.MakePeriodAnalyzerBuilder().
			WithRecorder(r).
			WithTick(cfg.Tick).
			WithTarget(cfg.TargetUtilization).
			Build().
			Attach(s)
	}

	if opts.progress {
		s.AcceptHook(simulation.NewProgressHook(log.StandardLogger(), s.Freq()))
	}

	if log.IsLevelEnabled(log.TraceLevel) {
		s.GetEngine().AcceptHook(sim.NewEventLogger(log.StandardLogger()))
	}

	runErr := s.RunFor(opts.years)
	s.Terminate()

	err = closeRecorders(recorders)
	if runErr != nil {
		return analysis.Summary{}, runErr
	}

	if err != nil {
		return analysis.Summary{}, err
	}

	summary := analysis.Summarize(s.Records(), cfg.TargetUtilization)
	log.WithFields(summary.Fields()).Info("run summary")

	if opts.dumpState {
		snapshot := s.Pool()

		err = dumpPool(&snapshot, out)
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func openRecorders(opts runOptions) ([]datarecording.DataRecorder, error) {
	var recorders []datarecording.DataRecorder

	if opts.csvDir != "" {
		r, err := datarecording.NewCSVRecorder(opts.csvDir)
		if err != nil {
			return nil, err
		}

		recorders = append(recorders, r)
	}

	if opts.sqlitePath != "" {
		r, err := datarecording.New(opts.sqlitePath)
		if err != nil {
			_ = closeRecorders(recorders)
			return nil, err
		}

		recorders = append(recorders, r)
	}

	return recorders, nil
}

func closeRecorders(recorders []datarecording.DataRecorder) error {
	var firstErr error

	for _, r := range recorders {
		err := r.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close recorder: %w", err)
		}
	}

	return firstErr
}

func dumpPool(pool any, out io.Writer) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(pool)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(out)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out)

	return err
}
