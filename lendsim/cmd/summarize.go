package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sarchlab/lendsim/analysis"
	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/datarecording"
	"github.com/sarchlab/lendsim/simulation"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type summarizeOptions struct {
	configPath string
	sqliteFile string
}

var summarizeOpts summarizeOptions

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a run stored in a SQLite database.",
	Long: "`summarize` reads the records of a run written with `run --sqlite` " +
		"and logs the same summary that the run logged. The target " +
		"utilization comes from the configuration.",
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := summarizeRun(summarizeOpts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	f := summarizeCmd.Flags()
	f.StringVar(&summarizeOpts.configPath, "config", "",
		"YAML configuration file. Defaults are used if it is not given.")
	f.StringVar(&summarizeOpts.sqliteFile, "sqlite", "",
		"SQLite database written by a run, including the .sqlite3 extension.")
	_ = summarizeCmd.MarkFlagRequired("sqlite")
}

func summarizeRun(opts summarizeOptions) (analysis.Summary, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return analysis.Summary{}, err
	}

	// Opening a missing file would create an empty database.
	_, err = os.Stat(opts.sqliteFile)
	if err != nil {
		return analysis.Summary{}, fmt.Errorf("open run: %w", err)
	}

	records, err := readRecords(opts.sqliteFile)
	if err != nil {
		return analysis.Summary{}, err
	}

	summary := analysis.Summarize(records, cfg.TargetUtilization)
	log.WithFields(summary.Fields()).
		WithField("file", opts.sqliteFile).
		Info("stored run summary")

	return summary, nil
}

func readRecords(file string) ([]simulation.Record, error) {
	reader, err := datarecording.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	reader.MapTable(simulation.RecordTableName, simulation.RecordEntry{})

	rows, _, err := reader.Query(context.Background(),
		simulation.RecordTableName,
		datarecording.QueryParams{OrderBy: "Times"})
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	records := make([]simulation.Record, 0, len(rows))
	for _, row := range rows {
		e := row.(*simulation.RecordEntry)
		records = append(records, simulation.Record{
			Time:     e.Times,
			Rate:     e.Rates,
			Supplied: e.Supplies,
			Borrowed: e.Borrows,
		})
	}

	return records, nil
}
