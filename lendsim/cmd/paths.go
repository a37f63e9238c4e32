package cmd

import (
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/sarchlab/lendsim/datarecording"
	"github.com/sarchlab/lendsim/ratepath"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type pathsOptions struct {
	paths       int
	points      int
	seed        int64
	initialRate float64
	out         string
}

var pathsOpts pathsOptions

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Draw random paths of the interest rate.",
	Long: "`paths` draws rate paths over one year in which the utilization " +
		"flips between the two regimes at random, and writes them as a CSV " +
		"file with the columns time, path and rate.",
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := exportPaths(pathsOpts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)

	f := pathsCmd.Flags()
	f.IntVar(&pathsOpts.paths, "paths", 20, "Number of paths.")
	f.IntVar(&pathsOpts.points, "points", 365, "Points per path.")
	f.Int64Var(&pathsOpts.seed, "seed", 1, "Seed of the random source.")
	f.Float64Var(&pathsOpts.initialRate, "initial-rate", 0.06,
		"Rate at the start of every path.")
	f.StringVar(&pathsOpts.out, "out", "rate_paths.csv", "Output CSV file. The extension is always .csv.")
}

// exportPaths writes the paths and returns the file it wrote.
func exportPaths(opts pathsOptions) (string, error) {
	g := ratepath.NewGenerator(opts.points, opts.initialRate)

	paths, err := g.Paths(opts.paths, rand.New(rand.NewSource(opts.seed)))
	if err != nil {
		return "", err
	}

	dir, file := filepath.Split(opts.out)
	if dir == "" {
		dir = "."
	}

	recorder, err := datarecording.NewCSVRecorder(dir)
	if err != nil {
		return "", err
	}

	table := strings.TrimSuffix(file, filepath.Ext(file))
	recorder.CreateTable(table, ratepath.Entry{})

	for _, e := range ratepath.Melt(g.Times(), paths) {
		recorder.InsertData(table, e)
	}

	err = recorder.Close()
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"paths":  opts.paths,
		"points": opts.points,
		"file":   recorder.Path(table),
	}).Info("rate paths written")

	return recorder.Path(table), nil
}
