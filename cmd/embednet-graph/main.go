package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/danieldk/embednet"
	"github.com/danieldk/embednet/cmd/common"
	"github.com/danieldk/embednet/sqlitegraph"
	"github.com/spf13/cobra"
)

const tool = "embednet-graph"

var settings common.Settings

var rootCmd = &cobra.Command{
	Use:   tool + " [flags] INPUT OUTPUT THRESHOLD",
	Short: "Build a similarity graph from a word embedding table",
	Long: `Connects every pair of words in INPUT whose cosine distance is at
or above THRESHOLD and writes the edges to OUTPUT, one tab-separated
word pair per line. Flags must precede the positional arguments, so
that a negative THRESHOLD is not taken for a flag.`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	settings.AddCommonFlags(rootCmd)
	settings.AddGraphFlags(rootCmd)

	rootCmd.Flags().SetInterspersed(false)
}

func main() {
	common.Execute(rootCmd)
}

func parseThreshold(s string) (float64, error) {
	threshold, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	if math.IsNaN(threshold) {
		return 0, fmt.Errorf("invalid threshold %q: not a number", s)
	}

	return threshold, nil
}

func run(cmd *cobra.Command, args []string) error {
	threshold, err := parseThreshold(args[2])
	if err != nil {
		return err
	}

	common.LoadDotEnv()

	cfg, err := settings.Resolve(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	logger := common.NewLogger(tool)

	emb, err := embednet.LoadEmbeddings(args[0])
	if err != nil {
		return err
	}
	if emb.Duplicates() > 0 {
		logger.Printf("%d duplicate words, the last vector of each was kept", emb.Duplicates())
	}
	logger.Printf("loaded %d words with %d dimensions", emb.Len(), emb.Dims())

	opts, err := cfg.Options(logger, "graph")
	if err != nil {
		return err
	}

	graph, err := embednet.BuildGraph(cmd.Context(), emb, threshold, embednet.GraphOptions{
		Options:     opts,
		Undirected:  cfg.Undirected,
		NoSelfLoops: cfg.NoSelfLoops,
	})
	if err != nil {
		return err
	}
	logger.Printf("%d edges at threshold %g", graph.Len(), threshold)

	if cfg.Format == common.FormatSQLite {
		return sqlitegraph.Write(cmd.Context(), args[1], graph, cfg.SortEdges)
	}

	out, err := embednet.CreateAtomic(args[1])
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := embednet.WriteGraph(out, graph, cfg.SortEdges); err != nil {
		return err
	}

	return out.Commit()
}
