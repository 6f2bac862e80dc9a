package main

import (
	"os"

	"github.com/danieldk/embednet"
	"github.com/danieldk/embednet/cmd/common"
	"github.com/spf13/cobra"
)

const tool = "embednet-distances"

var settings common.Settings

var rootCmd = &cobra.Command{
	Use:   tool + " INPUT OUTPUT",
	Short: "Write the cosine distance matrix of a word embedding table",
	Long: `Computes the cosine distance of every ordered pair of words in INPUT
and writes one distance per line to OUTPUT. The first word of a pair
varies slowest, so a table of n words yields n*n lines.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	settings.AddCommonFlags(rootCmd)
	settings.AddDistanceFlags(rootCmd)
}

func main() {
	common.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) error {
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

	opts, err := cfg.Options(logger, "distances")
	if err != nil {
		return err
	}

	var summary *embednet.Summary
	if cfg.Summary || cfg.AllPercentiles {
		summary = &embednet.Summary{}
		if cfg.AllPercentiles {
			summary.Percentiles = embednet.AllPercentiles()
		}
	}

	out, err := embednet.CreateAtomic(args[1])
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := embednet.WriteDistanceMatrix(cmd.Context(), out, emb, embednet.MatrixOptions{
		Options: opts,
		Summary: summary,
	}); err != nil {
		return err
	}

	if err := out.Commit(); err != nil {
		return err
	}

	if summary != nil {
		common.LogSummary(logger, summary)
	}

	return nil
}
