package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/danieldk/embednet"
	"github.com/danieldk/embednet/cmd/common"
	"github.com/spf13/cobra"
)

var normalize bool

var rootCmd = &cobra.Command{
	Use:           "embednet-bin2text INPUT OUTPUT",
	Short:         "Convert binary word2vec embeddings to the text format",
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&normalize, "normalize", false, "scale vectors to unit length")
}

func main() {
	common.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	vectors, err := embednet.ReadWord2VecBinary(bufio.NewReader(f), normalize)
	if err != nil {
		return fmt.Errorf("cannot read vectors: %w", err)
	}

	out, err := embednet.CreateAtomic(args[1])
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := embednet.WriteText(out, vectors, embednet.OrderFile, 32); err != nil {
		return err
	}

	return out.Commit()
}
