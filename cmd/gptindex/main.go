// Command gptindex answers questions from an LLM's internal knowledge,
// without retrieval, through an empty index.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gptindex",
		Short:        "Query LLMs through an empty index",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAskCmd())

	return rootCmd
}
