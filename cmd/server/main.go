package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "readme-writer",
		Short: "GitHub README generator",
		Long:  "readme-writer serves the GitHub login flow and the AI README generation API.",
		// Running with no subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCandidatesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
