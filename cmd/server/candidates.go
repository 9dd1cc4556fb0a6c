package main

import (
	"fmt"

	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/spf13/cobra"
)

func newCandidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "Print the model fallback order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config.New()
			setupLogging(c)
			chain, err := buildChain(c, nil)
			if err != nil {
				return err
			}
			for i, cand := range chain.Candidates() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, cand.String())
			}
			return nil
		},
	}
}
