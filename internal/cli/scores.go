package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearchgame-go/internal/api/response"
)

func newScoresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Score board commands",
	}

	cmd.AddCommand(newScoresListCmd(a))
	cmd.AddCommand(newScoresSummaryCmd(a))

	return cmd
}

func newScoresListCmd(a *app) *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the fastest completions per tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/scores"
			if tier != "" {
				path += "?tier=" + url.QueryEscape(tier)
			}

			var result response.ScoresResponse
			if err := a.client.Get(path, &result); err != nil {
				return err
			}
			a.output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "Only show one tier: easy, medium, hard")

	return cmd
}

func newScoresSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Compare the latest completion with the tier's best",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SummaryResponse
			if err := a.client.Get("/api/v1/scores/summary", &result); err != nil {
				return err
			}
			a.output(cmd).Print(result)
			return nil
		},
	}
}
