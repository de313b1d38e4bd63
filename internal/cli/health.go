package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearchgame-go/internal/api/response"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.HealthResponse
			if err := a.client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			a.output(cmd).Print(result)
			return nil
		},
	}
}
