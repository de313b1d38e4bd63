package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// app carries the resolved configuration and API client into subcommands
type app struct {
	cfg    *Config
	client *Client
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "wsgame",
		Short: "CLI tool for the word search game API",
		Long: `wsgame is a CLI tool for interacting with the word search game JSON API.

It supports creating and playing games, reading the score board,
real-time SSE event streaming, and offline puzzle generation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.client = NewClient(a.cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "Server URL (env: WSGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&a.cfg.Token, "token", a.cfg.Token, "Game token, overrides the saved one (env: WSGAME_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&a.cfg.TokenDir, "token-dir", a.cfg.TokenDir, "Directory of saved game tokens (env: WSGAME_TOKEN_DIR)")
	rootCmd.PersistentFlags().StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&a.cfg.Verbose, "verbose", "v", a.cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd(a))
	rootCmd.AddCommand(newScoresCmd(a))
	rootCmd.AddCommand(newEventsCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))

	return rootCmd
}

// output returns a formatter writing to the command's stdout
func (a *app) output(cmd *cobra.Command) *Output {
	return NewOutput(a.cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
