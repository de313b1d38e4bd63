package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearchgame-go/internal/api/request"
	"github.com/mcoot/wordsearchgame-go/internal/api/response"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
)

func newGameCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd(a))
	cmd.AddCommand(newGameListCmd(a))
	cmd.AddCommand(newGameGetCmd(a))
	cmd.AddCommand(newGameToggleCmd(a))
	cmd.AddCommand(newGameSelectCmd(a))
	cmd.AddCommand(newGameClearCmd(a))
	cmd.AddCommand(newGameValidateCmd(a))
	cmd.AddCommand(newGameControlCmd(a, "pause", "Pause the timer and hide the grid"))
	cmd.AddCommand(newGameControlCmd(a, "resume", "Resume a paused game"))
	cmd.AddCommand(newGameAbandonCmd(a))

	return cmd
}

func newGameNewCmd(a *app) *cobra.Command {
	var (
		size       int
		directions []string
		words      []string
		wordsFile  string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game and save its control token.

Words come from the server dictionary unless --words or --words-file
supplies a custom list of at least five words.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateGameRequest{
				GridSize:   size,
				Directions: directions,
				Words:      words,
			}
			if wordsFile != "" {
				fileWords, err := readWordsFile(wordsFile)
				if err != nil {
					return err
				}
				req.Words = append(req.Words, fileWords...)
			}

			var result response.CreateGameResponse
			if err := a.client.Post("/api/v1/games", "", req, &result); err != nil {
				return err
			}

			if err := a.cfg.SaveToken(result.Game.ID, result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			a.output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 10, "Grid size (10-40)")
	cmd.Flags().StringSliceVar(&directions, "directions", nil, "Directions for custom word lists: row, column, diagonal (default all)")
	cmd.Flags().StringSliceVar(&words, "words", nil, "Custom word list")
	cmd.Flags().StringVar(&wordsFile, "words-file", "", "File of custom words, one per line")

	return cmd
}

func newGameListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games still in play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameListResponse
			if err := a.client.Get("/api/v1/games", &result); err != nil {
				return err
			}
			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := a.client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}
			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id> <row> <col>",
		Short: "Select or deselect a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			req := request.PositionRequest{Row: row, Col: col}
			var result response.SelectionResponse
			if err := a.client.Post("/api/v1/games/"+id+"/cells", token, req, &result); err != nil {
				return err
			}

			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <row,col>...",
		Short: "Replace the selection with the given cells",
		Long: `Replace the selection with the given cells, e.g.

  wsgame game select ABC123 0,0 0,1 0,2

The selection is not checked until "game validate" is run.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			cells, err := parseCells(args[1:])
			if err != nil {
				return err
			}

			var result response.Game
			if err := a.client.Put("/api/v1/games/"+id+"/selection", token, request.SelectionRequest{Cells: cells}, &result); err != nil {
				return err
			}

			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Deselect every selected cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			var result response.Game
			if err := a.client.Delete("/api/v1/games/"+id+"/selection", token, &result); err != nil {
				return err
			}

			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id>",
		Short: "Check whether the selection spells a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			var result response.SelectionResponse
			if err := a.client.Post("/api/v1/games/"+id+"/validate", token, nil, &result); err != nil {
				return err
			}

			out := a.output(cmd)
			if !result.Result.Matched && a.cfg.Output != "json" {
				out.PrintMessage("No word matches the selection")
			}
			out.Print(result)
			return nil
		},
	}
}

// newGameControlCmd builds the pause and resume commands
func newGameControlCmd(a *app, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			var result response.Game
			if err := a.client.Post("/api/v1/games/"+id+"/"+action, token, nil, &result); err != nil {
				return err
			}

			a.output(cmd).Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Quit a game without recording a score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			token, err := a.cfg.LoadToken(id)
			if err != nil {
				return err
			}

			var result response.Game
			if err := a.client.Delete("/api/v1/games/"+id, token, &result); err != nil {
				return err
			}

			out := a.output(cmd)
			if a.cfg.Output == "json" {
				out.Print(result)
			} else {
				out.PrintMessage("Game abandoned")
			}
			return nil
		},
	}
}

// parseCells parses "row,col" arguments
func parseCells(args []string) ([]request.PositionRequest, error) {
	cells := make([]request.PositionRequest, 0, len(args))
	for _, arg := range args {
		rowStr, colStr, ok := strings.Cut(arg, ",")
		if !ok {
			return nil, fmt.Errorf("invalid cell %q: want row,col", arg)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", arg, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("invalid col in %q: %w", arg, err)
		}
		cells = append(cells, request.PositionRequest{Row: row, Col: col})
	}
	return cells, nil
}

func readWordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open words file: %w", err)
	}
	defer func() { _ = f.Close() }()

	words, err := dictionary.ParseWords(f)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New("words file is empty")
	}
	return words, nil
}
