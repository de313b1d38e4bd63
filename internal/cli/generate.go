package cli

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
	"github.com/mcoot/wordsearchgame-go/internal/services/generator"
)

// Puzzle is an offline generated grid
type Puzzle struct {
	Seed     uint64       `json:"seed"`
	GridSize int          `json:"grid_size"`
	Tier     string       `json:"tier"`
	Rows     [][]string   `json:"rows"`
	Words    []PuzzleWord `json:"words"`
}

// PuzzleWord is a hidden word and where it starts
type PuzzleWord struct {
	Word        string `json:"word"`
	Orientation string `json:"orientation"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		size       int
		seed       uint64
		directions []string
		words      []string
		wordsFile  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a puzzle locally without a server",
		Long: `Generate a puzzle with the local generator and print the grid and
its answer key. The same seed and word list always give the same grid.

Words come from --words, or --words-file (default data/words.txt).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := words
			if len(pool) == 0 {
				fileWords, err := readWordsFile(wordsFile)
				if err != nil {
					return err
				}
				pool = fileWords
			} else {
				validated, err := dictionary.ValidateCustomWords(pool)
				if err != nil {
					return err
				}
				pool = validated
			}

			cfg := model.Configuration{
				GridSize:   size,
				Directions: model.AllDirections,
				CustomPool: len(words) > 0,
			}
			if len(directions) > 0 {
				cfg.Directions = make([]model.Direction, len(directions))
				for i, d := range directions {
					cfg.Directions[i] = model.Direction(strings.ToLower(d))
				}
			}

			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			logLevel := slog.LevelWarn
			if a.cfg.Verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

			gen := generator.New(random.NewSeeded(seed), logger, generator.DefaultConfig())
			puzzle, err := gen.Generate(cfg, pool, nil)
			if err != nil {
				return err
			}

			a.output(cmd).Print(newPuzzle(seed, cfg, puzzle))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 10, "Grid size (10-40)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default time based)")
	cmd.Flags().StringSliceVar(&directions, "directions", nil, "Directions: row, column, diagonal (default all)")
	cmd.Flags().StringSliceVar(&words, "words", nil, "Custom word list")
	cmd.Flags().StringVar(&wordsFile, "words-file", "data/words.txt", "Word list file, one per line")

	return cmd
}

func newPuzzle(seed uint64, cfg model.Configuration, p *generator.Puzzle) Puzzle {
	rows := make([][]string, p.Grid.Size)
	for row := range rows {
		rows[row] = make([]string, p.Grid.Size)
		for col := range rows[row] {
			letter := p.Grid.Letter(model.Position{Row: row, Col: col})
			rows[row][col] = strings.ToUpper(string(letter))
		}
	}

	sorted := p.Bank.Sorted()
	words := make([]PuzzleWord, len(sorted))
	for i, w := range sorted {
		words[i] = PuzzleWord{
			Word:        strings.ToUpper(w.Word),
			Orientation: string(w.Orientation),
			Row:         w.Anchor.Row,
			Col:         w.Anchor.Col,
		}
	}

	return Puzzle{
		Seed:     seed,
		GridSize: cfg.GridSize,
		Tier:     cfg.Tier().Label(),
		Rows:     rows,
		Words:    words,
	}
}
