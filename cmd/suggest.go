package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/inkwellcms/searchlight/pkg/search"
)

// SuggestCommand creates the suggest command
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Show autocomplete suggestions for a partial query",
		ArgsUsage: "<partial>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of suggestions",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one partial query argument")
			}
			return showSuggestions(c.String("config"), c.Args().First(), c.Int("limit"))
		},
	}
}

func showSuggestions(configPath, partial string, limit int) error {
	cfg, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	items, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	if limit <= 0 {
		limit = cfg.SuggestLimit
	}

	suggestions := search.Suggestions(items, partial, limit)
	if len(suggestions) == 0 {
		fmt.Println(noDataStyle.Render("No suggestions"))
		return nil
	}

	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}
