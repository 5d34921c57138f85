package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ImportCommand creates the import command
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a JSON content file into the store",
		ArgsUsage: "<content.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "replace",
				Usage: "Replace the whole collection instead of upserting",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one content file argument")
			}
			return importContent(c.String("config"), c.Args().First(), c.Bool("replace"))
		},
	}
}

// importContent loads items from a JSON file and writes them to the store
func importContent(configPath, contentPath string, replace bool) error {
	_, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	items, err := readItems(contentPath)
	if err != nil {
		return err
	}

	if replace {
		if err := store.ReplaceAll(items); err != nil {
			return fmt.Errorf("replacing collection: %w", err)
		}
		fmt.Printf("Replaced collection with %d items from %s\n", len(items), contentPath)
		return nil
	}

	if err := store.SaveItems(items); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	fmt.Printf("Imported %d items from %s\n", len(items), contentPath)
	return nil
}
