package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			return showStats(c.String("config"))
		},
	}
}

// showStats displays item counts, total and per content type
func showStats(configPath string) error {
	_, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	fmt.Printf("Total items: %d\n", stats.TotalItems)

	types := make([]string, 0, len(stats.ItemsByType))
	for t := range stats.ItemsByType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, stats.ItemsByType[t])
	}
	return nil
}
