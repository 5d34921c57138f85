package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/inkwellcms/searchlight/pkg/search"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List items in the collection, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Filter by content type",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter by status",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of items to show",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			return listItems(c.String("config"), c.String("type"), c.String("status"), c.Int("limit"))
		},
	}
}

// listItems lists stored items without a query, newest first
func listItems(configPath, contentType, status string, limit int) error {
	_, store, err := openStore(configPath)
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

	filters := search.Filters{Type: contentType, Status: status}
	opts := search.Options{Sort: search.SortNewest}
	if limit > 0 {
		opts.Limit = &limit
	}

	results, err := search.Search(items, filters, opts)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	if len(results.Results) == 0 {
		fmt.Println(noDataStyle.Render("No items found"))
		return nil
	}

	for _, hit := range results.Results {
		record := hit.Record()
		fmt.Printf("%s  %s %s\n",
			record.CreatedAt.Format("2006-01-02"),
			titleStyle.Render(hit.Item.Title),
			metaStyle.Render(fmt.Sprintf("[%s/%s]", hit.Item.Type, hit.Item.Status)))
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d of %d items", len(results.Results), results.TotalCount)))
	return nil
}
