package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/inkwellcms/searchlight/pkg/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Margin(1, 0, 0, 0)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the content collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Free-text search query",
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "Filter by content type",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter by status",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Filter by category",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Require a tag. Can be used multiple times",
			},
			&cli.StringFlag{
				Name:  "author",
				Usage: "Filter by author substring",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort key: relevance, newest, oldest, title, title-desc, status, type, author",
				Value: "relevance",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "Sort order: asc or desc",
				Value: "desc",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Pagination offset",
				Value: 0,
			},
			&cli.BoolFlag{
				Name:  "no-fuzzy",
				Usage: "Disable fuzzy scoring",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			return searchContent(c)
		},
	}
}

// searchContent runs one search against the stored collection and prints
// the ranked results
func searchContent(c *cli.Command) error {
	_, store, err := openStore(c.String("config"))
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

	filters := search.Filters{
		Query:    c.String("query"),
		Type:     c.String("type"),
		Status:   c.String("status"),
		Category: c.String("category"),
		Tags:     c.StringSlice("tag"),
		Author:   c.String("author"),
	}

	limit := c.Int("limit")
	opts := search.Options{
		Sort:   search.SortKey(c.String("sort")),
		Order:  c.String("order"),
		Offset: c.Int("offset"),
	}
	if limit > 0 {
		opts.Limit = &limit
	}
	if c.Bool("no-fuzzy") {
		disabled := false
		opts.Fuzzy = &disabled
	}

	results, err := search.Search(items, filters, opts)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results.Results) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return nil
	}

	for i, hit := range results.Results {
		record := hit.Record()
		fmt.Printf("%d. %s %s\n", opts.Offset+i+1,
			titleStyle.Render(hit.Item.Title),
			scoreStyle.Render(fmt.Sprintf("(%.1f)", hit.Score)))

		meta := []string{hit.Item.Type}
		if hit.Item.Author != "" {
			meta = append(meta, hit.Item.Author)
		}
		meta = append(meta, fmt.Sprintf("%d words, %d min read", record.WordCount, record.ReadingTime))
		if len(hit.Item.Tags) > 0 {
			meta = append(meta, "#"+strings.Join(hit.Item.Tags, " #"))
		}
		fmt.Printf("   %s\n", metaStyle.Render(strings.Join(meta, " · ")))

		if hit.Item.Description != "" {
			fmt.Printf("   %s\n", hit.Item.Description)
		}
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d of %d results (%.2fms)",
		len(results.Results), results.TotalCount, results.SearchTime)))
	return nil
}
