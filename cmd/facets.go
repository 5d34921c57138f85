package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/inkwellcms/searchlight/pkg/search"
)

var facetHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("214"))

// FacetsCommand creates the facets command
func FacetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "facets",
		Usage: "List the filter values present in the collection",
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			return showFacets(c.String("config"))
		},
	}
}

func showFacets(configPath string) error {
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

	facets := search.FilterOptions(items)

	printFacet := func(name string, values []string) {
		fmt.Println(facetHeaderStyle.Render(name))
		if len(values) == 0 {
			fmt.Println(noDataStyle.Render("  (none)"))
			return
		}
		fmt.Printf("  %s\n", strings.Join(values, ", "))
	}

	printFacet("Content types", facets.ContentTypes)
	printFacet("Statuses", facets.Statuses)
	printFacet("Categories", facets.Categories)
	printFacet("Tags", facets.Tags)
	printFacet("Authors", facets.Authors)
	printFacet("Block kinds", facets.BlockKinds)
	return nil
}
