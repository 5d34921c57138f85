package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/inkwellcms/searchlight/pkg/config"
	"github.com/inkwellcms/searchlight/pkg/content"
	"github.com/inkwellcms/searchlight/pkg/log"
	"github.com/inkwellcms/searchlight/pkg/storage"
)

// setupLogging applies the global --debug flag before any command runs.
func setupLogging(debug bool) {
	log.SetGlobalDebug(debug)
}

// openStore loads the configuration and opens the content store it points
// at. Callers own the returned store and must close it.
func openStore(configPath string) (*config.Config, *storage.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening content store: %w", err)
	}

	return cfg, store, nil
}

// readItems decodes a JSON content file into items, assigning fresh IDs to
// items imported without one.
func readItems(path string) ([]content.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}

	items, err := content.DecodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("decoding content file: %w", err)
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}

	return items, nil
}
