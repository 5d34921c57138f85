package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"

	"github.com/inkwellcms/searchlight/pkg/api"
	"github.com/inkwellcms/searchlight/pkg/config"
	"github.com/inkwellcms/searchlight/pkg/log"
	"github.com/inkwellcms/searchlight/pkg/realtime"
	"github.com/inkwellcms/searchlight/pkg/storage"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the search API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen address (overrides the configured one)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			setupLogging(c.Bool("debug"))
			return serve(ctx, c.String("config"), c.String("listen"))
		},
	}
}

// serve runs the API server until interrupted. When the config points at a
// content file, the file is watched and reimported on change, and live
// search sessions are notified through the hub.
func serve(ctx context.Context, configPath, listenOverride string) error {
	logger := log.ForService("serve")

	cfg, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf("failed to close store: %v", err)
		}
	}()

	addr := cfg.ListenAddr
	if listenOverride != "" {
		addr = listenOverride
	}

	hub := realtime.NewHub(0)
	server := api.NewServer(store, cfg, hub)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           gzhttp.GzipHandler(api.CorsMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.ContentFile != "" {
		go watchContentFile(serveCtx, cfg, store, hub)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving API: %w", err)
		}
		return nil
	case sig := <-sigCh:
		fmt.Printf("\nReceived %v, shutting down...\n", sig)
	case <-serveCtx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// watchContentFile reimports the content file whenever it changes. Editors
// often replace files atomically, so rename and remove events re-add the
// path to the watcher. Bursts of events are coalesced by the configured
// debounce period before a reimport runs.
func watchContentFile(ctx context.Context, cfg *config.Config, store *storage.Store, hub *realtime.Hub) {
	logger := log.ForService("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create content file watcher: %v", err)
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warnf("failed to close content file watcher: %v", err)
		}
	}()

	if err := watcher.Add(cfg.ContentFile); err != nil {
		logger.Warnf("failed to watch content file %s: %v", cfg.ContentFile, err)
		return
	}
	logger.Infof("watching content file for changes: %s", cfg.ContentFile)

	debounce := cfg.Debounce.Duration
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if _, err := os.Stat(cfg.ContentFile); os.IsNotExist(err) {
					logger.Warnf("content file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(cfg.ContentFile); err != nil {
					logger.Warnf("failed to re-add content file to watcher: %v", err)
				}
			}

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			if err := reloadContent(cfg, store, hub); err != nil {
				logger.Warnf("failed to reload content: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("content file watcher error: %v", err)
		}
	}
}

// reloadContent reimports the content file and broadcasts the reload to
// live search sessions.
func reloadContent(cfg *config.Config, store *storage.Store, hub *realtime.Hub) error {
	logger := log.ForService("watch")

	items, err := readItems(cfg.ContentFile)
	if err != nil {
		return err
	}

	if err := store.ReplaceAll(items); err != nil {
		return fmt.Errorf("replacing collection: %w", err)
	}

	logger.Infof("reloaded %d items from %s", len(items), cfg.ContentFile)
	hub.Broadcast(realtime.ReloadEvent{
		ItemCount:  len(items),
		ReloadedAt: time.Now().UTC(),
		Source:     "watch",
	})
	return nil
}
