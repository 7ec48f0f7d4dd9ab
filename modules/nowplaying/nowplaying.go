package nowplaying

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/grafana/dskit/services"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zachfi/nowplaying/pkg/fetcher"
	np "github.com/zachfi/nowplaying/pkg/nowplaying"
	"github.com/zachfi/nowplaying/pkg/presets"
	"github.com/zachfi/nowplaying/pkg/shoutcast"
)

var module = "nowplaying"

// NowPlaying serves station metadata over HTTP.
type NowPlaying struct {
	services.Service
	cfg    *Config
	logger *slog.Logger

	registry *presets.Registry
	client   *fetcher.Client
	api      np.Strategy
	icy      np.Strategy

	watcher *fsnotify.Watcher
}

// New creates the module and loads the presets. Metrics are registered with
// reg when it is not nil.
func New(cfg Config, logger slog.Logger, reg prometheus.Registerer) (*NowPlaying, error) {
	n := &NowPlaying{
		cfg:    &cfg,
		logger: logger.With("module", module),
	}

	schemas, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load presets")
	}
	n.registry = presets.NewRegistry(schemas...)

	transport := fetcher.NewHTTPTransport(nil, cfg.UserAgent, cfg.RequestTimeout)
	f := fetcher.New(transport, n.logger,
		fetcher.WithMetrics(fetcher.NewMetrics(reg)),
		fetcher.WithMaxConcurrent(cfg.MaxConcurrentEndpoints),
	)
	n.client = fetcher.NewClient(f, n.registry)
	n.api = fetcher.NewAPIStrategy(n.client, n.logger)
	n.icy = shoutcast.NewStrategy(n.logger, cfg.ICYTimeout)

	n.Service = services.NewBasicService(n.starting, n.running, n.stopping)

	return n, nil
}

// Get fetches the records for src; see fetcher.Client.Get.
func (n *NowPlaying) Get(ctx context.Context, src presets.Source) ([]np.Metadata, error) {
	return n.client.Get(ctx, src)
}

// Strategy returns the strategy for kind, "api" or "icy".
func (n *NowPlaying) Strategy(kind string) (np.Strategy, bool) {
	switch kind {
	case "api":
		return n.api, true
	case "icy":
		return n.icy, true
	}
	return nil, false
}

func (n *NowPlaying) starting(_ context.Context) error {
	n.logger.Info("loaded presets", "presets", n.registry.Names())

	if !n.cfg.WatchPresets || n.cfg.PresetsFile == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create presets watcher")
	}

	// Watch the directory so editors that replace the file are noticed.
	if err := watcher.Add(filepath.Dir(n.cfg.PresetsFile)); err != nil {
		_ = watcher.Close()
		return errors.Wrap(err, "failed to watch presets file")
	}
	n.watcher = watcher

	return nil
}

func (n *NowPlaying) running(ctx context.Context) error {
	if n.watcher == nil {
		<-ctx.Done()
		return nil
	}

	target := filepath.Clean(n.cfg.PresetsFile)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-n.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				n.reloadPresets()
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil
			}
			n.logger.Error("presets watcher error", "err", err)
		}
	}
}

// reloadPresets keeps the current presets when the file cannot be loaded.
func (n *NowPlaying) reloadPresets() {
	schemas, err := presets.Load(n.cfg.PresetsFile)
	if err != nil {
		n.logger.Error("failed to reload presets", "file", n.cfg.PresetsFile, "err", err)
		return
	}
	n.registry.Replace(schemas)
	n.logger.Info("reloaded presets", "presets", n.registry.Names())
}

func (n *NowPlaying) stopping(_ error) error {
	n.logger.Info("stopping")
	if n.watcher != nil {
		return n.watcher.Close()
	}
	return nil
}
