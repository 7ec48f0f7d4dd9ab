package fetcher

import (
	"context"
	"log/slog"

	"github.com/zachfi/nowplaying/pkg/nowplaying"
	"github.com/zachfi/nowplaying/pkg/presets"
)

// Client resolves a preset source and fetches it.
type Client struct {
	fetcher  *Fetcher
	registry *presets.Registry
}

func NewClient(f *Fetcher, r *presets.Registry) *Client {
	return &Client{fetcher: f, registry: r}
}

// Get fetches the records for src. An unknown preset name is returned as an
// error wrapping presets.ErrUnknownPreset; everything else degrades the
// result, except cancellation of ctx.
func (c *Client) Get(ctx context.Context, src presets.Source) ([]nowplaying.Metadata, error) {
	s, err := c.registry.Resolve(src)
	if err != nil {
		return nil, err
	}
	return c.fetcher.Fetch(ctx, s)
}

// APIStrategy implements nowplaying.Strategy, treating the identifier as a
// preset name.
type APIStrategy struct {
	client *Client
	logger *slog.Logger
}

var _ nowplaying.Strategy = (*APIStrategy)(nil)

func NewAPIStrategy(c *Client, logger *slog.Logger) *APIStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIStrategy{client: c, logger: logger.With("strategy", "api")}
}

func (s *APIStrategy) FetchMetadata(ctx context.Context, preset string) []nowplaying.Metadata {
	records, err := s.client.Get(ctx, presets.ByName(preset))
	if err != nil {
		s.logger.Error("error fetching metadata", "preset", preset, "err", err)
		return []nowplaying.Metadata{}
	}
	return records
}
