package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/zachfi/nowplaying/app"
	"github.com/zachfi/nowplaying/modules/nowplaying"
	np "github.com/zachfi/nowplaying/pkg/nowplaying"
	"github.com/zachfi/nowplaying/pkg/presets"
	"github.com/zachfi/nowplaying/pkg/shoutcast"
)

type cliOptions struct {
	once    bool
	station string
	icy     string
	follow  bool
	history int
	debug   bool
}

func (c *cliOptions) RegisterFlags(f *flag.FlagSet) {
	f.BoolVar(&c.once, "once", false, "Fetch a single time, print the records as JSON and exit.")
	f.StringVar(&c.station, "station", "", "Preset to fetch with -once.")
	f.StringVar(&c.icy, "icy", "", "Stream URL to probe for ICY metadata with -once or -follow.")
	f.BoolVar(&c.follow, "follow", false, "Keep reading the -icy stream and print a record on every title change.")
	f.IntVar(&c.history, "history", 10, "Tracks kept in the -follow history.")
	f.BoolVar(&c.debug, "debug", false, "Enable debug logging.")
}

func (c *cliOptions) oneShot() bool {
	return c.once || c.follow
}

func runOnce(ctx context.Context, cfg *app.Config, cli *cliOptions, logger *slog.Logger, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if cli.follow {
		if cli.icy == "" {
			return errors.New("-follow needs -icy")
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return follow(ctx, cli.icy, cfg.NowPlaying.UserAgent, cli.history, logger, enc)
	}

	n, err := nowplaying.New(cfg.NowPlaying, *logger, nil)
	if err != nil {
		return err
	}

	var records []np.Metadata
	switch {
	case cli.station != "":
		records, err = n.Get(ctx, presets.ByName(cli.station))
		if err != nil {
			return err
		}
	case cli.icy != "":
		icy, _ := n.Strategy("icy")
		records = icy.FetchMetadata(ctx, cli.icy)
	default:
		return errors.New("-once needs -station or -icy")
	}

	return enc.Encode(records)
}

// follow prints the aggregated record each time the stream title changes.
func follow(ctx context.Context, url, userAgent string, history int, logger *slog.Logger, enc *json.Encoder) error {
	stream, err := shoutcast.Open(ctx, url, shoutcast.WithLogger(logger), shoutcast.WithUserAgent(userAgent))
	if err != nil {
		return errors.Wrap(err, "failed to open stream")
	}
	defer stream.Close()

	if !stream.HasInlineMetadata() {
		return errors.Errorf("stream %s does not send inline metadata", url)
	}

	agg := np.NewAggregator(np.StationInfo{
		ID:        url,
		Name:      stream.Name,
		StreamURL: url,
		Homepage:  stream.URL,
		Genre:     stream.Genre,
	}, history)
	logger.Info("following stream", "name", stream.Name, "genre", stream.Genre, "bitrate", stream.Bitrate)

	stream.MetadataCallbackFunc = func(m *shoutcast.Metadata) {
		if m.StreamTitle == "" {
			return
		}
		if err := enc.Encode(agg.Ingest(m.StreamTitle)); err != nil {
			logger.Error("error writing record", "err", err)
		}
	}

	_, err = io.Copy(io.Discard, stream)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
