package shoutcast

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/zachfi/nowplaying/pkg/nowplaying"
)

const (
	defaultProbeTimeout = 10 * time.Second

	// probeBlocks is how many metadata intervals are read while waiting for
	// the first non-empty StreamTitle.
	probeBlocks = 2
)

var streamTitleRe = regexp.MustCompile(`StreamTitle='(.*?)';`)

// Strategy implements nowplaying.Strategy for ICY streams; the identifier is
// the stream (or playlist) URL.
type Strategy struct {
	logger  *slog.Logger
	timeout time.Duration
	opts    []Option
}

var _ nowplaying.Strategy = (*Strategy)(nil)

// NewStrategy creates a Strategy. A probe is abandoned after timeout.
func NewStrategy(logger *slog.Logger, timeout time.Duration, opts ...Option) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	logger = logger.With("strategy", "icy")

	return &Strategy{
		logger:  logger,
		timeout: timeout,
		opts:    append([]Option{WithLogger(logger)}, opts...),
	}
}

// FetchMetadata reports the current track of the stream. Header values are
// preferred; when they carry no title the first inline metadata block is
// read.
func (s *Strategy) FetchMetadata(ctx context.Context, streamURL string) []nowplaying.Metadata {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stream, err := Open(ctx, streamURL, s.opts...)
	if err != nil {
		s.logger.Error("error fetching icy metadata", "url", streamURL, "err", err)
		return []nowplaying.Metadata{}
	}
	defer stream.Close()

	headers := stream.Headers
	if title := headers["streamtitle"]; title != "" {
		return ParseStreamTitle("StreamTitle='" + title + "';")
	}

	if stream.HasInlineMetadata() {
		m, err := firstMetadata(stream)
		if err != nil {
			s.logger.Debug("no inline metadata", "url", streamURL, "err", err)
		} else if m.StreamTitle != "" {
			return ParseStreamTitle(m.StreamTitle)
		}
	}

	if len(headers) == 0 {
		return []nowplaying.Metadata{}
	}

	title := firstNonEmpty(headers["title"], headers["name"], "Unknown")
	artist := firstNonEmpty(headers["artist"], headers["name"])

	return []nowplaying.Metadata{{
		Song: nowplaying.Song{
			Artist: nowplaying.StringPtr(artist),
			Title:  title,
		},
	}}
}

// firstMetadata reads audio until a metadata block with a title shows up or
// probeBlocks intervals have passed.
func firstMetadata(stream *Stream) (*Metadata, error) {
	var found *Metadata
	stream.MetadataCallbackFunc = func(m *Metadata) {
		if m.StreamTitle != "" {
			found = m
		}
	}
	defer func() { stream.MetadataCallbackFunc = nil }()

	limit := int64(stream.metaint)*probeBlocks + 1
	buf := make([]byte, 16*1024)
	var read int64
	for found == nil && read < limit {
		n, err := stream.Read(buf)
		read += int64(n)
		if err != nil {
			if found != nil {
				break
			}
			return nil, err
		}
	}

	if found == nil {
		return nil, io.EOF
	}
	return found, nil
}

// ParseStreamTitle turns "StreamTitle='Artist - Title';" into a record. Input
// without the StreamTitle wrapper is used as is. The title is split once on
// " - "; without a separator the whole text is the title.
func ParseStreamTitle(raw string) []nowplaying.Metadata {
	streamTitle := raw
	if m := streamTitleRe.FindStringSubmatch(raw); m != nil {
		streamTitle = m[1]
	}

	var song nowplaying.Song
	if artist, title, ok := strings.Cut(streamTitle, " - "); ok {
		song.Artist = nowplaying.StringPtr(strings.TrimSpace(artist))
		song.Title = strings.TrimSpace(title)
	} else {
		song.Title = strings.TrimSpace(streamTitle)
	}

	return []nowplaying.Metadata{{Song: song}}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
