package shoutcast

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultUserAgent = "iTunes/12.9.2 (Macintosh; OS X 10.14.3) AppleWebKit/606.4.5"

	// maxPlaylistHops bounds playlist-to-playlist redirection.
	maxPlaylistHops = 3
)

// MetadataCallbackFunc is the type of the function called when the stream metadata changes
type MetadataCallbackFunc func(m *Metadata)

// Stream represents an open shoutcast stream.
type Stream struct {
	// The name of the server
	Name string

	// What category the server falls under
	Genre string

	// The description of the stream
	Description string

	// Homepage of the server
	URL string

	// Bitrate of the server
	Bitrate int

	// Headers holds every icy-* response header, lower cased and without
	// the "icy-" prefix.
	Headers map[string]string

	// Optional function to be executed when stream metadata changes
	MetadataCallbackFunc MetadataCallbackFunc

	// Amount of audio bytes between metadata blocks; zero when the server
	// does not interleave metadata.
	metaint int

	metadata *Metadata

	// The number of audio bytes read since the last metadata block
	pos int

	r      *bufio.Reader
	rc     io.ReadCloser
	logger *slog.Logger
}

type options struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

type Option func(*options)

// WithClient sets the HTTP client. It must not have an overall timeout, or
// long running reads are cut off; use the context instead.
func WithClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func defaultClient() *http.Client {
	// Timeout for establishing the connection only; reading the stream may
	// go on indefinitely.
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}
}

// Open establishes a connection to a remote server. Playlist files (.pls,
// .m3u) are resolved to the stream they point at. The stream lives until
// Close is called or ctx is done.
func Open(ctx context.Context, url string, opts ...Option) (*Stream, error) {
	o := options{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = defaultClient()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	for hop := 0; hop <= maxPlaylistHops; hop++ {
		s, next, err := open(ctx, url, &o)
		if err != nil {
			return nil, err
		}
		if s != nil {
			return s, nil
		}
		o.logger.Info("resolved playlist", "url", url, "stream", next)
		url = next
	}

	return nil, fmt.Errorf("too many playlist redirections")
}

// open returns either a stream, or the URL a playlist points at.
func open(ctx context.Context, url string, o *options) (*Stream, string, error) {
	o.logger.Debug("opening stream", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("accept", "*/*")
	req.Header.Add("user-agent", o.userAgent)
	req.Header.Add("icy-metadata", "1")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	r := bufio.NewReader(resp.Body)

	var head []byte
	if resp.Header.Get("icy-metaint") == "" {
		// Peek only fails short of 512 bytes on EOF or error; what we got is
		// still enough to sniff a playlist.
		head, _ = r.Peek(512)
	}

	switch detectPlaylist(resp, url, head) {
	case plsPlaylist:
		defer resp.Body.Close()
		next, err := parsePLS(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse PLS playlist: %w", err)
		}
		return nil, next, nil
	case m3uPlaylist:
		defer resp.Body.Close()
		next, err := parseM3U(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse M3U playlist: %w", err)
		}
		return nil, next, nil
	}

	s := &Stream{
		Name:        resp.Header.Get("icy-name"),
		Genre:       resp.Header.Get("icy-genre"),
		Description: resp.Header.Get("icy-description"),
		URL:         resp.Header.Get("icy-url"),
		Headers:     icyHeaders(resp.Header),
		r:           r,
		rc:          resp.Body,
		logger:      o.logger,
	}

	if raw := resp.Header.Get("icy-br"); raw != "" {
		// Some servers send "128,128".
		first, _, _ := strings.Cut(raw, ",")
		if br, err := strconv.Atoi(strings.TrimSpace(first)); err == nil {
			s.Bitrate = br
		} else {
			o.logger.Debug("cannot parse bitrate", "value", raw, "err", err)
		}
	}

	if raw := resp.Header.Get("icy-metaint"); raw != "" {
		metaint, err := strconv.Atoi(raw)
		if err != nil || metaint < 0 {
			resp.Body.Close()
			return nil, "", fmt.Errorf("cannot parse metaint %q", raw)
		}
		s.metaint = metaint
	}

	return s, "", nil
}

func icyHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for k, v := range h {
		lower := strings.ToLower(k)
		if strings.HasPrefix(lower, "icy-") && len(v) > 0 {
			out[strings.TrimPrefix(lower, "icy-")] = v[0]
		}
	}
	return out
}

// HasInlineMetadata reports whether the server interleaves metadata blocks
// with the audio.
func (s *Stream) HasInlineMetadata() bool {
	return s.metaint > 0
}

// Metadata returns the most recent metadata block, nil before the first.
func (s *Stream) Metadata() *Metadata {
	return s.metadata
}

// Read implements io.Reader. Only audio bytes are returned; metadata blocks
// are consumed and reported through MetadataCallbackFunc when they change.
func (s *Stream) Read(buf []byte) (int, error) {
	if s.metaint == 0 {
		return s.r.Read(buf)
	}

	if s.pos == s.metaint {
		if err := s.readMetadata(); err != nil {
			return 0, err
		}
	}

	if left := s.metaint - s.pos; len(buf) > left {
		buf = buf[:left]
	}

	n, err := s.r.Read(buf)
	s.pos += n
	if err == nil && s.pos == s.metaint {
		err = s.readMetadata()
	}

	return n, err
}

func (s *Stream) readMetadata() error {
	length, err := s.r.ReadByte()
	if err != nil {
		return err
	}
	s.pos = 0

	size := int(length) * 16
	if size == 0 {
		return nil
	}

	block := make([]byte, size)
	if _, err := io.ReadFull(s.r, block); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}

	if m := NewMetadata(block); !m.Equals(s.metadata) {
		s.metadata = m
		if s.MetadataCallbackFunc != nil {
			s.MetadataCallbackFunc(m)
		}
	}

	return nil
}

// Close closes the stream
func (s *Stream) Close() error {
	s.logger.Debug("closing stream", "name", s.Name)
	return s.rc.Close()
}
