package shoutcast

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// icyBody interleaves audio chunks of metaint bytes with metadata blocks.
func icyBody(metaint int, titles ...string) []byte {
	buf := bytes.NewBuffer(nil)
	for i, title := range titles {
		buf.Write(bytes.Repeat([]byte{byte('a' + i)}, metaint))
		if title == "" {
			buf.WriteByte(0)
			continue
		}
		meta := fmt.Sprintf("StreamTitle='%s';", title)
		for len(meta)%16 != 0 {
			meta += "\x00"
		}
		buf.WriteByte(byte(len(meta) / 16))
		buf.WriteString(meta)
	}
	return buf.Bytes()
}

func TestNewMetadata(t *testing.T) {
	tests := []struct {
		name  string
		meta  string
		title string
		url   string
	}{
		{name: "single quotes", meta: "StreamTitle='Artist - Track';", title: "Artist - Track"},
		{name: "quoted apostrophe", meta: "StreamTitle='JANE'S ADDICTION - BEEN CAUGHT STEALING';", title: "JANE'S ADDICTION - BEEN CAUGHT STEALING"},
		{name: "double quotes", meta: `StreamTitle="Double Quoted";`, title: "Double Quoted"},
		{name: "missing terminator", meta: "StreamTitle='No Terminator", title: "No Terminator"},
		{name: "html entities", meta: "StreamTitle=' AC/DC &amp; Friends ';", title: "AC/DC & Friends"},
		{name: "with url", meta: "StreamTitle='A - B';StreamUrl='http://x';\x00\x00", title: "A - B", url: "http://x"},
		{name: "empty", meta: "StreamTitle='';"},
		{name: "no title", meta: "StreamUrl='http://example'", url: "http://example"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMetadata([]byte(tc.meta))
			assert.Equal(t, tc.title, m.StreamTitle)
			assert.Equal(t, tc.url, m.StreamURL)
		})
	}

	assert.True(t, (*Metadata)(nil).Equals(nil))
	assert.False(t, NewMetadata(nil).Equals(nil))
	assert.True(t, NewMetadata([]byte("StreamTitle='x';")).Equals(&Metadata{StreamTitle: "x"}))
}

func TestParseStreamTitle(t *testing.T) {
	first := ParseStreamTitle("StreamTitle='Daft Punk - One More Time';")[0]
	require.NotNil(t, first.Song.Artist)
	assert.Equal(t, "Daft Punk", *first.Song.Artist)
	assert.Equal(t, "One More Time", first.Song.Title)

	first = ParseStreamTitle("StreamTitle='Instrumental Mix';")[0]
	assert.Nil(t, first.Song.Artist)
	assert.Equal(t, "Instrumental Mix", first.Song.Title)

	first = ParseStreamTitle("A - B - C")[0]
	assert.Equal(t, "A", *first.Song.Artist)
	assert.Equal(t, "B - C", first.Song.Title)

	first = ParseStreamTitle(" - Untitled")[0]
	assert.Nil(t, first.Song.Artist)
	assert.Equal(t, "Untitled", first.Song.Title)
}

func TestStreamStripsMetadata(t *testing.T) {
	body := icyBody(8, "One", "", "Two")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.Header.Get("icy-metadata"))
		w.Header().Set("icy-metaint", "8")
		w.Header().Set("icy-name", "Groove Salad")
		w.Header().Set("icy-br", "128,128")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	s, err := Open(context.Background(), srv.URL+"/stream", WithClient(srv.Client()), WithLogger(testLogger()))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Groove Salad", s.Name)
	assert.Equal(t, 128, s.Bitrate)
	assert.Equal(t, "Groove Salad", s.Headers["name"])
	assert.True(t, s.HasInlineMetadata())

	var titles []string
	s.MetadataCallbackFunc = func(m *Metadata) { titles = append(titles, m.StreamTitle) }

	audio, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaabbbbbbbbcccccccc", string(audio))
	assert.Equal(t, []string{"One", "Two"}, titles)
	assert.Equal(t, "Two", s.Metadata().StreamTitle)
}

func TestOpenResolvesPlaylists(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listen.pls":
			_, _ = fmt.Fprintf(w, "[playlist]\nNumberOfEntries=1\nFile1=%s/listen.m3u\n", srvURL)
		case "/listen.m3u":
			_, _ = fmt.Fprintf(w, "#EXTM3U\n#EXTINF:-1,Station\n%s/stream\n", srvURL)
		case "/stream":
			w.Header().Set("icy-metaint", "4")
			w.Header().Set("icy-name", "Resolved")
			_, _ = w.Write(icyBody(4, "X - Y"))
		case "/empty.pls":
			_, _ = io.WriteString(w, "[playlist]\nNumberOfEntries=0\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	s, err := Open(context.Background(), srv.URL+"/listen.pls", WithClient(srv.Client()), WithLogger(testLogger()))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "Resolved", s.Name)

	_, err = Open(context.Background(), srv.URL+"/empty.pls", WithClient(srv.Client()), WithLogger(testLogger()))
	assert.Error(t, err)

	_, err = Open(context.Background(), srv.URL+"/missing", WithClient(srv.Client()), WithLogger(testLogger()))
	assert.Error(t, err)
}

func TestParsePlaylists(t *testing.T) {
	u, err := parsePLS(strings.NewReader("[playlist]\nFile1= http://a/stream \nTitle1=x\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://a/stream", u)

	u, err = parseM3U(strings.NewReader("#EXTM3U\n\n# comment\nhttps://b/stream\nhttp://c\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://b/stream", u)

	_, err = parseM3U(strings.NewReader("#EXTM3U\nrelative/path\n"))
	assert.Error(t, err)
}

func TestStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/header-title":
			w.Header().Set("icy-name", "Station")
			w.Header().Set("icy-streamtitle", "Daft Punk - One More Time")
		case "/inline":
			w.Header().Set("icy-metaint", "1")
			w.Header().Set("icy-name", "Station")
			_, _ = w.Write(icyBody(1, "", "Air - La Femme d'Argent"))
		case "/name-only":
			w.Header().Set("icy-name", "Radio Name")
		case "/title-only":
			w.Header().Set("icy-title", "Some Title")
		case "/plain":
			_, _ = io.WriteString(w, "no icy here")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := NewStrategy(testLogger(), 2*time.Second, WithClient(srv.Client()))
	ctx := context.Background()

	got := s.FetchMetadata(ctx, srv.URL+"/header-title")
	require.Len(t, got, 1)
	assert.Equal(t, "Daft Punk", *got[0].Song.Artist)
	assert.Equal(t, "One More Time", got[0].Song.Title)

	got = s.FetchMetadata(ctx, srv.URL+"/inline")
	require.Len(t, got, 1)
	assert.Equal(t, "Air", *got[0].Song.Artist)
	assert.Equal(t, "La Femme d'Argent", got[0].Song.Title)

	got = s.FetchMetadata(ctx, srv.URL+"/name-only")
	require.Len(t, got, 1)
	assert.Equal(t, "Radio Name", *got[0].Song.Artist)
	assert.Equal(t, "Radio Name", got[0].Song.Title)

	got = s.FetchMetadata(ctx, srv.URL+"/title-only")
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Song.Artist)
	assert.Equal(t, "Some Title", got[0].Song.Title)

	got = s.FetchMetadata(ctx, srv.URL+"/plain")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = s.FetchMetadata(ctx, srv.URL+"/missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
