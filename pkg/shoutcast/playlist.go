package shoutcast

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxPlaylistSize bounds how much of a playlist body is read.
const maxPlaylistSize = 64 * 1024

type playlistKind int

const (
	notPlaylist playlistKind = iota
	plsPlaylist
	m3uPlaylist
)

// detectPlaylist classifies a response by content type, URL suffix and the
// first bytes of the body. Responses announcing icy-metaint are streams.
func detectPlaylist(resp *http.Response, url string, head []byte) playlistKind {
	if resp.Header.Get("icy-metaint") != "" {
		return notPlaylist
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	lowerURL := strings.ToLower(url)
	if i := strings.IndexAny(lowerURL, "?#"); i >= 0 {
		lowerURL = lowerURL[:i]
	}
	trimmed := bytes.TrimSpace(head)

	switch {
	case strings.Contains(contentType, "audio/x-scpls"),
		strings.Contains(contentType, "application/pls+xml"),
		strings.HasSuffix(lowerURL, ".pls"),
		bytes.Contains(head, []byte("[playlist]")),
		bytes.Contains(head, []byte("File1=")):
		return plsPlaylist
	case strings.Contains(contentType, "mpegurl"),
		strings.HasSuffix(lowerURL, ".m3u"),
		strings.HasSuffix(lowerURL, ".m3u8"),
		bytes.HasPrefix(trimmed, []byte("#EXTM3U")),
		bytes.HasPrefix(trimmed, []byte("http://")),
		bytes.HasPrefix(trimmed, []byte("https://")):
		return m3uPlaylist
	}

	return notPlaylist
}

// parsePLS returns the first FileN entry of a PLS playlist.
func parsePLS(body io.Reader) (string, error) {
	sc := bufio.NewScanner(io.LimitReader(body, maxPlaylistSize))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "File") {
			continue
		}
		if _, url, ok := strings.Cut(line, "="); ok {
			if url = strings.TrimSpace(url); url != "" {
				return url, nil
			}
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}

	return "", fmt.Errorf("no stream URL found in PLS playlist")
}

// parseM3U returns the first http(s) entry of an M3U playlist.
func parseM3U(body io.Reader) (string, error) {
	sc := bufio.NewScanner(io.LimitReader(body, maxPlaylistSize))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}

	return "", fmt.Errorf("no stream URL found in M3U playlist")
}
