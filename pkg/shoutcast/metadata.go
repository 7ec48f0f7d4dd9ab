package shoutcast

import (
	"html"
	"strings"
)

// Metadata is the content of one inline ICY metadata block.
type Metadata struct {
	StreamTitle string
	StreamURL   string
}

// NewMetadata parses a metadata block such as
// "StreamTitle='Artist - Title';StreamUrl='';" padded with NUL bytes.
func NewMetadata(b []byte) *Metadata {
	raw := strings.TrimRight(string(b), "\x00")
	return &Metadata{
		StreamTitle: extractField(raw, "StreamTitle"),
		StreamURL:   extractField(raw, "StreamUrl"),
	}
}

func (m *Metadata) Equals(other *Metadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.StreamTitle == other.StreamTitle && m.StreamURL == other.StreamURL
}

// extractField returns the value of key. Values may be single or double
// quoted and may themselves contain the quote character, so a closing quote
// only counts when followed by ";" and another key, or by the end of input.
func extractField(meta, key string) string {
	idx := strings.Index(meta, key+"=")
	if idx < 0 {
		return ""
	}
	meta = strings.TrimSpace(meta[idx+len(key)+1:])
	if meta == "" {
		return ""
	}

	quote := meta[0]
	if quote != '\'' && quote != '"' {
		if end := strings.IndexByte(meta, ';'); end >= 0 {
			meta = meta[:end]
		}
		return html.UnescapeString(strings.TrimSpace(meta))
	}

	meta = meta[1:]
	end := -1
	for i := 0; i < len(meta); i++ {
		if meta[i] != quote {
			continue
		}
		rest := strings.TrimLeft(meta[i+1:], " \t")
		if rest == "" || (rest[0] == ';' && (strings.TrimSpace(rest[1:]) == "" || strings.Contains(rest[1:], "="))) {
			end = i
			break
		}
	}
	if end < 0 {
		end = strings.LastIndexByte(meta, quote)
	}
	if end >= 0 {
		meta = meta[:end]
	}

	return html.UnescapeString(strings.TrimSpace(meta))
}
