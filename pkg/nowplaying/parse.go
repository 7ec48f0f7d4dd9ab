package nowplaying

import (
	"regexp"
	"strings"
)

var separators = []*regexp.Regexp{
	regexp.MustCompile(`\s+-\s+`),
	regexp.MustCompile(regexp.QuoteMeta(" :: ")),
	regexp.MustCompile(regexp.QuoteMeta(" – ")),
}

const nowPlayingPrefix = "Now Playing:"

// ParseArtistTitle splits a raw "ARTIST - TITLE" line. A separator only counts
// when it splits the line into exactly two parts; otherwise the whole line is
// returned as the title. Blank parts are returned as nil.
func ParseArtistTitle(raw string) (artist, title *string) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, nowPlayingPrefix))

	for _, sep := range separators {
		parts := sep.Split(trimmed, -1)
		if len(parts) == 2 {
			return nonBlank(parts[0]), nonBlank(parts[1])
		}
	}

	return nil, nonBlank(trimmed)
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
