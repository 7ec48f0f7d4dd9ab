package nowplaying

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArtistTitle(t *testing.T) {
	cases := []struct {
		raw    string
		artist *string
		title  *string
	}{
		{raw: "Air - Playground Love", artist: StringPtr("Air"), title: StringPtr("Playground Love")},
		{raw: "Now Playing: Air - Playground Love", artist: StringPtr("Air"), title: StringPtr("Playground Love")},
		{raw: "Air   -  Playground Love", artist: StringPtr("Air"), title: StringPtr("Playground Love")},
		{raw: "Massive Attack :: Teardrop", artist: StringPtr("Massive Attack"), title: StringPtr("Teardrop")},
		{raw: "Björk – Jóga", artist: StringPtr("Björk"), title: StringPtr("Jóga")},
		{raw: "Jay-Z", title: StringPtr("Jay-Z")},
		{raw: "A - B - C", title: StringPtr("A - B - C")},
		{raw: "   ", title: nil},
		{raw: "Station ID", title: StringPtr("Station ID")},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			artist, title := ParseArtistTitle(tc.raw)
			assert.Equal(t, tc.artist, artist)
			assert.Equal(t, tc.title, title)
		})
	}
}

func TestNewTimeAndBroadcast(t *testing.T) {
	assert.Nil(t, NewTime(nil, nil))
	assert.Nil(t, NewBroadcast(nil, nil, nil))

	start := StringPtr("2024-01-01T10:00:00Z")
	assert.Equal(t, &Time{Start: start}, NewTime(start, nil))

	img := StringPtr("https://example.com/show.png")
	assert.Equal(t, &Broadcast{ImageURL: img}, NewBroadcast(nil, nil, img))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", Deref(StringPtr("x"), "def"))
	assert.Equal(t, "def", Deref(nil, "def"))
}
