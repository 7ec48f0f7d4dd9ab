package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachfi/nowplaying/pkg/pickpath"
	"github.com/zachfi/nowplaying/pkg/schema"
)

func TestAssemble(t *testing.T) {
	merged := ResponseSet{
		"tracks_": decode(t, `{"data": [
			{"track": {"title": "One", "artistName": "A", "images": [{"uri": "one.jpg"}]}, "broadcastDate": "2024-01-01"},
			["not", "an", "object"],
			{"track": {"title": 42}},
			{"track": ["title"]},
			{"other": true}
		]}`),
		"show_": decode(t, `{"title": "Drive", "host": {"name": "X"}}`),
	}
	paths := schema.Paths{
		Tracks: pickpath.Of("tracks_", "data"),
		Time:   &schema.TimePaths{Start: pickpath.Of("broadcastDate")},
		Broadcast: &schema.BroadcastPaths{
			Title:      pickpath.Of("show_", "title"),
			Presenters: pickpath.Of("show_", "host"),
		},
		Song: schema.SongPaths{
			Artist:   pickpath.Of("track", "artistName"),
			Title:    pickpath.Of("track", "title"),
			ImageURL: pickpath.Of("track", "images", 0, "uri"),
		},
	}

	elements := pickpath.Resolve(merged, paths.Tracks).Elements()
	records, dropped := Assemble(elements, merged, paths)

	require.Len(t, records, 3)
	require.Len(t, dropped, 2)
	assert.Equal(t, 1, dropped[0].Index)
	assert.ErrorIs(t, dropped[0].Err, ErrMalformedTrack)
	assert.Equal(t, 3, dropped[1].Index)
	assert.ErrorIs(t, dropped[1].Err, ErrMalformedTrack)

	first := records[0]
	assert.Equal(t, "One", first.Song.Title)
	assert.Equal(t, "one.jpg", *first.Song.ImageURL)
	assert.Equal(t, "2024-01-01", *first.Time.Start)
	assert.Nil(t, first.Time.End)
	assert.Equal(t, "Drive", *first.Broadcast.Title)
	assert.JSONEq(t, `{"name": "X"}`, *first.Broadcast.Presenters)

	assert.Equal(t, "42", records[1].Song.Title)
	assert.Nil(t, records[1].Song.Artist)
	assert.Nil(t, records[1].Time)

	// a missing title is not malformed, it defaults to empty
	assert.Equal(t, "", records[2].Song.Title)
	assert.NotNil(t, records[2].Broadcast)
}

func TestAssembleWithoutTitlePath(t *testing.T) {
	elements := pickpath.Wrap(decode(t, `[{"title": "x"}]`)).Elements()
	records, dropped := Assemble(elements, ResponseSet{}, schema.Paths{Tracks: pickpath.Of("x")})
	require.Empty(t, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Song.Title)
	assert.Nil(t, records[0].Broadcast)
}
