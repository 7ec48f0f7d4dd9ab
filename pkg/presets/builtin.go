package presets

import (
	"github.com/zachfi/nowplaying/pkg/pickpath"
	"github.com/zachfi/nowplaying/pkg/schema"
)

// NPO2 reads tracks and the current broadcast from two sibling endpoints.
var NPO2 = schema.RadioSchema{
	Name: "npo2",
	URLs: []schema.URLConfig{
		{Name: "tracks_", URL: "https://www.nporadio2.nl/api/tracks"},
		{Name: "broadcasts_", URL: "https://www.nporadio2.nl/api/broadcasts"},
	},
	Paths: schema.Paths{
		Tracks: pickpath.Of("tracks_", "data"),
		Broadcast: &schema.BroadcastPaths{
			Title:      pickpath.Of("broadcasts_", "data", 0, "title"),
			Presenters: pickpath.Of("broadcasts_", "data", 0, "presenters"),
			ImageURL:   pickpath.Of("broadcasts_", "data", 0, "image_url_400x400"),
		},
		Time: &schema.TimePaths{
			Start: pickpath.Of("startdatetime"),
			End:   pickpath.Of("enddatetime"),
		},
		Song: schema.SongPaths{
			Artist:    pickpath.Of("artist"),
			Title:     pickpath.Of("title"),
			ImageURL:  pickpath.Of("image_url_400x400"),
			ListenURL: pickpath.Of("spotify_url"),
		},
	},
}

const skyQuery = "https://graph.talparad.io/?query=%7B%0A%20%20station(slug%3A%20%22sky-radio%22)%20%7B%0A%20%20%20%20title%0A%20%20%20%20playouts(profile%3A%20%22%22%2C%20limit%3A%2010)%20%7B%0A%20%20%20%20%20%20broadcastDate%0A%20%20%20%20%20%20track%20%7B%0A%20%20%20%20%20%20%20%20id%0A%20%20%20%20%20%20%20%20title%0A%20%20%20%20%20%20%20%20artistName%0A%20%20%20%20%20%20%20%20isrc%0A%20%20%20%20%20%20%20%20images%20%7B%0A%20%20%20%20%20%20%20%20%20%20type%0A%20%20%20%20%20%20%20%20%20%20uri%0A%20%20%20%20%20%20%20%20%20%20__typename%0A%20%20%20%20%20%20%20%20%7D%0A%20%20%20%20%20%20%20%20__typename%0A%20%20%20%20%20%20%7D%0A%20%20%20%20%20%20__typename%0A%20%20%20%20%7D%0A%20%20%20%20__typename%0A%20%20%7D%0A%7D&variables=%7B%7D"

// Sky queries a GraphQL endpoint. The API key is taken from SKY_API_KEY.
var Sky = schema.RadioSchema{
	Name: "sky",
	URLs: []schema.URLConfig{
		{
			Name:    "tracks_",
			URL:     skyQuery,
			Headers: map[string]string{"x-api-key": "${SKY_API_KEY}"},
		},
	},
	Paths: schema.Paths{
		Tracks: pickpath.Of("tracks_", "data", "station", "playouts"),
		Time: &schema.TimePaths{
			Start: pickpath.Of("broadcastDate"),
			End:   pickpath.Of("broadcastDate"),
		},
		Song: schema.SongPaths{
			Artist:   pickpath.Of("track", "artistName"),
			Title:    pickpath.Of("track", "title"),
			ImageURL: pickpath.Of("track", "images", 0, "uri"),
		},
	},
}

// Builtin returns the presets shipped with the binary.
func Builtin() []schema.RadioSchema {
	return []schema.RadioSchema{NPO2, Sky}
}
