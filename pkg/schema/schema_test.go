package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/zachfi/nowplaying/pkg/pickpath"
)

func validSchema() RadioSchema {
	return RadioSchema{
		Name: "test",
		URLs: []URLConfig{{Name: "tracks_", URL: "http://localhost/tracks"}},
		Paths: Paths{
			Tracks: pickpath.Of("tracks_", "data"),
			Song:   SongPaths{Title: pickpath.Of("title")},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validSchema().Validate())

	tests := map[string]func(s *RadioSchema){
		"empty name":       func(s *RadioSchema) { s.Name = "" },
		"no urls":          func(s *RadioSchema) { s.URLs = nil },
		"url without name": func(s *RadioSchema) { s.URLs[0].Name = "" },
		"empty url":        func(s *RadioSchema) { s.URLs[0].URL = "" },
		"duplicate names":  func(s *RadioSchema) { s.URLs = append(s.URLs, s.URLs[0]) },
		"empty tracks":     func(s *RadioSchema) { s.Paths.Tracks = pickpath.Path{} },
		"nil tracks":       func(s *RadioSchema) { s.Paths.Tracks = nil },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := validSchema()
			mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSchema)
		})
	}
}

func TestExpand(t *testing.T) {
	s := validSchema()
	s.URLs[0].URL = "http://${HOST}/tracks"
	s.URLs[0].Headers = map[string]string{"x-api-key": "${KEY}"}

	env := map[string]string{"HOST": "radio.example", "KEY": "secret"}
	out := s.Expand(func(k string) string { return env[k] })

	assert.Equal(t, "http://radio.example/tracks", out.URLs[0].URL)
	assert.Equal(t, "secret", out.URLs[0].Headers["x-api-key"])
	assert.Equal(t, "${KEY}", s.URLs[0].Headers["x-api-key"], "original must not be modified")
}

func TestExpandLeavesBareDollarAlone(t *testing.T) {
	s := validSchema()
	s.URLs[0].URL = "https://api.example/tracks?$top=10&$orderby=start&key=${KEY}"
	s.URLs[0].Headers = map[string]string{"x-query": "$filter=now", "x-price": "$5"}

	out := s.Expand(func(k string) string {
		if k == "KEY" {
			return "secret"
		}
		return "unexpected"
	})

	assert.Equal(t, "https://api.example/tracks?$top=10&$orderby=start&key=secret", out.URLs[0].URL)
	assert.Equal(t, "$filter=now", out.URLs[0].Headers["x-query"])
	assert.Equal(t, "$5", out.URLs[0].Headers["x-price"])
}

func TestDecodeYAML(t *testing.T) {
	raw := `
name: npo2
urls:
  - name: tracks_
    url: https://example.com/api/tracks
  - name: broadcasts_
    url: https://example.com/api/broadcasts
    headers:
      accept: application/json
paths:
  tracks: [tracks_, data]
  broadcast:
    title: [broadcasts_, data, 0, title]
  time:
    start: [startdatetime]
  song:
    artist: [artist]
    title: [title]
    image-url: [image_url_400x400]
`
	var s RadioSchema
	require.NoError(t, yaml.UnmarshalStrict([]byte(raw), &s))
	require.NoError(t, s.Validate())

	assert.Equal(t, pickpath.Of("broadcasts_", "data", 0, "title"), s.Paths.Broadcast.Title)
	assert.Equal(t, "application/json", s.URLs[1].Headers["accept"])
	assert.Nil(t, s.Paths.Time.End)
	assert.Nil(t, s.Paths.Song.ListenURL)
}

func TestDecodeJSON(t *testing.T) {
	raw := `{
		"name": "custom",
		"urls": [{"name": "tracks_", "url": "http://localhost/x"}],
		"paths": {"tracks": ["tracks_", "data"], "song": {"title": ["title"], "imageUrl": ["images", 0, "uri"]}}
	}`
	var s RadioSchema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.NoError(t, s.Validate())
	assert.Equal(t, pickpath.Of("images", 0, "uri"), s.Paths.Song.ImageURL)
	assert.Nil(t, s.Paths.Broadcast)
}
