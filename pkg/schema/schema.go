// Package schema describes where a station publishes its metadata and how to
// pick the fields of a record out of the responses.
package schema

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pkg/errors"

	"github.com/zachfi/nowplaying/pkg/pickpath"
)

var ErrInvalidSchema = errors.New("invalid schema")

// Only braced references are expanded; a bare $ is common in query strings.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// URLConfig is one endpoint of a schema. Name is the key under which the
// endpoint's response is merged, and therefore the first segment of any path
// that reads from it.
type URLConfig struct {
	Name    string            `yaml:"name" toml:"name" json:"name"`
	URL     string            `yaml:"url" toml:"url" json:"url"`
	Headers map[string]string `yaml:"headers,omitempty" toml:"headers,omitempty" json:"headers,omitempty"`
}

// Paths groups the pick paths for one record. Tracks, Broadcast and the
// merged response set share a root; Time and Song are resolved against a
// single element of the track list.
type Paths struct {
	Tracks    pickpath.Path   `yaml:"tracks" toml:"tracks" json:"tracks"`
	Time      *TimePaths      `yaml:"time,omitempty" toml:"time,omitempty" json:"time,omitempty"`
	Broadcast *BroadcastPaths `yaml:"broadcast,omitempty" toml:"broadcast,omitempty" json:"broadcast,omitempty"`
	Song      SongPaths       `yaml:"song" toml:"song" json:"song"`
}

// TimePaths are anchored at the track element.
type TimePaths struct {
	Start pickpath.Path `yaml:"start,omitempty" toml:"start,omitempty" json:"start,omitempty"`
	End   pickpath.Path `yaml:"end,omitempty" toml:"end,omitempty" json:"end,omitempty"`
}

// BroadcastPaths are anchored at the merged response set, so every track of
// a fetch shares the same broadcast.
type BroadcastPaths struct {
	Title      pickpath.Path `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Presenters pickpath.Path `yaml:"presenters,omitempty" toml:"presenters,omitempty" json:"presenters,omitempty"`
	ImageURL   pickpath.Path `yaml:"image-url,omitempty" toml:"image-url,omitempty" json:"imageUrl,omitempty"`
}

// SongPaths are anchored at the track element.
type SongPaths struct {
	Artist    pickpath.Path `yaml:"artist,omitempty" toml:"artist,omitempty" json:"artist,omitempty"`
	Title     pickpath.Path `yaml:"title" toml:"title" json:"title"`
	ImageURL  pickpath.Path `yaml:"image-url,omitempty" toml:"image-url,omitempty" json:"imageUrl,omitempty"`
	ListenURL pickpath.Path `yaml:"listen-url,omitempty" toml:"listen-url,omitempty" json:"listenUrl,omitempty"`
}

// RadioSchema describes one station's metadata source.
type RadioSchema struct {
	Name  string      `yaml:"name" toml:"name" json:"name"`
	URLs  []URLConfig `yaml:"urls" toml:"urls" json:"urls"`
	Paths Paths       `yaml:"paths" toml:"paths" json:"paths"`
}

// Validate checks the invariants that must hold before any request is made.
func (s RadioSchema) Validate() error {
	if s.Name == "" {
		return errors.Wrap(ErrInvalidSchema, "name is empty")
	}
	if len(s.URLs) == 0 {
		return errors.Wrapf(ErrInvalidSchema, "schema %q has no urls", s.Name)
	}

	seen := make(map[string]struct{}, len(s.URLs))
	for i, u := range s.URLs {
		if u.Name == "" {
			return errors.Wrapf(ErrInvalidSchema, "schema %q: url %d has no name", s.Name, i)
		}
		if u.URL == "" {
			return errors.Wrapf(ErrInvalidSchema, "schema %q: url %q is empty", s.Name, u.Name)
		}
		if _, ok := seen[u.Name]; ok {
			return errors.Wrapf(ErrInvalidSchema, "schema %q: duplicate url name %q", s.Name, u.Name)
		}
		seen[u.Name] = struct{}{}
	}

	if len(s.Paths.Tracks) == 0 {
		return errors.Wrapf(ErrInvalidSchema, "schema %q: tracks path is empty", s.Name)
	}

	return nil
}

// ExpandEnv returns a copy of s with environment references in URLs and
// header values expanded, e.g. "${SKY_API_KEY}".
func (s RadioSchema) ExpandEnv() RadioSchema {
	return s.Expand(os.Getenv)
}

// Expand is ExpandEnv with a custom lookup.
func (s RadioSchema) Expand(mapping func(string) string) RadioSchema {
	urls := make([]URLConfig, len(s.URLs))
	for i, u := range s.URLs {
		urls[i] = URLConfig{
			Name: u.Name,
			URL:  expand(u.URL, mapping),
		}
		if u.Headers != nil {
			urls[i].Headers = make(map[string]string, len(u.Headers))
			for k, v := range u.Headers {
				urls[i].Headers[k] = expand(v, mapping)
			}
		}
	}
	s.URLs = urls
	return s
}

func expand(v string, mapping func(string) string) string {
	return envRef.ReplaceAllStringFunc(v, func(ref string) string {
		return mapping(ref[2 : len(ref)-1])
	})
}

func (s RadioSchema) String() string {
	return fmt.Sprintf("%s (%d urls, tracks %s)", s.Name, len(s.URLs), s.Paths.Tracks)
}
