package nowplaying

import "context"

// Metadata is one normalized track as reported by a station.
type Metadata struct {
	Time      *Time      `json:"time,omitempty"`
	Broadcast *Broadcast `json:"broadcast,omitempty"`
	Song      Song       `json:"song"`

	// Tracks is only populated by the Aggregator, newest first.
	Tracks []Track `json:"tracks,omitempty"`
}

// Time is the window in which a track played, as the upstream reported it.
type Time struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// Broadcast describes the show a track was played in.
type Broadcast struct {
	Title      *string `json:"title,omitempty"`
	Presenters *string `json:"presenters,omitempty"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

type Song struct {
	Artist    *string `json:"artist,omitempty"`
	Title     string  `json:"title"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	ListenURL *string `json:"listenUrl,omitempty"`
}

type Track struct {
	Time      *Time      `json:"time,omitempty"`
	Broadcast *Broadcast `json:"broadcast,omitempty"`
	Song      Song       `json:"song"`
}

// StationInfo identifies a radio station.
type StationInfo struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	StreamURL string `json:"streamUrl,omitempty" yaml:"stream-url,omitempty"`
	Homepage  string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Genre     string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Country   string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Strategy fetches metadata for a source identifier: a stream URL for ICY, a
// preset name for the API strategy. Implementations never return an error;
// failures are logged and surface as an empty result.
type Strategy interface {
	FetchMetadata(ctx context.Context, identifier string) []Metadata
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(ctx context.Context, identifier string) []Metadata

func (f StrategyFunc) FetchMetadata(ctx context.Context, identifier string) []Metadata {
	return f(ctx, identifier)
}

// NewTime returns nil when neither bound is known.
func NewTime(start, end *string) *Time {
	if start == nil && end == nil {
		return nil
	}
	return &Time{Start: start, End: end}
}

// NewBroadcast returns nil when no field is known.
func NewBroadcast(title, presenters, imageURL *string) *Broadcast {
	if title == nil && presenters == nil && imageURL == nil {
		return nil
	}
	return &Broadcast{Title: title, Presenters: presenters, ImageURL: imageURL}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or def.
func Deref(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
