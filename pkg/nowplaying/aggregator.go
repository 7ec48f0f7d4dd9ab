package nowplaying

import "sync"

// Aggregator turns a sequence of raw metadata lines for one station into a
// record whose Song is the latest line and whose Tracks hold the history.
type Aggregator struct {
	station StationInfo
	limit   int

	mtx  sync.RWMutex
	last Metadata
}

// NewAggregator creates an Aggregator. A limit of zero keeps every track.
func NewAggregator(station StationInfo, limit int) *Aggregator {
	return &Aggregator{
		station: station,
		limit:   limit,
	}
}

func (a *Aggregator) Station() StationInfo {
	return a.station
}

// Ingest parses raw and prepends it to the history.
func (a *Aggregator) Ingest(raw string) Metadata {
	artist, title := ParseArtistTitle(raw)
	track := Track{
		Song: Song{Artist: artist, Title: Deref(title, "")},
	}

	a.mtx.Lock()
	defer a.mtx.Unlock()

	tracks := make([]Track, 0, len(a.last.Tracks)+1)
	tracks = append(tracks, track)
	tracks = append(tracks, a.last.Tracks...)
	if a.limit > 0 && len(tracks) > a.limit {
		tracks = tracks[:a.limit]
	}

	a.last = Metadata{
		Time:      a.last.Time,
		Broadcast: a.last.Broadcast,
		Song:      track.Song,
		Tracks:    tracks,
	}

	return a.last
}

// Current returns the latest record.
func (a *Aggregator) Current() Metadata {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.last
}
