package fetcher

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/zachfi/nowplaying/pkg/nowplaying"
	"github.com/zachfi/nowplaying/pkg/pickpath"
	"github.com/zachfi/nowplaying/pkg/schema"
)

var ErrMalformedTrack = errors.New("malformed track")

// ResponseSet holds the decoded body of every endpoint of one fetch, keyed by
// endpoint name. It is the root for the tracks and broadcast paths.
type ResponseSet map[string]interface{}

func (r ResponseSet) Lookup(key string) (interface{}, bool) {
	v, ok := r[key]
	return v, ok
}

// DroppedRecord describes a track element that could not be assembled.
type DroppedRecord struct {
	Index int
	Err   error
}

// Assemble builds one record per track element, in order. Elements that are
// not objects, or whose title path does not fit their shape, are dropped and
// reported without affecting their neighbours.
func Assemble(elements []pickpath.Node, merged ResponseSet, paths schema.Paths) ([]nowplaying.Metadata, []DroppedRecord) {
	records := make([]nowplaying.Metadata, 0, len(elements))
	var dropped []DroppedRecord

	for i, el := range elements {
		md, err := assembleOne(el, merged, paths)
		if err != nil {
			dropped = append(dropped, DroppedRecord{Index: i, Err: err})
			continue
		}
		records = append(records, md)
	}

	return records, dropped
}

func assembleOne(el pickpath.Node, merged ResponseSet, paths schema.Paths) (md nowplaying.Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrMalformedTrack, fmt.Sprint(r))
		}
	}()

	if el.Kind() != pickpath.KindObject {
		return md, errors.Wrapf(ErrMalformedTrack, "track element is %s", el.Kind())
	}

	var title string
	if paths.Song.Title != nil {
		n := pickpath.Resolve(el.Interface(), paths.Song.Title)
		if n.Err() != nil {
			return md, errors.Wrapf(ErrMalformedTrack, "title %s: %v", paths.Song.Title, n.Err())
		}
		title, _ = n.String()
	}

	track := el.Interface()

	if t := paths.Time; t != nil {
		md.Time = nowplaying.NewTime(
			pickpath.ResolveString(track, t.Start),
			pickpath.ResolveString(track, t.End),
		)
	}

	if b := paths.Broadcast; b != nil {
		md.Broadcast = nowplaying.NewBroadcast(
			pickpath.ResolveString(merged, b.Title),
			pickpath.ResolveString(merged, b.Presenters),
			pickpath.ResolveString(merged, b.ImageURL),
		)
	}

	md.Song = nowplaying.Song{
		Artist:    pickpath.ResolveString(track, paths.Song.Artist),
		Title:     title,
		ImageURL:  pickpath.ResolveString(track, paths.Song.ImageURL),
		ListenURL: pickpath.ResolveString(track, paths.Song.ListenURL),
	}

	return md, nil
}
