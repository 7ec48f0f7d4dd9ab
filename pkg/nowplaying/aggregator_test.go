package nowplaying

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator(t *testing.T) {
	station := StationInfo{ID: "fip", Name: "FIP"}
	agg := NewAggregator(station, 2)
	assert.Equal(t, station, agg.Station())
	assert.Equal(t, Metadata{}, agg.Current())

	agg.Ingest("Air - Playground Love")
	agg.Ingest("Daft Punk - One More Time")
	got := agg.Ingest("Jingle")

	assert.Equal(t, "Jingle", got.Song.Title)
	assert.Nil(t, got.Song.Artist)
	require.Len(t, got.Tracks, 2)
	assert.Equal(t, "Jingle", got.Tracks[0].Song.Title)
	assert.Equal(t, "One More Time", got.Tracks[1].Song.Title)
	assert.Equal(t, got, agg.Current())
}

func TestAggregatorUnbounded(t *testing.T) {
	agg := NewAggregator(StationInfo{ID: "x"}, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agg.Ingest(fmt.Sprintf("Artist %d - Title %d", i, i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, agg.Current().Tracks, 50)
}
