package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateIslandByID(t *testing.T) {
	doc, err := LoadHTML(`<html><body><script id="data-deferred-state-0" type="application/json">{"a":1}</script></body></html>`)
	require.NoError(t, err)

	island, ok := LocateIsland(doc)
	require.True(t, ok)
	assert.Equal(t, SourceDeferredState, island.Source)
	assert.Equal(t, `{"a":1}`, island.Raw)
}

func TestLocateIslandByIDPrefix(t *testing.T) {
	doc, err := LoadHTML(`<html><body><script id="data-deferred-state-1" type="application/json">{"b":2}</script></body></html>`)
	require.NoError(t, err)

	island, ok := LocateIsland(doc)
	require.True(t, ok)
	assert.Equal(t, SourceDeferredState, island.Source)
}

func TestLocateIslandJSONLD(t *testing.T) {
	doc, err := LoadHTML(`<html><head><script type="application/ld+json">{"@type":"Product","image":["https://a.example/p.jpg"]}</script></head><body></body></html>`)
	require.NoError(t, err)

	island, ok := LocateIsland(doc)
	require.True(t, ok)
	assert.Equal(t, SourceJSONLD, island.Source)
}

func TestLocateIslandAbsent(t *testing.T) {
	doc, err := LoadHTML(`<html><body><p>plain page</p><script id="data-deferred-state-0"></script></body></html>`)
	require.NoError(t, err)

	_, ok := LocateIsland(doc)
	assert.False(t, ok)
}

func TestIslandDecodeError(t *testing.T) {
	island := &Island{Source: SourceDeferredState, Raw: "{not json"}
	_, err := island.Decode()
	assert.Error(t, err)
}
