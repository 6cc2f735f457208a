package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"
)

// IslandSource identifies which locate strategy produced a data island.
type IslandSource string

const (
	// SourceDeferredState is the page's render-state script element.
	SourceDeferredState IslandSource = "deferred-state"
	// SourceJSONLD is a schema.org structured-data script block.
	SourceJSONLD IslandSource = "json-ld"
)

// deferredStateID is the element id of the primary data island.
const deferredStateID = "data-deferred-state-0"

// Island is a located serialized data block.
type Island struct {
	Source IslandSource
	Raw    string
}

// LocateIsland probes the document for an embedded data block. Strategies are
// tried in order: the deferred-state script by exact id, any script whose id
// carries the deferred-state prefix, then JSON-LD blocks.
func LocateIsland(doc *goquery.Document) (*Island, bool) {
	if raw := strings.TrimSpace(doc.Find("script#" + deferredStateID).First().Text()); raw != "" {
		return &Island{Source: SourceDeferredState, Raw: raw}, true
	}

	if raw := strings.TrimSpace(doc.Find("script[id^='data-deferred-state']").First().Text()); raw != "" {
		return &Island{Source: SourceDeferredState, Raw: raw}, true
	}

	var found *Island
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if raw := strings.TrimSpace(s.Text()); raw != "" {
			found = &Island{Source: SourceJSONLD, Raw: raw}
			return false
		}
		return true
	})
	if found != nil {
		return found, true
	}

	return nil, false
}

// Decode parses the island's serialized payload. The result is an arbitrary
// object graph; JSON-LD blocks may decode to an array.
func (i *Island) Decode() (interface{}, error) {
	var v interface{}
	if err := sonic.Unmarshal([]byte(i.Raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
