package scrape

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoIsland signals a document with no locatable data island. Callers treat
// it as empty extraction, not a hard failure.
var ErrNoIsland = errors.New("no embedded data island found")

// Page is a fetched document with its decoded data island.
type Page struct {
	Source IslandSource
	root   interface{}
}

// ParsePage locates and decodes the data island inside a page body.
func ParsePage(body string) (*Page, error) {
	doc, err := LoadHTML(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	island, ok := LocateIsland(doc)
	if !ok {
		return nil, ErrNoIsland
	}

	root, err := island.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode %s island: %w", island.Source, err)
	}

	return &Page{Source: island.Source, root: root}, nil
}

// presentation returns the render-state subtree all structured kinds hang off.
// The path is versioned upstream and change-prone, hence every step is fallible.
func (p *Page) presentation() (interface{}, bool) {
	return dig(p.root, "niobeMinimalClientData", 0, 1, "data", "presentation")
}

// SearchResults extracts allow-listed search records. Each record's opaque id
// is decoded to the canonical numeric listing id and a direct listing URL under
// baseURL; a corrupt id nulls only that record's derived fields.
func (p *Page) SearchResults(baseURL string) ([]map[string]interface{}, string, bool) {
	pres, ok := p.presentation()
	if !ok {
		return nil, "", false
	}

	raw, ok := digSlice(pres, "staysSearch", "results", "searchResults")
	if !ok {
		return nil, "", false
	}

	results := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		rec, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		out, _ := Refine(rec, searchResultSchema).(map[string]interface{})
		if out == nil {
			out = map[string]interface{}{}
		}

		if enc, ok := digString(rec, "demandStayListing", "id"); ok {
			if id, ok := decodeListingID(enc); ok {
				out["id"] = id
				out["url"] = baseURL + "/rooms/" + id
			}
		}

		results = append(results, out)
	}

	cursor, _ := digString(pres, "staysSearch", "results", "paginationInfo", "nextPageCursor")
	return results, cursor, true
}

// Sections extracts the allow-listed listing detail sections keyed by their
// caller-facing names.
func (p *Page) Sections() (map[string]interface{}, bool) {
	secs, ok := p.detailSections()
	if !ok {
		return nil, false
	}

	out := make(map[string]interface{})
	for _, s := range secs {
		sid, ok := digString(s, "sectionId")
		if !ok {
			continue
		}
		name, ok := sectionNames[sid]
		if !ok {
			continue
		}
		body, ok := dig(s, "section")
		if !ok {
			continue
		}

		refined := Refine(body, sectionSchemas[sid])
		if refined == nil {
			continue
		}

		if sid == "DESCRIPTION_DEFAULT" {
			stripDescription(refined)
		}
		out[name] = refined
	}

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// Reviews extracts the allow-listed review records and the overall rating
// block from the reviews section.
func (p *Page) Reviews() ([]interface{}, map[string]interface{}, bool) {
	secs, ok := p.detailSections()
	if !ok {
		return nil, nil, false
	}

	for _, s := range secs {
		if sid, _ := digString(s, "sectionId"); sid != "REVIEWS_DEFAULT" {
			continue
		}
		body, ok := dig(s, "section")
		if !ok {
			continue
		}

		reviews, _ := Refine(body, Schema{"reviews": reviewSchema}).(map[string]interface{})
		overall, _ := Clean(Pick(body, overallRatingSchema)).(map[string]interface{})

		list, _ := reviews["reviews"].([]interface{})
		if list == nil && overall == nil {
			return nil, nil, false
		}
		return list, overall, true
	}

	return nil, nil, false
}

// Pricing extracts the display price and itemized price lines from whichever
// detail section carries a structured display price.
func (p *Page) Pricing() (map[string]interface{}, bool) {
	secs, ok := p.detailSections()
	if !ok {
		return nil, false
	}

	for _, s := range secs {
		sdp, ok := digMap(s, "section", "structuredDisplayPrice")
		if !ok {
			continue
		}

		out := make(map[string]interface{})
		if label, ok := digString(sdp, "primaryLine", "accessibilityLabel"); ok {
			out["displayPrice"] = label
		} else if price, ok := digString(sdp, "primaryLine", "price"); ok {
			out["displayPrice"] = price
		}
		if qualifier, ok := digString(sdp, "secondaryLine", "accessibilityLabel"); ok {
			out["qualifier"] = qualifier
		}
		if title, ok := digString(sdp, "explanationData", "title"); ok {
			out["explanationTitle"] = title
		}
		if items := priceItems(sdp); len(items) > 0 {
			out["priceDetails"] = items
		}

		if len(out) == 0 {
			continue
		}
		return out, true
	}

	return nil, false
}

// PhotoURLs collects photo URLs anywhere in the decoded graph: pictureUrls
// arrays and media baseUrl leaves on render-state pages, image fields on
// JSON-LD blocks. Deduplicated and capped.
func (p *Page) PhotoURLs() []string {
	var urls []string
	collectPhotoURLs(p.root, &urls)
	return CapList(Deduplicate(urls), MaxPhotoURLs)
}

func (p *Page) detailSections() ([]interface{}, bool) {
	pres, ok := p.presentation()
	if !ok {
		return nil, false
	}
	return digSlice(pres, "stayProductDetailPage", "sections", "sections")
}

func priceItems(sdp map[string]interface{}) []interface{} {
	details, ok := digSlice(sdp, "explanationData", "priceDetails")
	if !ok {
		// Some page versions nest items directly under priceDetails.
		if items, ok := digSlice(sdp, "explanationData", "priceDetails", "items"); ok {
			details = []interface{}{map[string]interface{}{"items": items}}
		} else {
			return nil
		}
	}

	var out []interface{}
	for _, detail := range details {
		items, ok := digSlice(detail, "items")
		if !ok {
			continue
		}
		for _, item := range items {
			refined := Clean(Pick(item, priceItemSchema))
			if refined == nil {
				continue
			}
			out = append(out, refined)
		}
	}
	return out
}

func stripDescription(v interface{}) {
	desc, ok := digMap(v, "htmlDescription")
	if !ok {
		return
	}
	if txt, ok := desc["htmlText"].(string); ok {
		desc["htmlText"] = StripMarkup(txt)
	}
}

// collectPhotoURLs walks the graph in deterministic order: slices keep their
// order, sibling map keys are visited sorted.
func collectPhotoURLs(v interface{}, urls *[]string) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val := t[k]
			switch k {
			case "pictureUrls", "image", "images":
				appendURLValues(val, urls)
			case "baseUrl":
				if s, ok := val.(string); ok && s != "" {
					*urls = append(*urls, s)
				}
			default:
				collectPhotoURLs(val, urls)
			}
		}
	case []interface{}:
		for _, item := range t {
			collectPhotoURLs(item, urls)
		}
	}
}

// appendURLValues accepts a string, a list of strings, or an object carrying a
// url/contentUrl field, which covers the JSON-LD image shapes.
func appendURLValues(v interface{}, urls *[]string) {
	switch t := v.(type) {
	case string:
		if t != "" {
			*urls = append(*urls, t)
		}
	case []interface{}:
		for _, item := range t {
			appendURLValues(item, urls)
		}
	case map[string]interface{}:
		for _, key := range []string{"url", "contentUrl"} {
			if s, ok := t[key].(string); ok && s != "" {
				*urls = append(*urls, s)
			}
		}
	}
}

// decodeListingID recovers the canonical numeric listing id from an opaque
// base64 identifier of the form "<type>:<digits>".
func decodeListingID(encoded string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return "", false
		}
	}

	decoded := string(raw)
	idx := strings.LastIndexByte(decoded, ':')
	if idx < 0 || idx == len(decoded)-1 {
		return "", false
	}

	id := decoded[idx+1:]
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}
