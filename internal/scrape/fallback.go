package scrape

import (
	"strings"

	"github.com/antchfx/htmlquery"
)

// ScanMode controls how aggressively the markup fallback filters candidates.
type ScanMode int

const (
	// ScanLoose keeps any image whose source carries a site media marker.
	ScanLoose ScanMode = iota
	// ScanStrict additionally requires alt text naming a photo or image.
	ScanStrict
)

// mediaMarkers identify the site's listing media hosts and paths.
var mediaMarkers = []string{"muscache.com", "/im/pictures/"}

// ScanImages is the markup-only fallback used when structured extraction
// yields nothing for a photo kind. It never fails; zero matches is a valid
// outcome.
func ScanImages(body string, mode ScanMode) []string {
	root, err := LoadHTMLNode(body)
	if err != nil {
		return nil
	}

	nodes, err := htmlquery.QueryAll(root, "//img[@src]")
	if err != nil {
		return nil
	}

	urls := make([]string, 0, len(nodes))
	for _, node := range nodes {
		src := htmlquery.SelectAttr(node, "src")
		if !hasMediaMarker(src) {
			continue
		}
		if mode == ScanStrict && !altNamesPhoto(htmlquery.SelectAttr(node, "alt")) {
			continue
		}
		urls = append(urls, stripQuery(src))
	}

	return CapList(Deduplicate(urls), MaxPhotoURLs)
}

func hasMediaMarker(src string) bool {
	for _, marker := range mediaMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}

func altNamesPhoto(alt string) bool {
	alt = strings.ToLower(alt)
	return strings.Contains(alt, "photo") || strings.Contains(alt, "image")
}

// stripQuery normalizes a media URL to its canonical resource.
func stripQuery(u string) string {
	if idx := strings.IndexByte(u, '?'); idx >= 0 {
		return u[:idx]
	}
	return u
}
