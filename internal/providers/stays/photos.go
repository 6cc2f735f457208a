package stays

import (
	"context"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/scrape"
	"github.com/stayscout/stayscout/internal/types"
)

// getListingPhotos returns a listing's photo URL list. An empty list is a
// successful outcome: photos have a legitimate zero-result fallback path.
func (p *Provider) getListingPhotos(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	urls, listingURL, fail := p.collectPhotos(ctx, params, log)
	if fail != nil {
		return fail, nil
	}

	return success(map[string]interface{}{
		"listingUrl": listingURL,
		"photoCount": len(urls),
		"photoUrls":  urls,
		"success":    len(urls) > 0,
	})
}

// analyzeListingPhotos returns the photo URL list plus a generated analysis
// prompt over it.
func (p *Provider) analyzeListingPhotos(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	urls, listingURL, fail := p.collectPhotos(ctx, params, log)
	if fail != nil {
		return fail, nil
	}

	return success(map[string]interface{}{
		"listingUrl":     listingURL,
		"photoCount":     len(urls),
		"photoUrls":      urls,
		"analysisPrompt": analysisPrompt(urls),
		"success":        len(urls) > 0,
	})
}

// collectPhotos fetches the listing page and extracts photo URLs, degrading
// from the data island to a markup scan when the island is missing, broken,
// or photo-free.
func (p *Provider) collectPhotos(ctx context.Context, params map[string]interface{}, log *logging.Logger) ([]string, string, *types.Result) {
	id, ok := GetString(params, "id")
	if !ok || id == "" {
		return nil, "", failure(types.ErrInput, "id parameter required", "")
	}

	listingURL := p.listingURL(id, "", "", guests{})
	override := GetBool(params, "ignoreRobotsTxt", false)

	doc, fail := p.fetchAllowed(ctx, listingURL, override, log)
	if fail != nil {
		return nil, listingURL, fail
	}

	var urls []string
	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Debug("structured photo extraction unavailable, scanning markup",
			zap.String("url", listingURL), zap.Error(err))
	} else {
		urls = page.PhotoURLs()
	}

	if len(urls) == 0 {
		urls = scrape.ScanImages(doc.Body, scrape.ScanLoose)
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, listingURL, nil
}
