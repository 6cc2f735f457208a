package stays

import (
	"context"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/scrape"
	"github.com/stayscout/stayscout/internal/types"
)

// listingDetails fetches a listing page and extracts its allow-listed
// sections.
func (p *Provider) listingDetails(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	id, ok := GetString(params, "id")
	if !ok || id == "" {
		return failure(types.ErrInput, "id parameter required", ""), nil
	}

	checkin, _ := GetString(params, "checkin")
	checkout, _ := GetString(params, "checkout")
	listingURL := p.listingURL(id, checkin, checkout, guestsFrom(params))
	override := GetBool(params, "ignoreRobotsText", false)

	doc, fail := p.fetchAllowed(ctx, listingURL, override, log)
	if fail != nil {
		return fail, nil
	}

	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Warn("listing page yielded no usable data island", zap.String("url", listingURL), zap.Error(err))
		return parseFailure("could not locate listing data in page", listingURL), nil
	}

	sections, ok := page.Sections()
	if !ok {
		return parseFailure("no listing sections found in page data", listingURL), nil
	}

	return success(map[string]interface{}{
		"listingId":  id,
		"listingUrl": listingURL,
		"details":    sections,
	})
}
