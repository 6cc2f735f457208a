package stays

import (
	"context"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/scrape"
	"github.com/stayscout/stayscout/internal/types"
)

// getReviews fetches a listing page and extracts its review records and
// overall rating block.
func (p *Provider) getReviews(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	id, ok := GetString(params, "id")
	if !ok || id == "" {
		return failure(types.ErrInput, "id parameter required", ""), nil
	}

	listingURL := p.listingURL(id, "", "", guests{})
	override := GetBool(params, "ignoreRobotsText", false)

	doc, fail := p.fetchAllowed(ctx, listingURL, override, log)
	if fail != nil {
		return fail, nil
	}

	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Warn("listing page yielded no usable data island", zap.String("url", listingURL), zap.Error(err))
		return parseFailure("could not locate review data in page", listingURL), nil
	}

	reviews, overall, ok := page.Reviews()
	if !ok {
		return parseFailure("no reviews found in page data", listingURL), nil
	}

	data := map[string]interface{}{
		"listingId":  id,
		"listingUrl": listingURL,
		"reviews":    reviews,
		"count":      len(reviews),
	}
	if overall != nil {
		data["overallRating"] = overall
	}
	return success(data)
}
