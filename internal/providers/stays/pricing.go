package stays

import (
	"context"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/scrape"
	"github.com/stayscout/stayscout/internal/types"
)

// costBreakdown fetches the listing page for a specific stay and extracts the
// display price with its itemized lines.
func (p *Provider) costBreakdown(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	id, ok := GetString(params, "id")
	if !ok || id == "" {
		return failure(types.ErrInput, "id parameter required", ""), nil
	}
	checkin, _ := GetString(params, "checkin")
	checkout, _ := GetString(params, "checkout")
	if !validDate(checkin) || !validDate(checkout) {
		return failure(types.ErrInput, "checkin and checkout are required as YYYY-MM-DD", ""), nil
	}

	listingURL := p.listingURL(id, checkin, checkout, guestsFrom(params))
	override := GetBool(params, "ignoreRobotsText", false)

	doc, fail := p.fetchAllowed(ctx, listingURL, override, log)
	if fail != nil {
		return fail, nil
	}

	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Warn("listing page yielded no usable data island", zap.String("url", listingURL), zap.Error(err))
		return parseFailure("could not locate pricing data in page", listingURL), nil
	}

	pricing, ok := page.Pricing()
	if !ok {
		return parseFailure("no pricing found in page data", listingURL), nil
	}

	data := map[string]interface{}{
		"listingId":  id,
		"listingUrl": listingURL,
		"checkin":    checkin,
		"checkout":   checkout,
	}
	for k, v := range pricing {
		data[k] = v
	}
	return success(data)
}

// comparePrices fetches one price per date range, sequentially and in input
// order. A failed range contributes an error record instead of aborting the
// remaining ranges.
func (p *Provider) comparePrices(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	id, ok := GetString(params, "id")
	if !ok || id == "" {
		return failure(types.ErrInput, "id parameter required", ""), nil
	}

	rawRanges, ok := params["dateRanges"].([]interface{})
	if !ok || len(rawRanges) == 0 {
		return failure(types.ErrInput, "dateRanges must be a non-empty array of {checkin, checkout}", ""), nil
	}

	g := guestsFrom(params)
	override := GetBool(params, "ignoreRobotsText", false)

	results := make([]map[string]interface{}, 0, len(rawRanges))
	for _, raw := range rawRanges {
		results = append(results, p.priceForRange(ctx, id, raw, g, override, log))
	}

	return success(map[string]interface{}{
		"listingId": id,
		"results":   results,
		"count":     len(results),
	})
}

// priceForRange resolves a single date range to a price record or an error
// record, never an outcome-level failure.
func (p *Provider) priceForRange(ctx context.Context, id string, raw interface{}, g guests, override bool, log *logging.Logger) map[string]interface{} {
	rangeMap, _ := raw.(map[string]interface{})
	checkin, _ := GetString(rangeMap, "checkin")
	checkout, _ := GetString(rangeMap, "checkout")

	entry := map[string]interface{}{
		"checkin":  checkin,
		"checkout": checkout,
	}
	if !validDate(checkin) || !validDate(checkout) {
		entry["error"] = "date range requires checkin and checkout as YYYY-MM-DD"
		entry["errorType"] = string(types.ErrInput)
		return entry
	}

	listingURL := p.listingURL(id, checkin, checkout, g)
	entry["url"] = listingURL

	doc, fail := p.fetchAllowed(ctx, listingURL, override, log)
	if fail != nil {
		entry["error"] = *fail.Error
		entry["errorType"] = fail.Data["errorType"]
		return entry
	}

	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Warn("listing page yielded no usable data island", zap.String("url", listingURL), zap.Error(err))
		entry["error"] = "could not locate pricing data in page; " + structureHint
		entry["errorType"] = string(types.ErrParse)
		return entry
	}

	pricing, ok := page.Pricing()
	if !ok {
		entry["error"] = "no pricing found in page data; " + structureHint
		entry["errorType"] = string(types.ErrParse)
		return entry
	}

	for k, v := range pricing {
		entry[k] = v
	}
	return entry
}
