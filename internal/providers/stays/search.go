package stays

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/scrape"
	"github.com/stayscout/stayscout/internal/types"
)

// search runs a listing search and extracts allow-listed result records.
func (p *Provider) search(ctx context.Context, params map[string]interface{}, log *logging.Logger) (*types.Result, error) {
	location, ok := GetString(params, "location")
	if !ok || location == "" {
		return failure(types.ErrInput, "location parameter required", ""), nil
	}

	searchURL := p.searchURL(location, params)
	override := GetBool(params, "ignoreRobotsText", false)

	doc, fail := p.fetchAllowed(ctx, searchURL, override, log)
	if fail != nil {
		return fail, nil
	}

	page, err := scrape.ParsePage(doc.Body)
	if err != nil {
		log.Warn("search page yielded no usable data island", zap.String("url", searchURL), zap.Error(err))
		return parseFailure("could not locate search data in page", searchURL), nil
	}

	results, cursor, ok := page.SearchResults(p.baseURL)
	if !ok || len(results) == 0 {
		return parseFailure("no search results found in page data", searchURL), nil
	}

	data := map[string]interface{}{
		"searchUrl": searchURL,
		"results":   results,
		"count":     len(results),
	}
	if cursor != "" {
		data["nextCursor"] = cursor
	}
	return success(data)
}

// searchURL derives the search page URL from tool params.
func (p *Provider) searchURL(location string, params map[string]interface{}) string {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return p.baseURL
	}
	u.Path = "/s/" + location + "/homes"

	q := u.Query()
	if placeID, ok := GetString(params, "placeId"); ok && placeID != "" {
		q.Set("place_id", placeID)
	}
	if checkin, ok := GetString(params, "checkin"); ok && checkin != "" {
		q.Set("checkin", checkin)
	}
	if checkout, ok := GetString(params, "checkout"); ok && checkout != "" {
		q.Set("checkout", checkout)
	}
	guestsFrom(params).apply(q)
	if minPrice, ok := GetInt(params, "minPrice"); ok && minPrice > 0 {
		q.Set("price_min", strconv.Itoa(minPrice))
	}
	if maxPrice, ok := GetInt(params, "maxPrice"); ok && maxPrice > 0 {
		q.Set("price_max", strconv.Itoa(maxPrice))
	}
	if cursor, ok := GetString(params, "cursor"); ok && cursor != "" {
		q.Set("cursor", cursor)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
