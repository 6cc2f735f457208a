// Package stays implements the listing tool surface: robots-gated fetching of
// stay pages and best-effort structured extraction into fixed output shapes.
package stays

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/config"
	"github.com/stayscout/stayscout/internal/fetch"
	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/robots"
	"github.com/stayscout/stayscout/internal/types"
)

// Provider implements the stay listing tools
type Provider struct {
	gate    *robots.Gate
	fetcher fetch.Fetcher
	baseURL string
	log     *logging.Logger
}

// New creates a provider with explicit collaborators.
func New(gate *robots.Gate, fetcher fetch.Fetcher, baseURL string, log *logging.Logger) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	return &Provider{
		gate:    gate,
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// FromConfig wires the production gate and fetcher from configuration.
func FromConfig(cfg *config.Config, log *logging.Logger) *Provider {
	base := strings.TrimRight(cfg.Site.BaseURL, "/")

	gate := robots.New(robots.Options{
		Agent:     cfg.Robots.UserAgent,
		RobotsURL: base + "/robots.txt",
		Ignore:    cfg.Robots.Ignore,
		Timeout:   time.Duration(cfg.Robots.TimeoutSeconds) * time.Second,
		Log:       log,
	})

	client := fetch.NewClient(
		fetch.Identity(cfg.Fetch.Identity),
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
	)

	return New(gate, client, base, log)
}

// Definition returns service metadata with all tools
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "stays",
		Name:        "Stay Listings Service",
		Description: "Search and inspect vacation stay listings: details, pricing, reviews, and photos",
		Category:    types.CategoryListings,
		Capabilities: []string{
			"listing_search",
			"listing_details",
			"price_comparison",
			"cost_breakdown",
			"reviews",
			"photos",
			"photo_analysis",
			"robots_policy",
		},
		Tools: p.tools(),
	}
}

// Execute routes a tool invocation to its operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	log := p.log.WithRequest()
	log.Debug("executing tool", zap.String("tool", toolID))

	switch toolID {
	case "search":
		return p.search(ctx, params, log)
	case "listingDetails":
		return p.listingDetails(ctx, params, log)
	case "comparePrices":
		return p.comparePrices(ctx, params, log)
	case "getReviews":
		return p.getReviews(ctx, params, log)
	case "costBreakdown":
		return p.costBreakdown(ctx, params, log)
	case "getListingPhotos":
		return p.getListingPhotos(ctx, params, log)
	case "analyzeListingPhotos":
		return p.analyzeListingPhotos(ctx, params, log)
	default:
		return failure(types.ErrInput, "unknown tool: "+toolID, ""), nil
	}
}

// fetchAllowed consults the gate, then retrieves the page. A denied path or a
// failed fetch yields a ready failure outcome and performs no further work.
func (p *Provider) fetchAllowed(ctx context.Context, rawURL string, override bool, log *logging.Logger) (*fetch.Document, *types.Result) {
	if !override && !p.allowed(ctx, rawURL) {
		log.Warn("path disallowed by robots.txt", zap.String("url", rawURL))
		return nil, failure(types.ErrPolicyDenied,
			"fetching this path is disallowed by the site's robots.txt; set the ignore flag to override", rawURL)
	}

	doc, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		log.Error("page fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, failureFromFetch(err, rawURL)
	}
	return doc, nil
}

func (p *Provider) allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	pathWithQuery := u.Path
	if u.RawQuery != "" {
		pathWithQuery += "?" + u.RawQuery
	}
	return p.gate.Allow(ctx, pathWithQuery)
}

// listingURL derives the direct listing page URL, with optional dates and
// guest counts attached.
func (p *Provider) listingURL(id string, checkin, checkout string, g guests) string {
	u, err := url.Parse(p.baseURL + "/rooms/" + id)
	if err != nil {
		return p.baseURL + "/rooms/" + id
	}

	q := u.Query()
	if checkin != "" {
		q.Set("check_in", checkin)
	}
	if checkout != "" {
		q.Set("check_out", checkout)
	}
	g.apply(q)
	u.RawQuery = q.Encode()
	return u.String()
}
