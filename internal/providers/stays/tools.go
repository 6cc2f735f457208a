package stays

import "github.com/stayscout/stayscout/internal/types"

// tools enumerates the tool surface. Parameter names and shapes are the
// caller-facing contract and must stay stable.
func (p *Provider) tools() []types.Tool {
	return []types.Tool{
		{
			ID:          "search",
			Name:        "Search Listings",
			Description: "Search stay listings for a location with optional dates, guests, and price bounds",
			Parameters: []types.Parameter{
				{Name: "location", Type: "string", Description: "Location to search, e.g. a city name", Required: true},
				{Name: "placeId", Type: "string", Description: "Optional place identifier refining the location", Required: false},
				{Name: "checkin", Type: "string", Description: "Check-in date (YYYY-MM-DD)", Required: false},
				{Name: "checkout", Type: "string", Description: "Check-out date (YYYY-MM-DD)", Required: false},
				{Name: "adults", Type: "integer", Description: "Number of adults", Required: false},
				{Name: "children", Type: "integer", Description: "Number of children", Required: false},
				{Name: "infants", Type: "integer", Description: "Number of infants", Required: false},
				{Name: "pets", Type: "integer", Description: "Number of pets", Required: false},
				{Name: "minPrice", Type: "integer", Description: "Minimum nightly price", Required: false},
				{Name: "maxPrice", Type: "integer", Description: "Maximum nightly price", Required: false},
				{Name: "cursor", Type: "string", Description: "Pagination cursor from a previous search", Required: false},
				{Name: "ignoreRobotsText", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "listingDetails",
			Name:        "Listing Details",
			Description: "Fetch a listing's detail sections: location, policies, highlights, description, amenities",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "checkin", Type: "string", Description: "Check-in date (YYYY-MM-DD)", Required: false},
				{Name: "checkout", Type: "string", Description: "Check-out date (YYYY-MM-DD)", Required: false},
				{Name: "adults", Type: "integer", Description: "Number of adults", Required: false},
				{Name: "children", Type: "integer", Description: "Number of children", Required: false},
				{Name: "infants", Type: "integer", Description: "Number of infants", Required: false},
				{Name: "pets", Type: "integer", Description: "Number of pets", Required: false},
				{Name: "ignoreRobotsText", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "comparePrices",
			Name:        "Compare Prices",
			Description: "Fetch the price of one listing across several date ranges; failures are per-range",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "dateRanges", Type: "array", Description: "Date ranges, each {checkin, checkout} in YYYY-MM-DD", Required: true},
				{Name: "adults", Type: "integer", Description: "Number of adults", Required: false},
				{Name: "children", Type: "integer", Description: "Number of children", Required: false},
				{Name: "infants", Type: "integer", Description: "Number of infants", Required: false},
				{Name: "pets", Type: "integer", Description: "Number of pets", Required: false},
				{Name: "ignoreRobotsText", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "getReviews",
			Name:        "Get Reviews",
			Description: "Fetch a listing's reviews and overall rating",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "ignoreRobotsText", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "costBreakdown",
			Name:        "Cost Breakdown",
			Description: "Fetch the itemized cost of a stay for given dates",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "checkin", Type: "string", Description: "Check-in date (YYYY-MM-DD)", Required: true},
				{Name: "checkout", Type: "string", Description: "Check-out date (YYYY-MM-DD)", Required: true},
				{Name: "adults", Type: "integer", Description: "Number of adults", Required: false},
				{Name: "children", Type: "integer", Description: "Number of children", Required: false},
				{Name: "infants", Type: "integer", Description: "Number of infants", Required: false},
				{Name: "pets", Type: "integer", Description: "Number of pets", Required: false},
				{Name: "ignoreRobotsText", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "getListingPhotos",
			Name:        "Get Listing Photos",
			Description: "Fetch a listing's photo URLs",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "ignoreRobotsTxt", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "analyzeListingPhotos",
			Name:        "Analyze Listing Photos",
			Description: "Fetch a listing's photo URLs and build an analysis prompt over them",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Listing id", Required: true},
				{Name: "ignoreRobotsTxt", Type: "boolean", Description: "Bypass the robots.txt gate for this call", Required: false},
			},
			Returns: "object",
		},
	}
}
