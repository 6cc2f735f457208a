package scrape

// Allow-list schemas per extraction kind. These mirror the fields the upstream
// page is known to carry; anything not enumerated here is dropped on output.

// searchResultSchema is the per-result allow-list for stay search pages.
var searchResultSchema = Schema{
	"demandStayListing": Schema{
		"id":          true,
		"description": true,
		"location":    true,
	},
	"badges": Schema{
		"text": true,
	},
	"structuredContent": Schema{
		"mapCategoryInfo":  true,
		"mapSecondaryLine": true,
		"primaryLine":      true,
		"secondaryLine":    true,
	},
	"avgRatingA11yLabel":    true,
	"listingParamOverrides": true,
	"structuredDisplayPrice": Schema{
		"primaryLine": Schema{
			"accessibilityLabel": true,
		},
		"secondaryLine": Schema{
			"accessibilityLabel": true,
		},
		"explanationData": Schema{
			"title": true,
			"priceDetails": Schema{
				"items": Schema{
					"description": true,
					"priceString": true,
				},
			},
		},
	},
}

// sectionNames maps upstream section ids to caller-facing keys.
var sectionNames = map[string]string{
	"LOCATION_DEFAULT":    "location",
	"POLICIES_DEFAULT":    "policies",
	"HIGHLIGHTS_DEFAULT":  "highlights",
	"DESCRIPTION_DEFAULT": "description",
	"AMENITIES_DEFAULT":   "amenities",
}

// sectionSchemas is the per-section allow-list for listing detail pages.
var sectionSchemas = map[string]Schema{
	"LOCATION_DEFAULT": {
		"lat":      true,
		"lng":      true,
		"subtitle": true,
		"title":    true,
	},
	"POLICIES_DEFAULT": {
		"title": true,
		"houseRulesSections": Schema{
			"title": true,
			"items": Schema{
				"title": true,
			},
		},
	},
	"HIGHLIGHTS_DEFAULT": {
		"highlights": Schema{
			"title":    true,
			"subtitle": true,
		},
	},
	"DESCRIPTION_DEFAULT": {
		"htmlDescription": Schema{
			"htmlText": true,
		},
	},
	"AMENITIES_DEFAULT": {
		"title": true,
		"seeAllAmenitiesGroups": Schema{
			"title": true,
			"amenities": Schema{
				"title": true,
			},
		},
	},
}

// reviewSchema is the per-review allow-list.
var reviewSchema = Schema{
	"comments":                  true,
	"localizedDate":             true,
	"rating":                    true,
	"localizedReviewerLocation": true,
	"reviewer": Schema{
		"firstName": true,
	},
}

// overallRatingSchema is the allow-list for the reviews section's rating block.
var overallRatingSchema = Schema{
	"overallRating": true,
	"overallCount":  true,
	"reviewsCount":  true,
	"heading":       true,
}

// priceItemSchema is the allow-list for itemized price lines.
var priceItemSchema = Schema{
	"description": true,
	"priceString": true,
}
