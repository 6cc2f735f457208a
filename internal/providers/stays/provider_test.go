package stays

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscout/stayscout/internal/fetch"
	"github.com/stayscout/stayscout/internal/robots"
	"github.com/stayscout/stayscout/internal/types"
)

const testBase = "https://stays.example"

// fakeFetcher records requested URLs and serves canned responses.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	respond func(url string) (string, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetch.Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	body, err := f.respond(url)
	if err != nil {
		return nil, err
	}
	return &fetch.Document{URL: url, Body: body}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) call(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func staticFetcher(body string) *fakeFetcher {
	return &fakeFetcher{respond: func(string) (string, error) { return body, nil }}
}

func openGate() *robots.Gate {
	return robots.New(robots.Options{Agent: "StayScoutBot", Ignore: true})
}

// denyingGate serves a policy that disallows listing pages for every agent.
func denyingGate(t *testing.T) *robots.Gate {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /rooms/\nDisallow: /s/\n")
	}))
	t.Cleanup(srv.Close)
	return robots.New(robots.Options{Agent: "StayScoutBot", RobotsURL: srv.URL + "/robots.txt"})
}

func islandDoc(payload string) string {
	return `<html><body><script id="data-deferred-state-0" type="application/json">` + payload + `</script></body></html>`
}

func presentationDoc(presentation string) string {
	return islandDoc(`{"niobeMinimalClientData":[["ClientData",{"data":{"presentation":` + presentation + `}}]]}`)
}

func searchDoc() string {
	id := base64.StdEncoding.EncodeToString([]byte("StayListing:12345"))
	return presentationDoc(fmt.Sprintf(`{
		"staysSearch": {
			"results": {
				"searchResults": [
					{"demandStayListing": {"id": %q, "description": "Loft in Lisbon"}, "avgRatingA11yLabel": "4.9 out of 5"}
				],
				"paginationInfo": {"nextPageCursor": "cursor-2"}
			}
		}
	}`, id))
}

func pricingDoc() string {
	return presentationDoc(`{
		"stayProductDetailPage": {
			"sections": {
				"sections": [
					{"sectionId": "BOOK_IT_SIDEBAR", "section": {
						"structuredDisplayPrice": {
							"primaryLine": {"accessibilityLabel": "$450 for 5 nights"},
							"explanationData": {"priceDetails": [{"items": [{"description": "Cleaning fee", "priceString": "$40"}]}]}
						}
					}}
				]
			}
		}
	}`)
}

func reviewsDoc() string {
	return presentationDoc(`{
		"stayProductDetailPage": {
			"sections": {
				"sections": [
					{"sectionId": "REVIEWS_DEFAULT", "section": {
						"overallRating": 4.8,
						"reviews": [{"comments": "Great stay", "reviewer": {"firstName": "Ana"}}]
					}}
				]
			}
		}
	}`)
}

func photosDoc() string {
	return presentationDoc(`{
		"stayProductDetailPage": {
			"sections": {
				"sections": [
					{"sectionId": "HERO_DEFAULT", "section": {
						"previewImages": [{"picture": {"pictureUrls": ["https://a.example/img1.jpg", "https://a.example/img2.jpg"]}}]
					}}
				]
			}
		}
	}`)
}

func errorType(t *testing.T, res *types.Result) string {
	t.Helper()
	kind, _ := res.Data["errorType"].(string)
	return kind
}

func TestExecuteUnknownTool(t *testing.T) {
	p := New(openGate(), staticFetcher(""), testBase, nil)

	res, err := p.Execute(context.Background(), "teleport", nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "unknown tool")
	assert.Equal(t, string(types.ErrInput), errorType(t, res))
}

func TestSearchRequiresLocation(t *testing.T) {
	fetcher := staticFetcher(searchDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "search", map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, string(types.ErrInput), errorType(t, res))
	assert.Zero(t, fetcher.callCount())
}

func TestSearch(t *testing.T) {
	fetcher := staticFetcher(searchDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "search", map[string]interface{}{
		"location": "Lisbon",
		"checkin":  "2026-07-01",
		"checkout": "2026-07-06",
		"minPrice": float64(50),
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	results := res.Data["results"].([]map[string]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "12345", results[0]["id"])
	assert.Equal(t, testBase+"/rooms/12345", results[0]["url"])
	assert.Equal(t, 1, res.Data["count"])
	assert.Equal(t, "cursor-2", res.Data["nextCursor"])

	requested := fetcher.call(0)
	assert.Contains(t, requested, "/s/Lisbon/homes")
	assert.Contains(t, requested, "checkin=2026-07-01")
	assert.Contains(t, requested, "price_min=50")
	assert.Equal(t, requested, res.Data["searchUrl"])
}

func TestSearchGuestParamsOmittedWhenZero(t *testing.T) {
	fetcher := staticFetcher(searchDoc())
	p := New(openGate(), fetcher, testBase, nil)

	_, err := p.Execute(context.Background(), "search", map[string]interface{}{
		"location": "Lisbon",
		"adults":   float64(0),
		"children": float64(0),
		"infants":  float64(2),
	})
	require.NoError(t, err)
	assert.NotContains(t, fetcher.call(0), "adults=")
	assert.NotContains(t, fetcher.call(0), "infants=")

	_, err = p.Execute(context.Background(), "search", map[string]interface{}{
		"location": "Lisbon",
		"adults":   float64(2),
	})
	require.NoError(t, err)
	assert.Contains(t, fetcher.call(1), "adults=2")
	assert.Contains(t, fetcher.call(1), "children=0")
}

func TestPolicyDeniedPerformsNoFetch(t *testing.T) {
	fetcher := staticFetcher(reviewsDoc())
	p := New(denyingGate(t), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getReviews", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, string(types.ErrPolicyDenied), errorType(t, res))
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "robots.txt")
	assert.Contains(t, res.Data["url"], "/rooms/12345")
	assert.Zero(t, fetcher.callCount(), "denied paths must not be fetched")
}

func TestPerCallOverrideBypassesPolicy(t *testing.T) {
	fetcher := staticFetcher(reviewsDoc())
	p := New(denyingGate(t), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getReviews", map[string]interface{}{
		"id":               "12345",
		"ignoreRobotsText": true,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestMissingIslandIsParseFailure(t *testing.T) {
	fetcher := staticFetcher(`<html><body><p>nothing structured</p></body></html>`)
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "listingDetails", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, string(types.ErrParse), errorType(t, res))
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "page structure")
}

func TestListingDetails(t *testing.T) {
	fetcher := staticFetcher(presentationDoc(`{
		"stayProductDetailPage": {
			"sections": {
				"sections": [
					{"sectionId": "LOCATION_DEFAULT", "section": {"lat": 38.72, "lng": -9.14, "title": "Lisbon"}}
				]
			}
		}
	}`))
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "listingDetails", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "12345", res.Data["listingId"])

	details := res.Data["details"].(map[string]interface{})
	location := details["location"].(map[string]interface{})
	assert.Equal(t, 38.72, location["lat"])
}

func TestGetReviews(t *testing.T) {
	fetcher := staticFetcher(reviewsDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getReviews", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1, res.Data["count"])

	overall := res.Data["overallRating"].(map[string]interface{})
	assert.Equal(t, 4.8, overall["overallRating"])
}

func TestCostBreakdownValidatesDates(t *testing.T) {
	fetcher := staticFetcher(pricingDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "costBreakdown", map[string]interface{}{
		"id":       "12345",
		"checkin":  "2026-7-1",
		"checkout": "2026-07-06",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, string(types.ErrInput), errorType(t, res))
	assert.Zero(t, fetcher.callCount())
}

func TestCostBreakdown(t *testing.T) {
	fetcher := staticFetcher(pricingDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "costBreakdown", map[string]interface{}{
		"id":       "12345",
		"checkin":  "2026-07-01",
		"checkout": "2026-07-06",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "$450 for 5 nights", res.Data["displayPrice"])
	assert.Equal(t, "2026-07-01", res.Data["checkin"])
	assert.Contains(t, fetcher.call(0), "check_in=2026-07-01")
	assert.Contains(t, fetcher.call(0), "check_out=2026-07-06")
}

func TestComparePricesRequiresRanges(t *testing.T) {
	p := New(openGate(), staticFetcher(pricingDoc()), testBase, nil)

	res, err := p.Execute(context.Background(), "comparePrices", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, string(types.ErrInput), errorType(t, res))
}

func TestComparePricesIsolatesRangeFailures(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(url string) (string, error) {
		if strings.Contains(url, "check_in=2026-07-10") {
			return "", &fetch.TimeoutError{URL: url, Limit: 30 * time.Second}
		}
		return pricingDoc(), nil
	}}
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "comparePrices", map[string]interface{}{
		"id": "12345",
		"dateRanges": []interface{}{
			map[string]interface{}{"checkin": "2026-07-01", "checkout": "2026-07-06"},
			map[string]interface{}{"checkin": "2026-07-10", "checkout": "2026-07-15"},
			map[string]interface{}{"checkin": "2026-07-20", "checkout": "2026-07-25"},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success, "range failures must not fail the outcome")

	results := res.Data["results"].([]map[string]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, 3, res.Data["count"])

	assert.Equal(t, "$450 for 5 nights", results[0]["displayPrice"])
	assert.Equal(t, "2026-07-01", results[0]["checkin"])

	assert.Equal(t, string(types.ErrTimeout), results[1]["errorType"])
	assert.NotContains(t, results[1], "displayPrice")

	assert.Equal(t, "$450 for 5 nights", results[2]["displayPrice"])
}

func TestComparePricesRejectsMalformedRange(t *testing.T) {
	fetcher := staticFetcher(pricingDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "comparePrices", map[string]interface{}{
		"id": "12345",
		"dateRanges": []interface{}{
			map[string]interface{}{"checkin": "July 1st", "checkout": "2026-07-06"},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	results := res.Data["results"].([]map[string]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, string(types.ErrInput), results[0]["errorType"])
	assert.Zero(t, fetcher.callCount())
}

func TestGetListingPhotos(t *testing.T) {
	fetcher := staticFetcher(photosDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getListingPhotos", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Data["photoCount"])
	assert.Equal(t, true, res.Data["success"])
	assert.Equal(t, []string{"https://a.example/img1.jpg", "https://a.example/img2.jpg"}, res.Data["photoUrls"])
}

func TestGetListingPhotosMarkupFallback(t *testing.T) {
	body := `<html><body>
		<img src="https://a0.muscache.com/im/pictures/a.jpg?im_w=720">
		<img src="https://cdn.example.com/logo.png">
	</body></html>`
	fetcher := staticFetcher(body)
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getListingPhotos", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, []string{"https://a0.muscache.com/im/pictures/a.jpg"}, res.Data["photoUrls"])
}

func TestGetListingPhotosEmptyIsSuccess(t *testing.T) {
	fetcher := staticFetcher(`<html><body><p>no media at all</p></body></html>`)
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getListingPhotos", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 0, res.Data["photoCount"])
	assert.Equal(t, false, res.Data["success"])
	assert.Equal(t, []string{}, res.Data["photoUrls"])
}

func TestPhotoToolsUseTxtOverrideSpelling(t *testing.T) {
	fetcher := staticFetcher(photosDoc())
	p := New(denyingGate(t), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "getListingPhotos", map[string]interface{}{
		"id":              "12345",
		"ignoreRobotsTxt": true,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestAnalyzeListingPhotos(t *testing.T) {
	fetcher := staticFetcher(photosDoc())
	p := New(openGate(), fetcher, testBase, nil)

	res, err := p.Execute(context.Background(), "analyzeListingPhotos", map[string]interface{}{"id": "12345"})
	require.NoError(t, err)
	require.True(t, res.Success)

	prompt := res.Data["analysisPrompt"].(string)
	assert.Contains(t, prompt, "1. https://a.example/img1.jpg")
	assert.Contains(t, prompt, "2. https://a.example/img2.jpg")
	assert.Contains(t, prompt, "Cleanliness")
	assert.Contains(t, prompt, "Professionalism")
	assert.Contains(t, prompt, "overall score from 1 to 10")
}

func TestDefinitionListsAllTools(t *testing.T) {
	p := New(openGate(), staticFetcher(""), testBase, nil)

	def := p.Definition()
	assert.Equal(t, "stays", def.ID)

	ids := make([]string, 0, len(def.Tools))
	for _, tool := range def.Tools {
		ids = append(ids, tool.ID)
	}
	assert.ElementsMatch(t, []string{
		"search", "listingDetails", "comparePrices", "getReviews",
		"costBreakdown", "getListingPhotos", "analyzeListingPhotos",
	}, ids)
}
