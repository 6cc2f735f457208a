package stays

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stayscout/stayscout/internal/fetch"
	"github.com/stayscout/stayscout/internal/types"
)

// structureHint is appended to extraction failures so callers know the page
// shape, not their input, is the likely culprit.
const structureHint = "the upstream page structure may have changed"

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// success builds a successful outcome, stamping normalization time.
func success(data map[string]interface{}) (*types.Result, error) {
	data["timestamp"] = timestamp()
	return &types.Result{Success: true, Data: data}, nil
}

// failure builds a failed outcome carrying the error kind, the consulted URL
// where one exists, and a timestamp.
func failure(kind types.ErrorKind, message, consultedURL string) *types.Result {
	msg := message
	data := map[string]interface{}{
		"errorType": string(kind),
		"timestamp": timestamp(),
	}
	if consultedURL != "" {
		data["url"] = consultedURL
	}
	return &types.Result{Success: false, Error: &msg, Data: data}
}

func parseFailure(what, consultedURL string) *types.Result {
	return failure(types.ErrParse, fmt.Sprintf("%s; %s", what, structureHint), consultedURL)
}

// failureFromFetch maps fetch errors to their outcome kinds.
func failureFromFetch(err error, consultedURL string) *types.Result {
	var timeoutErr *fetch.TimeoutError
	if errors.As(err, &timeoutErr) {
		return failure(types.ErrTimeout, err.Error(), consultedURL)
	}
	return failure(types.ErrNetwork, err.Error(), consultedURL)
}

// assessmentDimensions is the fixed rubric for photo analysis prompts.
var assessmentDimensions = []struct {
	name string
	hint string
}{
	{"Cleanliness", "visible dirt, clutter, or wear"},
	{"Design", "style coherence and appeal of the interior"},
	{"Lighting", "natural light and photo exposure quality"},
	{"Amenities", "visible amenities and their apparent quality"},
	{"Condition", "state of repair of furniture, walls, and fixtures"},
	{"Professionalism", "framing, staging, and photo composition"},
}

// analysisPrompt renders the numbered photo list plus the assessment rubric.
func analysisPrompt(urls []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following %d photos of this listing:\n\n", len(urls))
	for i, u := range urls {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	b.WriteString("\nAssess the photos on each dimension:\n")
	for _, dim := range assessmentDimensions {
		fmt.Fprintf(&b, "- %s: %s\n", dim.name, dim.hint)
	}
	b.WriteString("\nFinish with an overall score from 1 to 10 and a short justification.")
	return b.String()
}
