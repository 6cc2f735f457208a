// Package robots decides whether a path may be crawled under the configured
// agent identity. The permission document is fetched at most once per process
// and any failure to obtain or parse it fails open.
package robots

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
)

// DefaultTimeout bounds the single permission-document fetch.
const DefaultTimeout = 10 * time.Second

// Options configures a Gate.
type Options struct {
	// Agent is the identity evaluated against the permission rules.
	Agent string
	// RobotsURL is the absolute URL of the permission document.
	RobotsURL string
	// Ignore disables the gate entirely: Allow always returns true.
	Ignore  bool
	Timeout time.Duration
	Log     *logging.Logger
}

// Gate holds the process-scoped permission document.
type Gate struct {
	agent     string
	robotsURL string
	ignore    bool
	timeout   time.Duration
	client    *resty.Client
	log       *logging.Logger

	mu     sync.Mutex
	loaded bool
	data   *robotstxt.RobotsData
}

// New creates a gate. The permission document is fetched lazily on first use.
func New(opts Options) *Gate {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Log == nil {
		opts.Log = logging.NewNop()
	}

	return &Gate{
		agent:     opts.Agent,
		robotsURL: opts.RobotsURL,
		ignore:    opts.Ignore,
		timeout:   opts.Timeout,
		client:    resty.New().SetRetryCount(0),
		log:       opts.Log,
	}
}

// Ignored reports whether the gate is globally disabled.
func (g *Gate) Ignored() bool { return g.ignore }

// Allow reports whether the path (including query) may be fetched. Paths are
// allowed whenever the gate is disabled or no usable document was obtained.
func (g *Gate) Allow(ctx context.Context, pathWithQuery string) bool {
	if g.ignore {
		return true
	}

	data := g.load(ctx)
	if data == nil {
		return true
	}

	if !strings.HasPrefix(pathWithQuery, "/") {
		pathWithQuery = "/" + pathWithQuery
	}
	return data.FindGroup(g.agent).Test(pathWithQuery)
}

// load returns the permission document, fetching it on first call. The loaded
// flag is set before the outcome is known so a failed fetch is never repeated.
func (g *Gate) load(ctx context.Context) *robotstxt.RobotsData {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loaded {
		return g.data
	}
	g.loaded = true

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.R().SetContext(ctx).Get(g.robotsURL)
	if err != nil {
		g.log.Warn("robots.txt fetch failed, allowing all paths",
			zap.String("url", g.robotsURL), zap.Error(err))
		return nil
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		g.log.Warn("robots.txt fetch returned non-2xx, allowing all paths",
			zap.String("url", g.robotsURL), zap.Int("status", resp.StatusCode()))
		return nil
	}

	data, err := robotstxt.FromBytes(resp.Body())
	if err != nil {
		g.log.Warn("robots.txt parse failed, allowing all paths",
			zap.String("url", g.robotsURL), zap.Error(err))
		return nil
	}

	g.data = data
	return g.data
}
