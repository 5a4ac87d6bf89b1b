// Package endpoint picks the base URL every API call is sent to.
//
// Resolution runs once per process. The chain, first match wins:
//
//  1. a user-saved override, used verbatim
//  2. localhost origins get <scheme>://<host>:8000/api
//  3. cloud-IDE forwarded hostnames get their -<port> suffix rewritten to -8000
//  4. a configured API URL (ALEXIS_API_URL), with /api appended if missing
//  5. <scheme>://<host>:8000/api
//
// The resolver itself never fails; a bad override is accepted as-is and only
// surfaces when a request to it fails.
package endpoint

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// OverrideStore persists the user-saved API URL override.
type OverrideStore interface {
	APIURL() string
	SetAPIURL(url string) error
}

// Forwarded-host suffixes we recognize for the port rewrite heuristic.
var forwardingSuffixes = []string{"github.dev", "app.github.dev", "gitpod.io"}

// Matches the trailing -<port> of the first hostname segment, e.g.
// "myapp-3000.preview.app.github.dev".
var portSuffix = regexp.MustCompile(`^(.*?)-[0-9]+(\..+)$`)

// Resolver produces the single base URL for the process lifetime.
type Resolver struct {
	scheme    string
	hostname  string
	configURL string
	overrides OverrideStore

	resolved string
}

// New builds a resolver for the given origin ("<scheme>://<hostname>", port
// ignored). An empty origin falls back to ALEXIS_ORIGIN, then to
// http://localhost.
func New(origin string, overrides OverrideStore) *Resolver {
	if origin == "" {
		origin = os.Getenv("ALEXIS_ORIGIN")
	}
	if origin == "" {
		origin = "http://localhost"
	}
	scheme, host := splitOrigin(origin)
	return &Resolver{
		scheme:    scheme,
		hostname:  host,
		configURL: os.Getenv("ALEXIS_API_URL"),
		overrides: overrides,
	}
}

func splitOrigin(origin string) (scheme, host string) {
	scheme = "http"
	host = origin
	if i := strings.Index(origin, "://"); i >= 0 {
		scheme = origin[:i]
		host = origin[i+3:]
	}
	// Drop any path or port; only the hostname feeds the heuristics.
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	return scheme, host
}

// BaseURL resolves once and returns the same value for the rest of the
// process. Call Reset to force re-resolution (tests only; a real override
// change requires a restart).
func (r *Resolver) BaseURL() string {
	if r.resolved == "" {
		r.resolved = r.resolve()
	}
	return r.resolved
}

func (r *Resolver) resolve() string {
	if r.overrides != nil {
		if saved := r.overrides.APIURL(); saved != "" {
			return saved
		}
	}

	if r.hostname == "localhost" || r.hostname == "127.0.0.1" {
		return fmt.Sprintf("%s://%s:8000/api", r.scheme, r.hostname)
	}

	if isForwardedHost(r.hostname) {
		if rewritten := portSuffix.ReplaceAllString(r.hostname, "${1}-8000${2}"); rewritten != r.hostname {
			return fmt.Sprintf("https://%s/api", rewritten)
		}
	}

	if r.configURL != "" {
		if strings.HasSuffix(r.configURL, "/api") {
			return r.configURL
		}
		return r.configURL + "/api"
	}

	return fmt.Sprintf("%s://%s:8000/api", r.scheme, r.hostname)
}

func isForwardedHost(hostname string) bool {
	for _, suffix := range forwardingSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return true
		}
	}
	return false
}

// SaveOverride persists url as the permanent override, minus any trailing
// slash. The value takes effect on the next process start; callers should
// tell the user to restart. Returns true when a restart is needed.
func (r *Resolver) SaveOverride(url string) (restartRequired bool, err error) {
	clean := strings.TrimSuffix(url, "/")
	if err := r.overrides.SetAPIURL(clean); err != nil {
		return false, fmt.Errorf("saving API URL override: %w", err)
	}
	return true, nil
}

// ResetOverride removes the saved override so the next start resolves fresh.
func (r *Resolver) ResetOverride() (restartRequired bool, err error) {
	if err := r.overrides.SetAPIURL(""); err != nil {
		return false, fmt.Errorf("clearing API URL override: %w", err)
	}
	return true, nil
}

// Reset discards the cached resolution. Used by tests to simulate the reload
// that follows an override change.
func (r *Resolver) Reset() {
	r.resolved = ""
}
