package pix

import (
	"net/url"
	"strings"
)

// Default gateway paths. The gateway has renamed its resources across API
// revisions, so status resolution always yields the versioned path followed by
// the legacy one, and creation keeps the legacy path as a guarded fallback.
const (
	DefaultAPIBase = "https://app.venuzpay.com/api/v1"

	defaultCreatePath = "/gateway/pix/receive"
	legacyCreatePath  = "/pix/create"

	statusPathPrefix = "/gateway/pix/status/"
	legacyStatusPath = "/cob/"
)

// Endpoints resolves which upstream URLs to attempt for each operation. It is
// built once from configuration and never mutated.
type Endpoints struct {
	// Base is the gateway API base URL.
	Base string
	// CreateOverride optionally replaces the creation endpoint. An absolute
	// URL is used verbatim; anything else is joined to Base as a path suffix.
	CreateOverride string
}

// CreateURLs returns the creation candidates in attempt order: the resolved
// primary endpoint, then the legacy path. The gateway client only advances to
// the second entry when the primary rejects the endpoint shape itself.
func (e Endpoints) CreateURLs() []string {
	return []string{e.createURL(), joinURL(e.base(), legacyCreatePath)}
}

// StatusURLs returns the ordered status-query candidates for a transaction id.
// The list is always non-empty: the versioned path first, the legacy path second.
func (e Endpoints) StatusURLs(transactionID string) []string {
	id := url.PathEscape(transactionID)
	return []string{
		joinURL(e.base(), statusPathPrefix+id),
		joinURL(e.base(), legacyStatusPath+id),
	}
}

func (e Endpoints) createURL() string {
	switch {
	case absoluteURLPattern.MatchString(e.CreateOverride):
		return e.CreateOverride
	case e.CreateOverride != "":
		return joinURL(e.base(), e.CreateOverride)
	default:
		return joinURL(e.base(), defaultCreatePath)
	}
}

func (e Endpoints) base() string {
	if e.Base == "" {
		return DefaultAPIBase
	}
	return e.Base
}

// joinURL concatenates a base URL and a path with exactly one slash at the seam.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
