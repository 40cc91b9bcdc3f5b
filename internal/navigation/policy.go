// Package navigation enforces the shell's navigation and new-window policy.
//
// The window may only navigate within the origin of the build URL it was
// created with. New windows are never created; URLs with a safe scheme
// are handed to the OS default handler instead, everything else is
// silently dropped.
package navigation

import (
	"net/url"
	"strings"
)

// PopupAction is the disposition of a new-window request.
type PopupAction int

const (
	// PopupDrop silently discards the request.
	PopupDrop PopupAction = iota
	// PopupOpenExternal hands the URL to the OS default handler.
	PopupOpenExternal
)

// Policy decides navigation requests against a fixed build-URL origin.
type Policy struct {
	buildOrigin string
}

// New creates a policy anchored to the given build URL. The URL must be
// absolute; its origin (scheme://host:port) is the only origin in-page
// navigation may target.
func New(buildURL string) (*Policy, error) {
	u, err := url.Parse(buildURL)
	if err != nil {
		return nil, err
	}
	return &Policy{buildOrigin: origin(u)}, nil
}

// AllowNavigation reports whether an in-page navigation to target is
// permitted. Any origin mismatch is a veto; malformed targets are vetoed
// as well.
func (p *Policy) AllowNavigation(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return origin(u) == p.buildOrigin
}

// RoutePopup decides what to do with a request to open a new window.
// The request is always denied as a window; http, https and mailto URLs
// are routed to the OS default handler, all other schemes are dropped.
func RoutePopup(rawURL string) PopupAction {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PopupDrop
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return PopupOpenExternal
	default:
		return PopupDrop
	}
}

// origin normalizes a URL to its scheme://host[:port] origin. Host
// comparison is case-insensitive per RFC 3986.
func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
