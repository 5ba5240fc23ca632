// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/banners").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to preserve in
	// the fallback URL, e.g. "status" for a filtered list.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// Example usage:
//
//	url := navigation.SafeBackURL(r, navigation.BannersBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	// Build fallback URL, optionally preserving a query parameter.
	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param != "" && param != "all" {
			if strings.Contains(fallback, "?") {
				fallback += "&" + opts.PreserveQueryParam + "=" + param
			} else {
				fallback += "?" + opts.PreserveQueryParam + "=" + param
			}
		}
	}

	return fallback
}

// Common back URL configurations for reuse across packages.
var (
	// BannersBackURL returns options for banner pages.
	BannersBackURL = BackURLOptions{
		AllowedPrefix:      "/banners",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new"},
		Fallback:           "/banners",
		PreserveQueryParam: "status",
	}

	// RolesBackURL returns options for role pages.
	RolesBackURL = BackURLOptions{
		AllowedPrefix:    "/roles",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/roles",
	}

	// PayoutsBackURL returns options for payout pages.
	PayoutsBackURL = BackURLOptions{
		AllowedPrefix:      "/payouts",
		ExcludedSubpaths:   []string{"/mark-paid"},
		Fallback:           "/payouts",
		PreserveQueryParam: "status",
	}

	// ServicesBackURL returns options for service pages.
	ServicesBackURL = BackURLOptions{
		AllowedPrefix:      "/services",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new"},
		Fallback:           "/services",
		PreserveQueryParam: "status",
	}

	// PoliciesBackURL returns options for policy pages.
	PoliciesBackURL = BackURLOptions{
		AllowedPrefix:    "/policies",
		ExcludedSubpaths: []string{"/edit"},
		Fallback:         "/policies",
	}

	// AdminUsersBackURL returns options for admin account pages.
	AdminUsersBackURL = BackURLOptions{
		AllowedPrefix:    "/admin-users",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/admin-users",
	}

	// SettingsBackURL returns options for the settings page.
	SettingsBackURL = BackURLOptions{
		AllowedPrefix: "/settings",
		Fallback:      "/settings",
	}

	// AuditLogBackURL returns options for the audit log pages.
	AuditLogBackURL = BackURLOptions{
		AllowedPrefix: "/audit-log",
		Fallback:      "/audit-log",
	}
)
