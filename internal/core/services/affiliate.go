package services

import (
	"net/url"
	"strings"

	"github.com/mqmweb/catalog/internal/core/domain"
)

// Tracking parameter names added to outbound links.
const (
	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamCampaign = "utm_campaign"
	ParamContent  = "utm_content"
)

// BuildAffiliateURL adds tracking parameters to the product's affiliate link.
// The stored query is kept verbatim, including pairs url.ParseQuery would
// reject; only earlier tracking pairs are replaced, so applying it twice
// yields the same URL. A link that is not an absolute URL is returned unchanged.
func BuildAffiliateURL(p domain.Product, source, medium string) string {
	if source == "" {
		source = domain.DefaultAffiliateSource
	}
	if medium == "" {
		medium = domain.DefaultAffiliateMedium
	}

	u, err := url.Parse(p.AffiliateURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return p.AffiliateURL
	}

	tracking := url.Values{}
	tracking.Set(ParamSource, source)
	tracking.Set(ParamMedium, medium)
	tracking.Set(ParamCampaign, p.Slug)
	tracking.Set(ParamContent, p.ID)

	pairs := make([]string, 0, 8)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" || isTrackingPair(pair) {
			continue
		}
		pairs = append(pairs, pair)
	}
	pairs = append(pairs, tracking.Encode())

	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	return u.String()
}

// isTrackingPair reports whether a raw key=value pair carries one of the
// tracking keys. Keys that fail to unescape are compared as written.
func isTrackingPair(pair string) bool {
	key, _, _ := strings.Cut(pair, "=")
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	switch key {
	case ParamSource, ParamMedium, ParamCampaign, ParamContent:
		return true
	}
	return false
}
