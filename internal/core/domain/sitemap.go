package domain

import "time"

// ChangeFrequency hints how often a sitemap URL changes.
type ChangeFrequency string

// Change frequencies used by the storefront.
const (
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
)

// SitemapEntry is one URL of the storefront sitemap.
type SitemapEntry struct {
	URL          string          `json:"url"`
	LastModified time.Time       `json:"lastModified"`
	ChangeFreq   ChangeFrequency `json:"changeFrequency"`
	Priority     float64         `json:"priority"`
}
