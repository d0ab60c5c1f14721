package domain

import "time"

// RawCatalog is an undecoded-to-domain catalog document as read from a source.
// Data holds the generic decoding of the document (arrays as []any,
// objects as map[string]any).
type RawCatalog struct {
	Data     any
	Origin   string
	Checksum string
}

// ValidationWarning is a non-fatal problem found while validating a record.
type ValidationWarning struct {
	Index     int    `json:"index"`
	ProductID string `json:"productId,omitempty"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// LoadReport summarises one catalog load.
type LoadReport struct {
	LoadID       string              `json:"loadId"`
	Origin       string              `json:"origin"`
	Checksum     string              `json:"checksum"`
	LoadedAt     time.Time           `json:"loadedAt"`
	ProductCount int                 `json:"productCount"`
	Warnings     []ValidationWarning `json:"warnings"`
	Err          error               `json:"-"`
}

// Loaded reports whether a load has been attempted.
func (r LoadReport) Loaded() bool {
	return !r.LoadedAt.IsZero()
}

// OK reports whether the last load succeeded.
func (r LoadReport) OK() bool {
	return r.Loaded() && r.Err == nil
}

// ErrorText returns the load error message, or the empty string.
func (r LoadReport) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
