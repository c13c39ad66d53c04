package model

// Intent values reported back to the chat layer
const (
	IntentSearch       = "search"
	IntentNeedLocation = "need_location"
)

// ExtractRequest represents a single user message to turn into a SearchSpec
type ExtractRequest struct {
	Message   string   `json:"message" binding:"required"`
	PinnedLat *float64 `json:"pinned_lat,omitempty" binding:"omitempty,latitude"`
	PinnedLng *float64 `json:"pinned_lng,omitempty" binding:"omitempty,longitude"`
}

// HasPinnedLocation reports whether the caller already supplied a coordinate anchor
func (r *ExtractRequest) HasPinnedLocation() bool {
	return r.PinnedLat != nil && r.PinnedLng != nil
}

// ExtractResponse represents the result of parsing one message
type ExtractResponse struct {
	ExtractionID string      `json:"extraction_id"`
	Intent       string      `json:"intent"`
	SearchParams *SearchSpec `json:"search_params,omitempty"`
	PinnedLat    *float64    `json:"pinned_lat,omitempty"`
	PinnedLng    *float64    `json:"pinned_lng,omitempty"`
	Prompt       string      `json:"prompt,omitempty"` // Shown to the user when no anchor was found
	Cached       bool        `json:"cached"`
	Took         int64       `json:"took_us"` // Extraction time in microseconds
}
