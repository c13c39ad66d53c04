package model

import (
	"github.com/go-playground/validator/v10"
)

// Priority is a single user preference signal used downstream to weight ranking
type Priority string

const (
	PriorityShortCommute Priority = "short_commute"
	PrioritySafeArea     Priority = "safe_area"
	PriorityWalkable     Priority = "walkable"
	PriorityQuiet        Priority = "quiet"
	PriorityNightlife    Priority = "nightlife"
	PriorityLowPrice     Priority = "low_price"
)

// TransportMode is how the user commutes to the anchor location
type TransportMode string

const (
	TransportTransit TransportMode = "transit"
	TransportDriving TransportMode = "driving"
	TransportBiking  TransportMode = "biking"
	TransportWalking TransportMode = "walking"
)

// CatalogEntry pairs a machine tag with its display label
type CatalogEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Priorities lists every priority tag the extractor may emit, in match order
var Priorities = []CatalogEntry{
	{ID: string(PriorityShortCommute), Label: "Short Commute"},
	{ID: string(PrioritySafeArea), Label: "Safe Area"},
	{ID: string(PriorityWalkable), Label: "Walkable"},
	{ID: string(PriorityQuiet), Label: "Quiet Area"},
	{ID: string(PriorityNightlife), Label: "Nightlife"},
	{ID: string(PriorityLowPrice), Label: "Low Price"},
}

// TransportModes lists every transport mode the extractor may emit
var TransportModes = []CatalogEntry{
	{ID: string(TransportTransit), Label: "Public Transit"},
	{ID: string(TransportDriving), Label: "Driving"},
	{ID: string(TransportBiking), Label: "Biking"},
	{ID: string(TransportWalking), Label: "Walking"},
}

// Valid reports whether p belongs to the closed priority enumeration
func (p Priority) Valid() bool {
	for _, e := range Priorities {
		if e.ID == string(p) {
			return true
		}
	}
	return false
}

// Valid reports whether m belongs to the closed transport enumeration
func (m TransportMode) Valid() bool {
	for _, e := range TransportModes {
		if e.ID == string(m) {
			return true
		}
	}
	return false
}

// SearchSpec is the structured search specification handed to the ranking service
type SearchSpec struct {
	BudgetMin         int           `json:"budget_min" validate:"gte=0"`
	BudgetMax         int           `json:"budget_max" validate:"gtefield=BudgetMin"`
	WorkAddress       string        `json:"work_address,omitempty"`
	Bedrooms          int           `json:"bedrooms" validate:"gte=1"`
	Priorities        []Priority    `json:"priorities" validate:"min=1,unique,dive,priority"`
	MaxCommuteMinutes int           `json:"max_commute_minutes" validate:"gte=1"`
	TransportMode     TransportMode `json:"transport_mode" validate:"transport_mode"`
}

// Clone returns a deep copy so callers never share the priorities slice
func (s *SearchSpec) Clone() *SearchSpec {
	if s == nil {
		return nil
	}
	c := *s
	c.Priorities = append([]Priority(nil), s.Priorities...)
	return &c
}

var specValidator = newSpecValidator()

func newSpecValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("transport_mode", func(fl validator.FieldLevel) bool {
		return TransportMode(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks every SearchSpec invariant
func (s *SearchSpec) Validate() error {
	return specValidator.Struct(s)
}
