package service

import (
	"errors"
	"strings"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/config"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
)

// ErrMissingAnchor is returned when a message names no location and the
// caller supplied no pinned coordinate
var ErrMissingAnchor = errors.New("no anchor location in message")

// Rule names, also used as metric labels
const (
	RuleBudget        = "budget"
	RuleBedrooms      = "bedrooms"
	RuleAnchor        = "anchor"
	RulePriorities    = "priorities"
	RuleTransportMode = "transport_mode"
	RuleMaxCommute    = "max_commute"
)

// RuleResult records what a single rule did for one message
type RuleResult struct {
	Rule    string
	Matched bool // false means the configured default was kept
	Skipped bool
}

// message is the input seen by every rule
type message struct {
	original string
	lower    string
	pinned   bool
}

// extractionRule writes one field of spec and reports whether the text matched
type extractionRule struct {
	name    string
	extract func(x *Extractor, m *message, spec *model.SearchSpec) RuleResult
}

// rules run in this order; order only settles ties inside a single field
var rules = []extractionRule{
	{name: RuleBudget, extract: (*Extractor).extractBudget},
	{name: RuleBedrooms, extract: (*Extractor).extractBedrooms},
	{name: RuleAnchor, extract: (*Extractor).extractAnchor},
	{name: RulePriorities, extract: (*Extractor).extractPriorities},
	{name: RuleTransportMode, extract: (*Extractor).extractTransportMode},
	{name: RuleMaxCommute, extract: (*Extractor).extractMaxCommute},
}

// Extractor turns a free-form message into a SearchSpec.
// It holds only immutable configuration and is safe for concurrent use.
type Extractor struct {
	cfg               config.ExtractionConfig
	defaultPriorities []model.Priority
	defaultTransport  model.TransportMode
}

// NewExtractor creates an extractor using cfg for every fallback value
func NewExtractor(cfg config.ExtractionConfig) *Extractor {
	x := &Extractor{cfg: cfg}

	for _, p := range cfg.DefaultPriorities {
		x.defaultPriorities = appendPriority(x.defaultPriorities, model.Priority(p))
	}
	if len(x.defaultPriorities) == 0 {
		x.defaultPriorities = []model.Priority{model.PriorityShortCommute, model.PriorityLowPrice}
	}

	x.defaultTransport = model.TransportMode(cfg.DefaultTransportMode)
	if !x.defaultTransport.Valid() {
		x.defaultTransport = model.TransportTransit
	}

	return x
}

// Extract parses message into a SearchSpec. When hasPinnedLocation is true
// the address rule is skipped and the returned SearchSpec carries no work_address.
// The only error is ErrMissingAnchor.
func (x *Extractor) Extract(msg string, hasPinnedLocation bool) (*model.SearchSpec, error) {
	spec, _, err := x.extract(msg, hasPinnedLocation)
	return spec, err
}

// extract runs the rule table and the validation pass, returning per-rule results
func (x *Extractor) extract(msg string, hasPinnedLocation bool) (*model.SearchSpec, []RuleResult, error) {
	m := &message{
		original: msg,
		lower:    strings.ToLower(msg),
		pinned:   hasPinnedLocation,
	}

	spec := x.defaults()
	results := make([]RuleResult, 0, len(rules))
	for _, r := range rules {
		res := r.extract(x, m, spec)
		res.Rule = r.name
		results = append(results, res)
	}

	if !m.pinned && spec.WorkAddress == "" {
		return nil, results, ErrMissingAnchor
	}

	x.validate(spec)
	return spec, results, nil
}

// defaults returns a spec populated entirely from configuration
func (x *Extractor) defaults() *model.SearchSpec {
	return &model.SearchSpec{
		BudgetMin:         x.cfg.DefaultBudgetMin,
		BudgetMax:         x.cfg.DefaultBudgetMax,
		Bedrooms:          x.cfg.DefaultBedrooms,
		MaxCommuteMinutes: x.cfg.DefaultCommuteMinutes,
		TransportMode:     x.defaultTransport,
	}
}

// validate re-asserts every SearchSpec invariant after the rules ran
func (x *Extractor) validate(spec *model.SearchSpec) {
	if spec.BudgetMin < 0 {
		spec.BudgetMin = 0
	}
	if spec.BudgetMax < spec.BudgetMin {
		spec.BudgetMax = spec.BudgetMin
	}
	if spec.Bedrooms < 1 {
		spec.Bedrooms = 1
	}
	if spec.MaxCommuteMinutes < 1 {
		spec.MaxCommuteMinutes = 1
	}

	var priorities []model.Priority
	for _, p := range spec.Priorities {
		priorities = appendPriority(priorities, p)
	}
	if len(priorities) == 0 {
		priorities = append(priorities, x.defaultPriorities...)
	}
	spec.Priorities = priorities

	if !spec.TransportMode.Valid() {
		spec.TransportMode = x.defaultTransport
	}
}

// appendPriority appends p when it is a known tag not already present
func appendPriority(list []model.Priority, p model.Priority) []model.Priority {
	if !p.Valid() {
		return list
	}
	for _, existing := range list {
		if existing == p {
			return list
		}
	}
	return append(list, p)
}
