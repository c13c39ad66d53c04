package service

import (
	"regexp"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/utils"
)

// amountPattern is a figure such as 1500, 1,500, 2k or 2.5k
const amountPattern = `(\d[\d,]*(?:\.\d+)?k\b|\d[\d,]*)`

var (
	// $1500, $1,500-$1,800, $1500 to 1800, $2k-$2.5k
	budgetAmountRe = regexp.MustCompile(`\$\s?` + amountPattern + `(?:\s*(?:-|–|\bto\b)\s*\$?\s?` + amountPattern + `)?`)
	// under $2100, below 1800, less than $1,900, under $2k
	budgetCeilingRe = regexp.MustCompile(`\b(?:under|below|less than)\s*\$?\s?` + amountPattern)
	// a ceiling phrase directly in front of an amount
	ceilingSuffixRe = regexp.MustCompile(`\b(?:under|below|less than)\s*$`)
	// a unit directly after a number, which makes it something other than money
	unitPrefixRe = regexp.MustCompile(`^\s*-?\s*(?:min|bed|br\b|km\b|mi\b|hour|hr\b)`)

	bedroomsRe = regexp.MustCompile(`(\d+)\s*-?\s*bed`)
	commuteRe  = regexp.MustCompile(`(\d+)\s*-?\s*min(?:ute)?s?\b`)

	// matched against the original text so place names keep their casing
	anchorPhraseRe = regexp.MustCompile(`(?i)\b(?:work at|near|commute to)\s+([^,.\n]+)`)
	// a trigger phrase swallowed by an earlier one, as in "commute to work at X"
	leadingTriggerRe = regexp.MustCompile(`(?i)^(?:(?:work at|near|commute to)\b\s*)+`)
	streetAddressRe  = regexp.MustCompile(`\b\d+\s+(?:[A-Z][\w'-]*\s+)+(?i:st|street|ave|avenue|rd|road)\b`)
)

type keywordGroup[T any] struct {
	keywords []string
	value    T
}

// priorityGroups are scanned in order; every matching group contributes its tag once
var priorityGroups = []keywordGroup[model.Priority]{
	{keywords: []string{"short commute", "close to work"}, value: model.PriorityShortCommute},
	{keywords: []string{"safe", "safety"}, value: model.PrioritySafeArea},
	{keywords: []string{"walkab", "walk"}, value: model.PriorityWalkable},
	{keywords: []string{"quiet"}, value: model.PriorityQuiet},
	{keywords: []string{"nightlife", "entertainment"}, value: model.PriorityNightlife},
	{keywords: []string{"cheap", "budget", "affordable"}, value: model.PriorityLowPrice},
}

// transportGroups are scanned in order; the first matching group wins.
// "walk" also feeds the walkable priority and both may fire for one word.
var transportGroups = []keywordGroup[model.TransportMode]{
	{keywords: []string{"driv", "car"}, value: model.TransportDriving},
	{keywords: []string{"bike", "cycling"}, value: model.TransportBiking},
	{keywords: []string{"walk"}, value: model.TransportWalking},
}

func (x *Extractor) extractBudget(m *message, spec *model.SearchSpec) RuleResult {
	for _, loc := range budgetAmountRe.FindAllStringSubmatchIndex(m.lower, -1) {
		first := m.lower[loc[2]:loc[3]]

		// "$1500 - 2 bed" is a lone amount followed by a bedroom count
		if loc[4] >= 0 && !unitFollows(m.lower, loc[5]) {
			if n, ok := utils.ParseAmount(first); ok {
				spec.BudgetMin = n
			}
			if n, ok := utils.ParseAmount(m.lower[loc[4]:loc[5]]); ok {
				spec.BudgetMax = n
			}
			return RuleResult{Matched: true}
		}

		if ceilingSuffixRe.MatchString(m.lower[:loc[0]]) {
			continue
		}
		if n, ok := utils.ParseAmount(first); ok {
			spec.BudgetMin = n
			spec.BudgetMax = n + x.cfg.BudgetSlack
		}
		return RuleResult{Matched: true}
	}

	for _, loc := range budgetCeilingRe.FindAllStringSubmatchIndex(m.lower, -1) {
		if unitFollows(m.lower, loc[3]) {
			continue
		}
		if n, ok := utils.ParseAmount(m.lower[loc[2]:loc[3]]); ok {
			spec.BudgetMin = 0
			spec.BudgetMax = n
		}
		return RuleResult{Matched: true}
	}

	return RuleResult{}
}

func (x *Extractor) extractBedrooms(m *message, spec *model.SearchSpec) RuleResult {
	match := bedroomsRe.FindStringSubmatch(m.lower)
	if match == nil {
		return RuleResult{}
	}
	n, ok := utils.ParseAmount(match[1])
	if !ok || n < 1 || n > x.cfg.MaxBedrooms {
		return RuleResult{}
	}
	spec.Bedrooms = n
	return RuleResult{Matched: true}
}

func (x *Extractor) extractAnchor(m *message, spec *model.SearchSpec) RuleResult {
	if m.pinned {
		return RuleResult{Skipped: true}
	}

	for _, match := range anchorPhraseRe.FindAllStringSubmatch(m.original, -1) {
		if place := utils.CleanPlace(leadingTriggerRe.ReplaceAllString(match[1], "")); place != "" {
			spec.WorkAddress = place
			return RuleResult{Matched: true}
		}
	}

	if street := streetAddressRe.FindString(m.original); street != "" {
		spec.WorkAddress = utils.CleanPlace(street)
		return RuleResult{Matched: true}
	}

	return RuleResult{}
}

func (x *Extractor) extractPriorities(m *message, spec *model.SearchSpec) RuleResult {
	for _, g := range priorityGroups {
		if utils.ContainsAny(m.lower, g.keywords) {
			spec.Priorities = appendPriority(spec.Priorities, g.value)
		}
	}
	if len(spec.Priorities) == 0 {
		spec.Priorities = append([]model.Priority(nil), x.defaultPriorities...)
		return RuleResult{}
	}
	return RuleResult{Matched: true}
}

func (x *Extractor) extractTransportMode(m *message, spec *model.SearchSpec) RuleResult {
	for _, g := range transportGroups {
		if utils.ContainsAny(m.lower, g.keywords) {
			spec.TransportMode = g.value
			return RuleResult{Matched: true}
		}
	}
	return RuleResult{}
}

func (x *Extractor) extractMaxCommute(m *message, spec *model.SearchSpec) RuleResult {
	for _, loc := range commuteRe.FindAllStringSubmatchIndex(m.lower, -1) {
		// "$1500 min" and "$1,500 min" are budget floors, not commutes
		if amountPrecedes(m.lower, loc[0]) {
			continue
		}
		n, ok := utils.ParseAmount(m.lower[loc[2]:loc[3]])
		if !ok || n < 1 {
			return RuleResult{}
		}
		spec.MaxCommuteMinutes = n
		return RuleResult{Matched: true}
	}
	return RuleResult{}
}

// amountPrecedes reports whether the number starting at start continues a
// money figure: directly after '$', or after a thousands comma
func amountPrecedes(s string, start int) bool {
	if start == 0 {
		return false
	}
	switch s[start-1] {
	case '$':
		return true
	case ',':
		return start > 1 && s[start-2] >= '0' && s[start-2] <= '9'
	}
	return false
}

// unitFollows reports whether the number ending at end is followed by a
// non-currency unit such as minutes or bedrooms
func unitFollows(s string, end int) bool {
	return unitPrefixRe.MatchString(s[end:])
}
