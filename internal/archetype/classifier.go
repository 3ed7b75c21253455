// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package archetype derives a named behavioral archetype for an object
// from its aggregate journey signals.
//
// The classifier is an ordered decision table: rules are evaluated
// top-to-bottom and the first matching rule wins. Inputs can satisfy
// several rules at once, so rule ORDER is the tie-breaker, not any
// score. The final rule always matches, so classification is total.
package archetype

import "github.com/Shane-Breen/wheres-my-lighter/internal/journey"

// RuleID identifies which rule in the decision table produced a
// result. Exposed for diagnostics and tests; not shown to end users.
type RuleID string

const (
	RulePartyLiability RuleID = "night_owl"
	RuleBorderHopper   RuleID = "multi_country"
	RuleQuietLocal     RuleID = "high_taps_low_spread"
	RulePocketNomad    RuleID = "default"
)

// Result is the classification output: a fixed display name, ordered
// flavor lines, and the rule that fired.
type Result struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
	Rule  RuleID   `json:"rule"`
}

// rule is one guarded entry in the decision table.
type rule struct {
	id    RuleID
	match func(journey.Signals) bool
	name  string
	lines []string
}

// rules is evaluated in order; the final entry always matches.
var rules = []rule{
	{
		id: RulePartyLiability,
		match: func(s journey.Signals) bool {
			return s.NightRatio >= 0.6 && s.TotalTaps >= 5
		},
		name: "The Party Liability",
		lines: []string{
			"This lighter only comes out after dark.",
			"Statistically, it has seen things it cannot unsee.",
		},
	},
	{
		id: RuleBorderHopper,
		match: func(s journey.Signals) bool {
			return s.Countries >= 3
		},
		name: "The Border Hopper",
		lines: []string{
			"Three countries and counting.",
			"More stamps than most passports.",
		},
	},
	{
		id: RuleQuietLocal,
		match: func(s journey.Signals) bool {
			return s.TotalTaps >= 10 && s.Cities <= 2
		},
		name: "The Quiet Local",
		lines: []string{
			"Passed around constantly, never goes far.",
			"A regular at a very small number of places.",
		},
	},
	{
		id:    RulePocketNomad,
		match: func(journey.Signals) bool { return true },
		name:  "The Pocket Nomad",
		lines: []string{
			"Still early in its travels.",
			"Every journey starts in someone's pocket.",
		},
	},
}

// Classify maps signals to an archetype. Deterministic: identical
// inputs always produce identical results.
func Classify(s journey.Signals) Result {
	for _, r := range rules {
		if r.match(s) {
			return Result{Name: r.name, Lines: r.lines, Rule: r.id}
		}
	}
	// Unreachable: the default rule always matches.
	last := rules[len(rules)-1]
	return Result{Name: last.name, Lines: last.lines, Rule: last.id}
}
