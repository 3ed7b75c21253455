// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package archetype

import (
	"testing"

	"github.com/Shane-Breen/wheres-my-lighter/internal/journey"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		signals  journey.Signals
		wantName string
		wantRule RuleID
	}{
		{
			name:     "night heavy and enough taps",
			signals:  journey.Signals{NightRatio: 0.7, TotalTaps: 6},
			wantName: "The Party Liability",
			wantRule: RulePartyLiability,
		},
		{
			name:     "exactly at the night thresholds",
			signals:  journey.Signals{NightRatio: 0.6, TotalTaps: 5},
			wantName: "The Party Liability",
			wantRule: RulePartyLiability,
		},
		{
			name:     "night heavy but too few taps falls through",
			signals:  journey.Signals{NightRatio: 0.9, TotalTaps: 4},
			wantName: "The Pocket Nomad",
			wantRule: RulePocketNomad,
		},
		{
			name:     "three countries",
			signals:  journey.Signals{Countries: 3, TotalTaps: 4},
			wantName: "The Border Hopper",
			wantRule: RuleBorderHopper,
		},
		{
			name:     "many taps in few cities",
			signals:  journey.Signals{TotalTaps: 10, Cities: 2},
			wantName: "The Quiet Local",
			wantRule: RuleQuietLocal,
		},
		{
			name:     "many taps spread wide falls through",
			signals:  journey.Signals{TotalTaps: 10, Cities: 3},
			wantName: "The Pocket Nomad",
			wantRule: RulePocketNomad,
		},
		{
			name:     "no signals at all",
			signals:  journey.Signals{},
			wantName: "The Pocket Nomad",
			wantRule: RulePocketNomad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.signals)

			if got.Name != tt.wantName {
				t.Errorf("Classify().Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Classify().Rule = %q, want %q", got.Rule, tt.wantRule)
			}
			if len(got.Lines) == 0 {
				t.Errorf("Classify().Lines is empty")
			}
		})
	}
}

// A tap set can satisfy several rules at once; the earlier rule must
// win regardless of how strongly a later rule matches.
func TestClassifyRuleOrder(t *testing.T) {
	signals := journey.Signals{
		NightRatio: 0.8,
		TotalTaps:  20,
		Countries:  5,
		Cities:     1,
	}

	got := Classify(signals)
	if got.Rule != RulePartyLiability {
		t.Errorf("Classify().Rule = %q, want %q (first matching rule wins)", got.Rule, RulePartyLiability)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	signals := journey.Signals{NightRatio: 0.6, TotalTaps: 8, Countries: 2, Cities: 4}

	first := Classify(signals)
	for i := 0; i < 10; i++ {
		if got := Classify(signals); got.Rule != first.Rule || got.Name != first.Name {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}
}
