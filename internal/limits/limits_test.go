package limits

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"basic", TierBasic},
		{"verified", TierVerified},
		{"premium", TierPremium},
		{"", TierBasic},
		{"gold", TierBasic},
		{"BASIC", TierBasic}, // case-sensitive, falls back
	}

	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForTierConstants(t *testing.T) {
	tests := []struct {
		tier Tier
		want LimitSet
	}{
		{TierBasic, LimitSet{Single: 500, Daily: 1000, Weekly: 5000, Monthly: 10000, Annual: 50000, Velocity: 5}},
		{TierVerified, LimitSet{Single: 2500, Daily: 5000, Weekly: 25000, Monthly: 50000, Annual: 250000, Velocity: 10}},
		{TierPremium, LimitSet{Single: 10000, Daily: 25000, Weekly: 100000, Monthly: 250000, Annual: 1000000, Velocity: 20}},
		{Tier("unknown"), LimitSet{Single: 500, Daily: 1000, Weekly: 5000, Monthly: 10000, Annual: 50000, Velocity: 5}},
	}

	for _, tt := range tests {
		if got := ForTier(tt.tier); got != tt.want {
			t.Errorf("ForTier(%q) = %+v, want %+v", tt.tier, got, tt.want)
		}
	}
}

func TestLimitSetsArePositive(t *testing.T) {
	for _, tier := range []Tier{TierBasic, TierVerified, TierPremium} {
		l := ForTier(tier)
		if l.Single <= 0 || l.Daily <= 0 || l.Weekly <= 0 || l.Monthly <= 0 || l.Annual <= 0 || l.Velocity <= 0 {
			t.Errorf("tier %s has a non-positive limit: %+v", tier, l)
		}
	}
}

func TestThresholds(t *testing.T) {
	th := Thresholds()
	want := RegulatoryThresholds{
		CTR:                  10000,
		SAR:                  5000,
		HighRisk:             2500,
		InternationalDaily:   10000,
		InternationalMonthly: 50000,
	}
	if th != want {
		t.Errorf("Thresholds() = %+v, want %+v", th, want)
	}
}
