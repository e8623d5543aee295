package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mesa-boost/internal/core/domain"
)

func TestEvaluate(t *testing.T) {
	rules := Rules{MinCompleteness: 60, DailyBoostLimit: 3}
	ok := domain.Profile{ID: "p", Completeness: 80}

	cases := []struct {
		name string
		in   Input
		want domain.Eligibility
	}{
		{"eligible", Input{Profile: ok}, domain.Eligibility{Eligible: true}},
		{"active boost", Input{Profile: ok, HasActiveBoost: true}, domain.Eligibility{Reason: domain.ReasonBoostActive}},
		{"lapsed boost awaiting expiry", Input{Profile: ok, HasActiveBoost: true, BoostLapsed: true}, domain.Eligibility{Reason: domain.ReasonBoostEnding}},
		{"incomplete", Input{Profile: domain.Profile{Completeness: 59}}, domain.Eligibility{Reason: domain.ReasonIncomplete}},
		{"at completeness threshold", Input{Profile: domain.Profile{Completeness: 60}}, domain.Eligibility{Eligible: true}},
		{"daily limit", Input{Profile: ok, PurchasesToday: 3}, domain.Eligibility{Reason: domain.ReasonDailyLimit}},
		{"below daily limit", Input{Profile: ok, PurchasesToday: 2}, domain.Eligibility{Eligible: true}},
		{"suspended", Input{Profile: domain.Profile{Completeness: 90, Suspended: true}}, domain.Eligibility{Reason: domain.ReasonRestricted}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(rules, tc.in))
		})
	}
}

// TestEvaluateOrder ensures the first failing check is the one reported.
func TestEvaluateOrder(t *testing.T) {
	rules := Rules{MinCompleteness: 60, DailyBoostLimit: 1}
	worst := Input{
		Profile:        domain.Profile{Completeness: 10, Suspended: true},
		HasActiveBoost: true,
		PurchasesToday: 5,
	}
	assert.Equal(t, domain.ReasonBoostActive, Evaluate(rules, worst).Reason)

	worst.HasActiveBoost = false
	assert.Equal(t, domain.ReasonIncomplete, Evaluate(rules, worst).Reason)

	worst.Profile.Completeness = 100
	assert.Equal(t, domain.ReasonDailyLimit, Evaluate(rules, worst).Reason)

	worst.PurchasesToday = 0
	assert.Equal(t, domain.ReasonRestricted, Evaluate(rules, worst).Reason)
}
