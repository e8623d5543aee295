package eligibility

import "mesa-boost/internal/core/domain"

// Rules configures the eligibility thresholds.
type Rules struct {
	MinCompleteness int
	DailyBoostLimit int
}

// Input is everything evaluation looks at. It is assembled by the caller
// from the profile service and the boost store.
// BoostLapsed marks an active row past its end time that the expiry
// sweep has not reached yet.
type Input struct {
	Profile        domain.Profile
	HasActiveBoost bool
	BoostLapsed    bool
	PurchasesToday int
}

// Evaluate applies the checks in a fixed order and reports the first
// failing one. It has no side effects.
func Evaluate(r Rules, in Input) domain.Eligibility {
	switch {
	case in.HasActiveBoost && in.BoostLapsed:
		return ineligible(domain.ReasonBoostEnding)
	case in.HasActiveBoost:
		return ineligible(domain.ReasonBoostActive)
	case in.Profile.Completeness < r.MinCompleteness:
		return ineligible(domain.ReasonIncomplete)
	case in.PurchasesToday >= r.DailyBoostLimit:
		return ineligible(domain.ReasonDailyLimit)
	case in.Profile.Suspended:
		return ineligible(domain.ReasonRestricted)
	}
	return domain.Eligibility{Eligible: true}
}

func ineligible(reason string) domain.Eligibility {
	return domain.Eligibility{Eligible: false, Reason: reason}
}
