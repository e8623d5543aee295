package domain

// Reasons reported by eligibility evaluation. They are surfaced to users
// verbatim.
const (
	ReasonBoostActive = "boost already active"
	ReasonBoostEnding = "boost ending, try again shortly"
	ReasonIncomplete  = "profile incomplete"
	ReasonDailyLimit  = "daily boost limit reached"
	ReasonRestricted  = "account restricted"
)

// Eligibility is the derived answer to "may this profile buy a boost now".
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
