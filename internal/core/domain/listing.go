package domain

// ListingContext describes a listing surface asking for a ranking. When
// Candidates is set it carries the external relevance order of the
// profiles on that surface; otherwise the stored listing score is used.
type ListingContext struct {
	Category   string
	Region     string
	Candidates []string
	Limit      int
}

// RankedProfile is one entry in a ranked listing.
type RankedProfile struct {
	ProfileID        string `json:"profile_id"`
	Boosted          bool   `json:"boosted"`
	BoostID          string `json:"boost_id,omitempty"`
	RemainingSeconds int64  `json:"remaining_seconds,omitempty"`
}
