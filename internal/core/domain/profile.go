package domain

// Role is the account role used for pricing.
type Role string

const (
	RoleRegular  Role = "regular"
	RoleVerified Role = "verified"
	RoleAI       Role = "ai"
)

// Profile is the read-only view of marketplace profile attributes the
// engine needs. It is owned by the profile service; this engine never
// writes it.
type Profile struct {
	ID           string
	Completeness int     // 0..100
	Rating       float64 // 0..5
	Country      string  // ISO 3166-1 alpha-2
	Role         Role
	Suspended    bool
	Category     string
	Region       string
	ListingScore float64
}
