package domain

// PriceQuote is the full pricing computation for one purchase. It is stored
// alongside the boost so the price can be re-derived for audit.
type PriceQuote struct {
	BasePrice          int64   `json:"base_price"`
	Completeness       int     `json:"completeness"`
	Rating             float64 `json:"rating"`
	Country            string  `json:"country"`
	Role               Role    `json:"role"`
	CompletenessFactor string  `json:"completeness_factor"`
	RatingFactor       string  `json:"rating_factor"`
	CountryFactor      string  `json:"country_factor"`
	RoleFactor         string  `json:"role_factor"`
	Price              int64   `json:"price"`
}
