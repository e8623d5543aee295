package pricing

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"mesa-boost/internal/core/domain"
)

// Tier applies Factor to values greater than or equal to Min.
type Tier struct {
	Min    decimal.Decimal
	Factor decimal.Decimal
}

// Config holds the pricing policy. All factors are multipliers applied to
// the package base price.
type Config struct {
	CompletenessTiers []Tier
	RatingTiers       []Tier
	CountryFactors    map[string]decimal.Decimal
	RoleFactors       map[domain.Role]decimal.Decimal
	// MinPrice is the floor applied after rounding, in minor units.
	MinPrice int64
}

// DefaultConfig returns the stock policy.
func DefaultConfig() Config {
	return Config{
		CompletenessTiers: []Tier{
			{Min: decimal.NewFromInt(90), Factor: decimal.RequireFromString("0.85")},
			{Min: decimal.NewFromInt(80), Factor: decimal.RequireFromString("0.90")},
			{Min: decimal.NewFromInt(60), Factor: decimal.RequireFromString("0.95")},
		},
		RatingTiers: []Tier{
			{Min: decimal.RequireFromString("4.5"), Factor: decimal.RequireFromString("0.95")},
			{Min: decimal.RequireFromString("4.0"), Factor: decimal.RequireFromString("0.97")},
		},
		CountryFactors: map[string]decimal.Decimal{},
		RoleFactors: map[domain.Role]decimal.Decimal{
			domain.RoleRegular:  decimal.NewFromInt(1),
			domain.RoleVerified: decimal.RequireFromString("0.90"),
			domain.RoleAI:       decimal.RequireFromString("1.10"),
		},
		MinPrice: 100,
	}
}

// Calculator computes boost prices. It holds no mutable state after
// construction and is safe for concurrent use.
type Calculator struct {
	completeness []Tier
	rating       []Tier
	country      map[string]decimal.Decimal
	role         map[domain.Role]decimal.Decimal
	minPrice     int64
}

// NewCalculator validates cfg and builds a calculator. Tiers are copied
// and sorted by descending Min so the first match wins.
func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.MinPrice <= 0 {
		return nil, errors.New("pricing: min price must be positive")
	}
	c := &Calculator{
		completeness: sortedTiers(cfg.CompletenessTiers),
		rating:       sortedTiers(cfg.RatingTiers),
		country:      make(map[string]decimal.Decimal, len(cfg.CountryFactors)),
		role:         make(map[domain.Role]decimal.Decimal, len(cfg.RoleFactors)),
		minPrice:     cfg.MinPrice,
	}
	for k, v := range cfg.CountryFactors {
		if !v.IsPositive() {
			return nil, errors.New("pricing: country factor must be positive")
		}
		c.country[strings.ToUpper(k)] = v
	}
	for k, v := range cfg.RoleFactors {
		if !v.IsPositive() {
			return nil, errors.New("pricing: role factor must be positive")
		}
		c.role[k] = v
	}
	for _, t := range append(c.completeness, c.rating...) {
		if !t.Factor.IsPositive() {
			return nil, errors.New("pricing: tier factor must be positive")
		}
	}
	return c, nil
}

func sortedTiers(in []Tier) []Tier {
	out := make([]Tier, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min.GreaterThan(out[j].Min) })
	return out
}

// Compute prices pkg for profile. The returned quote carries every input
// and factor so the price can be reproduced later.
func (c *Calculator) Compute(p domain.Profile, pkg domain.Package) (domain.PriceQuote, error) {
	if pkg.BasePrice <= 0 {
		return domain.PriceQuote{}, errors.New("pricing: package base price must be positive")
	}
	if p.Completeness < 0 || p.Completeness > 100 {
		return domain.PriceQuote{}, errors.New("pricing: completeness out of range")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return domain.PriceQuote{}, errors.New("pricing: rating out of range")
	}

	completeness := tierFactor(c.completeness, decimal.NewFromInt(int64(p.Completeness)))
	rating := tierFactor(c.rating, decimal.NewFromFloat(p.Rating))
	country, ok := c.country[strings.ToUpper(p.Country)]
	if !ok {
		country = decimal.NewFromInt(1)
	}
	role, ok := c.role[p.Role]
	if !ok {
		role = c.role[domain.RoleRegular]
		if role.IsZero() {
			role = decimal.NewFromInt(1)
		}
	}

	price := decimal.NewFromInt(pkg.BasePrice).
		Mul(completeness).
		Mul(rating).
		Mul(country).
		Mul(role).
		Round(0).
		IntPart()
	if price < c.minPrice {
		price = c.minPrice
	}

	return domain.PriceQuote{
		BasePrice:          pkg.BasePrice,
		Completeness:       p.Completeness,
		Rating:             p.Rating,
		Country:            strings.ToUpper(p.Country),
		Role:               p.Role,
		CompletenessFactor: completeness.String(),
		RatingFactor:       rating.String(),
		CountryFactor:      country.String(),
		RoleFactor:         role.String(),
		Price:              price,
	}, nil
}

// Reproduce recomputes the price recorded in q from its own factors.
func Reproduce(q domain.PriceQuote, minPrice int64) (int64, error) {
	price := decimal.NewFromInt(q.BasePrice)
	for _, f := range []string{q.CompletenessFactor, q.RatingFactor, q.CountryFactor, q.RoleFactor} {
		d, err := decimal.NewFromString(f)
		if err != nil {
			return 0, err
		}
		price = price.Mul(d)
	}
	v := price.Round(0).IntPart()
	if v < minPrice {
		v = minPrice
	}
	return v, nil
}

func tierFactor(tiers []Tier, v decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if v.GreaterThanOrEqual(t.Min) {
			return t.Factor
		}
	}
	return decimal.NewFromInt(1)
}
