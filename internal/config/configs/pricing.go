package configs

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/pricing"
)

// Pricing holds the pricing policy as environment maps of
// threshold:factor pairs, e.g. PRICING_COMPLETENESS_TIERS=90:0.85,80:0.9.
type Pricing struct {
	CompletenessTiers map[string]string `env:"COMPLETENESS_TIERS" envDefault:"90:0.85,80:0.90,60:0.95" envSeparator:"," envKeyValSeparator:":"`
	RatingTiers       map[string]string `env:"RATING_TIERS" envDefault:"4.5:0.95,4.0:0.97" envSeparator:"," envKeyValSeparator:":"`
	CountryFactors    map[string]string `env:"COUNTRY_FACTORS" envSeparator:"," envKeyValSeparator:":"`
	RoleFactors       map[string]string `env:"ROLE_FACTORS" envDefault:"regular:1.0,verified:0.90,ai:1.10" envSeparator:"," envKeyValSeparator:":"`
	// MinPrice is the price floor in minor currency units.
	MinPrice int64 `env:"MIN_PRICE" envDefault:"100"`
}

// Calculator converts the maps into a pricing.Config.
func (c Pricing) Calculator() (*pricing.Calculator, error) {
	cfg := pricing.Config{
		CountryFactors: make(map[string]decimal.Decimal, len(c.CountryFactors)),
		RoleFactors:    make(map[domain.Role]decimal.Decimal, len(c.RoleFactors)),
		MinPrice:       c.MinPrice,
	}
	var err error
	if cfg.CompletenessTiers, err = parseTiers(c.CompletenessTiers); err != nil {
		return nil, fmt.Errorf("completeness tiers: %w", err)
	}
	if cfg.RatingTiers, err = parseTiers(c.RatingTiers); err != nil {
		return nil, fmt.Errorf("rating tiers: %w", err)
	}
	for k, v := range c.CountryFactors {
		if cfg.CountryFactors[k], err = decimal.NewFromString(v); err != nil {
			return nil, fmt.Errorf("country factor %s: %w", k, err)
		}
	}
	for k, v := range c.RoleFactors {
		if cfg.RoleFactors[domain.Role(k)], err = decimal.NewFromString(v); err != nil {
			return nil, fmt.Errorf("role factor %s: %w", k, err)
		}
	}
	return pricing.NewCalculator(cfg)
}

func parseTiers(m map[string]string) ([]pricing.Tier, error) {
	tiers := make([]pricing.Tier, 0, len(m))
	for k, v := range m {
		if _, err := strconv.ParseFloat(k, 64); err != nil {
			return nil, fmt.Errorf("threshold %q: %w", k, err)
		}
		factor, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("factor %q: %w", v, err)
		}
		tiers = append(tiers, pricing.Tier{Min: decimal.RequireFromString(k), Factor: factor})
	}
	return tiers, nil
}
