package domain

import (
	"encoding/json"
	"time"
)

// Package is a boost catalog entry. BasePrice is in minor currency units.
type Package struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Duration  time.Duration `json:"-"`
	BasePrice int64         `json:"base_price"`
	Features  []string      `json:"features"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MarshalJSON renders Duration as whole seconds.
func (p Package) MarshalJSON() ([]byte, error) {
	type plain Package
	return json.Marshal(struct {
		plain
		DurationSeconds int64 `json:"duration_seconds"`
	}{plain(p), int64(p.Duration / time.Second)})
}
