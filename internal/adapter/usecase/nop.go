package usecase

import (
	"context"
	"time"

	"mesa-boost/internal/core/domain"
)

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) PurchaseOutcome(string)      {}
func (NopMetrics) PurchasePrice(string, int64) {}
func (NopMetrics) Compensation()               {}
func (NopMetrics) Cancelled()                  {}
func (NopMetrics) Expired(int)                 {}
func (NopMetrics) SweepDuration(time.Duration) {}
func (NopMetrics) SweepFailure()               {}
func (NopMetrics) RankingCache(bool)           {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }
