package events

import (
	"context"
	"log/slog"

	"mesa-boost/internal/core/domain"
)

// Log writes events to the structured log. It is used when no broker is
// configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Publish(ctx context.Context, ev domain.Event) error {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "boost event",
		slog.String("type", string(ev.Type)),
		slog.String("boost_id", ev.BoostID),
		slog.String("profile_id", ev.ProfileID),
		slog.String("package_id", ev.PackageID),
		slog.Int64("amount", ev.Amount),
		slog.String("ledger_ref", ev.LedgerRef),
		slog.Int64("remaining_seconds", ev.RemainingSeconds),
		slog.Time("occurred_at", ev.OccurredAt))
	return nil
}
