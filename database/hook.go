package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// queryLogHook logs slow queries and failed statements
type queryLogHook struct {
	logger        *gecho.Logger
	slowThreshold time.Duration
}

func (h *queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) && !errors.Is(event.Err, sql.ErrTxDone) {
		h.logger.Debug("Database query failed",
			gecho.Field("operation", event.Operation()),
			gecho.Field("error", event.Err),
			gecho.Field("duration", duration),
		)
		if isRetryableError(event.Err) {
			h.logger.Error("Database connection error, the connection may have been closed by the server",
				gecho.Field("error", event.Err),
				gecho.Field("query", event.Query),
			)
		}
		return
	}

	if h.slowThreshold > 0 && duration > h.slowThreshold {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}
}
