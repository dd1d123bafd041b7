package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts a slog logger to GORM's logger.Interface.
// Queries are logged at debug level, slow queries and query errors at warn.
type GormLogger struct {
	log           *slog.Logger
	slowThreshold time.Duration
}

// NewGormLogger creates the adapter. A zero slowThreshold disables slow
// query warnings.
func NewGormLogger(log *slog.Logger, slowThreshold time.Duration) *GormLogger {
	if log == nil {
		log = Discard()
	}
	return &GormLogger{log: log, slowThreshold: slowThreshold}
}

// LogMode returns the adapter itself; the level comes from slog.
func (g *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return g }

func (g *GormLogger) Info(_ context.Context, msg string, data ...any) {
	g.log.Debug(fmt.Sprintf(msg, data...))
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	g.log.Warn(fmt.Sprintf(msg, data...))
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...any) {
	g.log.Error(fmt.Sprintf(msg, data...))
}

// Trace logs one executed statement.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		g.log.Warn("query error",
			slog.String("sql", sql),
			slog.Int64("rows_affected", rows),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold:
		g.log.Warn("slow query",
			slog.String("sql", sql),
			slog.Int64("rows_affected", rows),
			slog.Duration("elapsed", elapsed))
	default:
		g.log.Debug("query",
			slog.String("sql", sql),
			slog.Int64("rows_affected", rows),
			slog.Duration("elapsed", elapsed))
	}
}
