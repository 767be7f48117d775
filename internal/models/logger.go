package models

import (
	"context"
	"errors"
	"time"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which queries are logged as warnings.
const slowQuery = 200 * time.Millisecond

type logger struct {
	Logger zerolog.Logger
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]any{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	// Missing records are reported to the user, they are not a server problem
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
		return
	}

	if elapsed > slowQuery {
		l.Logger.Warn().Fields(fields).Msg("[GORM] slow query")
		return
	}

	l.Logger.Debug().Fields(fields).Msg("[GORM] query")
}
