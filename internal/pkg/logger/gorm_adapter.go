package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormAdapter routes GORM query logs into zap. Record-not-found is expected
// on lookups and never logged as an error.
type GormAdapter struct {
	level gormlogger.LogLevel
}

func NewGormAdapter(level gormlogger.LogLevel) *GormAdapter {
	return &GormAdapter{level: level}
}

func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormAdapter{level: level}
}

func (a *GormAdapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Info {
		log.Info(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Warn {
		log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Error {
		log.Error(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && a.level >= gormlogger.Error:
		log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > slowQueryThreshold && a.level >= gormlogger.Warn:
		log.Warn("slow query", fields...)
	case a.level >= gormlogger.Info:
		log.Debug("query", fields...)
	}
}
