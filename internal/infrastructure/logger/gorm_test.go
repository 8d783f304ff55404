package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), observed
}

func TestGormLoggerTrace(t *testing.T) {
	fc := func() (string, int64) { return "SELECT * FROM products", 3 }

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), fc, nil)
		assert.Empty(t, observed.TakeAll())
	})

	t.Run("info logs queries at debug", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), fc, nil)

		entries := observed.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Query", entries[0].Message)
		assert.Equal(t, "SELECT * FROM products", entries[0].ContextMap()["sql"])
	})

	t.Run("errors are logged", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), fc, errors.New("connection reset"))

		entries := observed.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Error", entries[0].Message)
	})

	t.Run("record not found suppressed by default", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
		assert.Empty(t, observed.TakeAll())
	})

	t.Run("record not found logged when configured", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
		assert.Len(t, observed.TakeAll(), 1)
	})

	t.Run("slow queries warned", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

		entries := observed.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("request id carried from context", func(t *testing.T) {
		gl, observed := newObservedGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-55")
		gl.Trace(ctx, time.Now(), fc, nil)

		entries := observed.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-55", entries[0].ContextMap()["request_id"])
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)
	changed := gl.LogMode(gormlogger.Error)

	assert.NotNil(t, changed)
	assert.Equal(t, gormlogger.Warn, gl.level, "original is unchanged")
}
