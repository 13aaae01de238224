package database

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
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnect_LogsQueryErrorsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	db, err := Connect(":memory:", zap.New(core))
	require.NoError(t, err)

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)

	failed := logs.FilterMessage("query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "gorm", failed[0].LoggerName)
	assert.Contains(t, failed[0].ContextMap()["sql"], "no_such_table")
}

func TestZapLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		wantMsg string
	}{
		{"error logged", gormlogger.Warn, time.Now(), errors.New("boom"), "query failed"},
		{"record not found skipped", gormlogger.Warn, time.Now(), gorm.ErrRecordNotFound, ""},
		{"slow query warned", gormlogger.Warn, time.Now().Add(-time.Second), nil, "slow query"},
		{"fast query quiet at warn", gormlogger.Warn, time.Now(), nil, ""},
		{"silent drops errors", gormlogger.Silent, time.Now(), errors.New("boom"), ""},
		{"info traces every query", gormlogger.Info, time.Now(), nil, "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := newZapLogger(zap.New(core), tt.level)

			l.Trace(context.Background(), tt.begin, sql, tt.err)

			if tt.wantMsg == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.wantMsg, logs.All()[0].Message)
		})
	}
}

func TestZapLogger_LogModeCopies(t *testing.T) {
	l := newZapLogger(zap.NewNop(), gormlogger.Warn)
	quiet := l.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Warn, l.level)
	assert.Equal(t, gormlogger.Silent, quiet.(*zapLogger).level)
}
