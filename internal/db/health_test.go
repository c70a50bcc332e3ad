package db

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferLogger(buf *bytes.Buffer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(buf),
		level,
	)
	return zap.New(core)
}

func TestStartHealthMonitor_HealthyStaysQuiet(t *testing.T) {
	dbMock, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	var buf bytes.Buffer
	logger := bufferLogger(&buf, zapcore.ErrorLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartHealthMonitor(ctx, dbMock, 10*time.Millisecond, logger)

	time.Sleep(100 * time.Millisecond)
	cancel()

	if out := buf.String(); out != "" {
		t.Errorf("expected no error logs while healthy, got %q", out)
	}
}

func TestStartHealthMonitor_ErrorLogged(t *testing.T) {
	dbMock, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectPing().WillReturnError(fmt.Errorf("db fail"))

	var buf bytes.Buffer
	logger := bufferLogger(&buf, zapcore.ErrorLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartHealthMonitor(ctx, dbMock, 10*time.Millisecond, logger)

	time.Sleep(100 * time.Millisecond)
	cancel()

	if !strings.Contains(buf.String(), "storage unavailable") {
		t.Errorf("expected storage unavailable log, got %q", buf.String())
	}
}
