package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "hashtag 查询失败",
		Data:    logrus.Fields{"run_id": "abc", "chat_id": 42},
		Caller:  &runtime.Frame{File: "/src/pkg/signals/collector.go", Line: 17},
		Logger:  &logrus.Logger{ReportCaller: true},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-06 07:08:09] [WARN] [collector.go:17] hashtag 查询失败 chat_id=42 run_id=abc\n", string(out))
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	log, err := New("debug", path)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Info("started")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] [logger_test.go:")
	assert.Contains(t, string(data), "started")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	log, err := New("loud", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
