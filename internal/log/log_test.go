package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alia5/hlsbuild/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in       string
		expected slog.Level
	}
	testCases := []testCase{
		{"trace", log.LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, log.ParseLevel(tc.in))
		})
	}
}

func TestOutputLogger(t *testing.T) {
	var buf bytes.Buffer
	o := log.NewOutput(&buf)

	o.Log("ir", false, []byte("one\ntwo\n"))
	o.Log("ir", true, []byte("warning: x"))
	o.Log("ir", true, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], " ir stdout: one"))
	assert.True(t, strings.HasSuffix(lines[1], " ir stdout: two"))
	assert.True(t, strings.HasSuffix(lines[2], " ir stderr: warning: x"))
}

func TestOutputLoggerNilWriter(t *testing.T) {
	o := log.NewOutput(nil)
	assert.NotPanics(t, func() { o.Log("run", false, []byte("x")) })
}

func TestStepWriter(t *testing.T) {
	var buf bytes.Buffer
	w := log.StepWriter(log.NewOutput(&buf), "design", true)

	n, err := w.Write([]byte("make: ok\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Contains(t, buf.String(), "design stderr: make: ok")
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	logger, closers, err := log.SetupLogger("debug", path, "text")
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("hello", "step", "ir")
	logger.Log(context.Background(), log.LevelTrace, "hidden")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello step=ir")
	assert.NotContains(t, string(data), "hidden")
}
