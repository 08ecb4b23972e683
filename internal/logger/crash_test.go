package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCrashLog(t *testing.T) {
	ctx = &crashContext{}
	dir := t.TempDir()
	SetBasePath(dir)
	SetVersion("0.1.0-test")
	SetCommand("plan")
	SetLastInput("move breakfast to 9am")

	path, err := writeCrashLog("boom")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "Panic: boom")
	assert.Contains(t, text, "Version:   0.1.0-test")
	assert.Contains(t, text, "Command:   plan")
	assert.Contains(t, text, "move breakfast to 9am")
	assert.Contains(t, text, "goroutine", "stack trace included")
}

func TestSetLastInputTruncates(t *testing.T) {
	ctx = &crashContext{}
	SetLastInput(strings.Repeat("x", 600))

	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	assert.True(t, strings.HasSuffix(ctx.lastInput, "... [truncated]"))
	assert.Less(t, len(ctx.lastInput), 600)
}

func TestListCrashLogs(t *testing.T) {
	ctx = &crashContext{}
	dir := t.TempDir()
	SetBasePath(dir)

	logs, err := ListCrashLogs(dir)
	require.NoError(t, err)
	assert.Empty(t, logs, "no logs yet")

	_, err = writeCrashLog("first")
	require.NoError(t, err)

	logs, err = ListCrashLogs(dir)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, filepath.Join(dir, crashLogDir), filepath.Dir(logs[0]))
}

func TestPruneOldLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < maxCrashLogs+3; i++ {
		name := filepath.Join(dir, fmt.Sprintf("crash_20260101_%06d.log", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	pruneOldLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(entries), maxCrashLogs)
}
