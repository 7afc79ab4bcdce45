package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestPrintfLogger_PrintfGoesToDebug(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrintfLogger(context.Background(), NewJSONLogger(&buf, slog.LevelDebug).With("module", "migrations"))

	p.Printf("OK   %s (%s)\n", "00001_metadata.sql", "1ms")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "OK   00001_metadata.sql (1ms)", lines[0]["msg"])
	assert.Equal(t, "migrations", lines[0]["module"])
}

func TestPrintfLogger_HiddenAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrintfLogger(context.Background(), NewJSONLogger(&buf, slog.LevelWarn))

	p.Printf("goose: successfully migrated database to version: %d", 1)
	assert.Empty(t, buf.String())
}

func TestPrintfLogger_Fatalf(t *testing.T) {
	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	var buf bytes.Buffer
	p := NewPrintfLogger(context.Background(), NewJSONLogger(&buf, slog.LevelWarn))
	p.Fatalf("no migrations in %s", "fs")

	assert.Equal(t, 1, code)
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "no migrations in fs", lines[0]["msg"])
}
