package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("prompt = %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	if err == nil {
		t.Fatal("expected EOF error on empty input")
	}
}

func TestGetLines(t *testing.T) {
	var out bytes.Buffer
	r := rdr("flour\n  eggs  \n\nnext command\n")

	got, err := GetLines(r, "Ingredients", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "eggs"}, got)

	rest, _ := r.ReadString('\n')
	assert.Equal(t, "next command\n", rest, "reading stops at the blank line")

	got, err = GetLines(rdr("a\nb"), "Steps", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = GetLines(rdr(""), "Steps", &out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		var out bytes.Buffer
		got, err := Confirm(rdr(in), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseListArgs(t *testing.T) {
	f, n, err := parseListArgs([]string{"spicy", "-c", "Dinner", "noodles", "-t", "15-30", "-n", "5"})
	require.NoError(t, err)
	assert.Equal(t, "spicy noodles", f.Query)
	assert.Equal(t, "Dinner", f.Category)
	assert.Equal(t, "15-30", f.PrepTime)
	assert.Equal(t, 5, n)

	f, n, err = parseListArgs(nil)
	require.NoError(t, err)
	assert.True(t, f.IsZero())
	assert.Zero(t, n)

	_, _, err = parseListArgs([]string{"-c"})
	assert.Error(t, err)
	_, _, err = parseListArgs([]string{"-n", "many"})
	assert.Error(t, err)
}
