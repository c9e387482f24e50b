package util

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("zero budget should yield empty, got %q", got)
	}
}

func TestTruncateBytesRespectsUTF8(t *testing.T) {
	input := strings.Repeat("가", 100)
	got := TruncateBytes(input, 10)
	if len(got) > 10 {
		t.Errorf("budget exceeded: %d bytes", len(got))
	}
	// Must not end mid-sequence.
	for _, r := range got {
		if r == '�' {
			t.Fatal("truncation split a UTF-8 sequence")
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  a\n\t b   c  "); got != "a b c" {
		t.Errorf("got %q", got)
	}
}
