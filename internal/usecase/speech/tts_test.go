package speech

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	// a 1-byte prefix knocks the 4-byte runes out of alignment with
	// the limit, so the cut would land mid-rune without the boundary
	// check
	long := "a" + strings.Repeat("\U0001F3A4", 400)
	got := truncateRunes(long, maxSynthesisChars)
	if len(got) > maxSynthesisChars {
		t.Fatalf("length = %d, max %d", len(got), maxSynthesisChars)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated text is not valid UTF-8")
	}
	if s := truncateRunes("short question", maxSynthesisChars); s != "short question" {
		t.Fatalf("short string changed: %q", s)
	}
}
