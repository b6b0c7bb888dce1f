package logger

import (
	"testing"
	"time"
)

func TestRoundMS(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 0},
		{-5 * time.Millisecond, 0},
		{1499 * time.Microsecond, time.Millisecond},
		{2500 * time.Microsecond, 2 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := RoundMS(tc.in); got != tc.want {
			t.Errorf("RoundMS(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSummarizeStrings(t *testing.T) {
	vals := []string{"a", "b", "c", "d"}
	got, truncated := SummarizeStrings(vals, 2)
	if got != "a, b" || !truncated {
		t.Errorf("SummarizeStrings = %q truncated=%v", got, truncated)
	}
	got, truncated = SummarizeStrings(vals, 10)
	if got != "a, b, c, d" || truncated {
		t.Errorf("SummarizeStrings full = %q truncated=%v", got, truncated)
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "hello\x00world\x1b[0m"
	if got := Sanitize(in); got != "helloworld[0m" {
		t.Errorf("Sanitize = %q", got)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Errorf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Errorf("SanitizeLimit zero max = %q", got)
	}
}

func TestBuildAndCompactRID(t *testing.T) {
	rid := BuildRID(100, 200, 300)
	if rid != "100:200:300" {
		t.Fatalf("BuildRID = %q", rid)
	}
	compact := CompactRID(rid)
	if compact != "2s.5k.8c" {
		t.Errorf("CompactRID = %q", compact)
	}
	// Unexpected shapes pass through unchanged.
	if got := CompactRID("not-a-rid"); got != "not-a-rid" {
		t.Errorf("CompactRID passthrough = %q", got)
	}
}
