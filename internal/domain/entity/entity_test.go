package entity

import (
	"testing"
	"time"
)

func TestNewGenerationRequestDefaults(t *testing.T) {
	req := NewGenerationRequest("script", "", "", "", "")

	if req.Tone != ToneCasual || req.Platform != PlatformYouTubeShorts ||
		req.Goal != GoalGoViral || req.CreatorStyle != CreatorNone {
		t.Fatalf("unexpected defaults: %+v", req)
	}
	if !req.CreatorStyle.IsNone() {
		t.Fatal("default creator style should be none")
	}
}

func TestFingerprintIgnoresSurroundingWhitespace(t *testing.T) {
	a := NewGenerationRequest("  hello  ", ToneHype, PlatformTikTok, GoalEducate, CreatorGaryVee)
	b := NewGenerationRequest("hello", ToneHype, PlatformTikTok, GoalEducate, CreatorGaryVee)
	c := NewGenerationRequest("hello", ToneCasual, PlatformTikTok, GoalEducate, CreatorGaryVee)

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints should match")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different tone should change fingerprint")
	}
}

func TestUsageCounterCountOn(t *testing.T) {
	today := UsageDay(time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC))
	yesterday := UsageDay(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))

	c := UsageCounter{Date: yesterday, Count: 50}
	if got := c.CountOn(today); got != 0 {
		t.Errorf("stale counter CountOn(today) = %d, want 0", got)
	}
	if got := c.CountOn(yesterday); got != 50 {
		t.Errorf("CountOn(yesterday) = %d, want 50", got)
	}
}

func TestDurationValid(t *testing.T) {
	for _, d := range []Duration{Duration7s, Duration15s, Duration30s, Duration60s} {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if Duration("45s").Valid() {
		t.Error("45s should be invalid")
	}
}
