package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	l := NewLimiter(10, 0)
	if l.defaultBurst != 1 {
		t.Errorf("expected default burst 1, got %d", l.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := NewLimiter(100, 1)
	if err := l.Wait(context.Background(), "https://example.com/ruling/1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Wait(context.Background(), "not a url"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestLimiter_PerHostBuckets(t *testing.T) {
	l := NewLimiter(0.1, 1)

	if !l.Allow("https://a.example/1") {
		t.Fatal("first request to a host should pass")
	}
	if l.Allow("https://a.example/2") {
		t.Error("second request to the same host should be throttled")
	}
	if !l.Allow("https://b.example/1") {
		t.Error("other hosts must have their own bucket")
	}
}

func TestLimiter_WaitKeyHonorsContext(t *testing.T) {
	l := NewLimiter(0.1, 1)
	if err := l.WaitKey(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.WaitKey(ctx, "k"); err == nil {
		t.Error("expected context error while throttled")
	}
}

func TestLimiter_DisabledRate(t *testing.T) {
	l := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow("https://a.example/") {
			t.Fatal("zero rate should not throttle")
		}
	}
}

func TestLimiter_SetRate(t *testing.T) {
	l := NewLimiter(0.1, 1)
	l.SetRate("fast.example", 1000, 10)

	for i := 0; i < 5; i++ {
		if !l.Allow("https://fast.example/x") {
			t.Fatalf("request %d should pass with custom rate", i)
		}
	}
}
