package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	rotator, err := NewRotator([]string{"http://a:1", " ", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	if len(rotator.proxies) != 2 {
		t.Fatalf("proxies = %d, want 2", len(rotator.proxies))
	}

	var got []string
	for i := 0; i < 3; i++ {
		proxy, err := rotator.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, proxy.Host)
	}
	want := []string{"a:1", "b:2", "a:1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next() sequence = %v, want %v", got, want)
		}
	}
}

func TestRotatorBansOnBlockStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rotator, err := NewRotator([]string{"http://a:1", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	rotator.now = func() time.Time { return now }

	first, _ := rotator.Next()
	rotator.Report(first, 429)
	second, _ := rotator.Next()
	rotator.Report(second, 200)

	next, err := rotator.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next.Host != "b:2" {
		t.Fatalf("expected banned proxy to be skipped, got %s", next.Host)
	}

	rotator.Report(next, 403)
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("expected ErrNoProxies, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := rotator.Next(); err != nil {
		t.Fatalf("expected bans to expire, got %v", err)
	}
}

func TestNewLimiterUnlimited(t *testing.T) {
	limiter := newLimiter(0)
	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatalf("unlimited limiter refused request %d", i)
		}
	}
}

func TestNewLimiterSpacesRequests(t *testing.T) {
	limiter := newLimiter(1)
	if !limiter.Allow() {
		t.Fatalf("first request should pass")
	}
	if limiter.Allow() {
		t.Fatalf("second immediate request should wait")
	}
}
