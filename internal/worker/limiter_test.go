package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	url := "https://exports.example.com/claims.xlsx"
	for i := 0; i < 3; i++ {
		if !l.Allow(url) {
			t.Fatalf("request %d should pass within burst", i+1)
		}
	}
	if l.Allow(url) {
		t.Error("request beyond burst should be throttled")
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example.com/x.xlsx") {
		t.Error("first host should pass")
	}
	if !l.Allow("https://b.example.com/x.xlsx") {
		t.Error("second host has its own budget")
	}
	if l.Allow("https://a.example.com/y.xlsx") {
		t.Error("first host exhausted its burst")
	}
}

func TestLimiter_FilePathsBypass(t *testing.T) {
	l := NewLimiter(1, 1)

	for i := 0; i < 10; i++ {
		if !l.Allow("./claims.xlsx") {
			t.Fatal("local file refs must not be rate limited")
		}
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	l := NewLimiter(100, 100)
	l.SetHostRate("slow.example.com", 1, 1)

	url := "https://slow.example.com/claims.xlsx"
	if !l.Allow(url) {
		t.Error("first request should pass")
	}
	if l.Allow(url) {
		t.Error("override burst of 1 should throttle the second request")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	url := "https://exports.example.com/claims.xlsx"
	_ = l.Allow(url) // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, url); err == nil {
		t.Error("Wait should fail once the context expires")
	}
}
