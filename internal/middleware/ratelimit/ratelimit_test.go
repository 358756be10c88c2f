package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinBudget(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 5, WindowDuration: time.Minute})
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied within budget", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request beyond budget allowed")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 1, WindowDuration: time.Minute})
	defer rl.Stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if rl.allow("10.0.0.1") {
		t.Error("first client not exhausted")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second client should have its own bucket")
	}
}

func TestAllowRefills(t *testing.T) {
	// One-token bucket with a 50ms refill interval.
	rl := New(Config{MaxRequestsPerMinute: 1, WindowDuration: 50 * time.Millisecond})
	defer rl.Stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("initial token denied")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(60 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("bucket did not refill after the window")
	}
}
