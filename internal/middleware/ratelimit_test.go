package middleware

import "testing"

// TestRateLimiterAllowConsumesTokens verifies the bucket drains and rejects.
func TestRateLimiterAllowConsumesTokens(t *testing.T) {
	rl := &RateLimiter{buckets: make(map[string]*bucket), perHour: 3}

	for i := 0; i < 3; i++ {
		result := rl.allow("session-1")
		if !result.allowed {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}

	result := rl.allow("session-1")
	if result.allowed {
		t.Error("request over the limit was allowed")
	}
	if result.remaining != 0 {
		t.Errorf("remaining = %v, want 0", result.remaining)
	}
	if result.limit != 3 {
		t.Errorf("limit = %v, want 3", result.limit)
	}
}

// TestRateLimiterBucketsAreIndependent verifies sessions don't share tokens.
func TestRateLimiterBucketsAreIndependent(t *testing.T) {
	rl := &RateLimiter{buckets: make(map[string]*bucket), perHour: 1}

	if !rl.allow("session-1").allowed {
		t.Fatal("first request for session-1 rejected")
	}
	if rl.allow("session-1").allowed {
		t.Error("second request for session-1 allowed over the limit")
	}
	if !rl.allow("session-2").allowed {
		t.Error("session-2 starved by session-1's bucket")
	}
}
