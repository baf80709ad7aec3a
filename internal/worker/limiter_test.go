package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowEnforcesBurst(t *testing.T) {
	// One scan per hour with burst 1: the first scan passes, the second
	// must be refused
	limiter := NewLimiter(1.0/3600, 1)

	url := "https://app.copyleaks.com/v1/scan/ai/embedded"
	if !limiter.Allow(url) {
		t.Error("expected the first scan to be allowed")
	}
	if limiter.Allow(url) {
		t.Error("expected the second scan to be refused")
	}
}

func TestLimiter_KeysOnHost(t *testing.T) {
	limiter := NewLimiter(1.0/3600, 1)

	if !limiter.Allow("https://app.copyleaks.com/v1/scan/ai/embedded") {
		t.Error("expected the first host's scan to be allowed")
	}

	// A different host gets its own bucket
	if !limiter.Allow("https://other.example.com/detector") {
		t.Error("expected a fresh bucket for a different host")
	}

	// Same host, different path: same bucket, already spent
	if limiter.Allow("https://app.copyleaks.com/other/page") {
		t.Error("expected the same host's bucket to be shared across paths")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(1.0/3600, 1)
	limiter.SetHostRate("app.copyleaks.com", 1000, 5)

	url := "https://app.copyleaks.com/v1/scan/ai/embedded"
	for i := 0; i < 5; i++ {
		if !limiter.Allow(url) {
			t.Errorf("expected scan %d within burst to be allowed", i+1)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(1.0/3600, 1)

	url := "https://app.copyleaks.com/v1/scan/ai/embedded"
	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("unexpected error on the first wait: %v", err)
	}

	// The bucket is empty and refills in an hour; a short deadline must
	// surface instead of blocking
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected a deadline error from the drained bucket")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(10, 1)

	if limiter.Allow("://not a url") {
		t.Error("expected an unparsable URL to be refused")
	}
}
