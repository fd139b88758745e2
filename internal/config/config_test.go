package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BookingTimeout != 15*time.Second {
		t.Errorf("expected default booking timeout, got %v", cfg.BookingTimeout)
	}
	if cfg.StaffCSRFCookie != "csrftoken" {
		t.Errorf("expected default csrf cookie name, got %s", cfg.StaffCSRFCookie)
	}
	if cfg.PrecheckCacheTTL != 2*time.Minute {
		t.Errorf("expected default precheck TTL, got %v", cfg.PrecheckCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKING_BASE_URL", "https://booking.internal")
	t.Setenv("BOOKING_TIMEOUT", "3s")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()

	if cfg.BookingBaseURL != "https://booking.internal" {
		t.Errorf("unexpected booking base url: %s", cfg.BookingBaseURL)
	}
	if cfg.BookingTimeout != 3*time.Second {
		t.Errorf("unexpected booking timeout: %v", cfg.BookingTimeout)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: got %s, want %s", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("BOOKING_TIMEOUT", "soon")
	cfg := Load()
	if cfg.BookingTimeout != 15*time.Second {
		t.Errorf("expected fallback timeout, got %v", cfg.BookingTimeout)
	}
}
