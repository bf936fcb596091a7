package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOOK_AHEAD_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port from env, got %q", cfg.Port)
	}
	if cfg.LookAheadDays != 14 {
		t.Fatalf("expected look-ahead 14, got %d", cfg.LookAheadDays)
	}
	if cfg.WorkOrdersTable != "work_orders" || cfg.FetchPageSize != 1000 {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected durations: ttl=%s timeout=%s", cfg.CacheTTL, cfg.RequestTimeout)
	}
	if cfg.ForecastPeriods != 3 || cfg.MetricsNS != "pm" {
		t.Fatalf("unexpected forecast/metrics defaults: %+v", cfg)
	}
}
