package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Congress.Number != 119 {
		t.Errorf("Congress.Number = %d, want 119", cfg.Congress.Number)
	}
	if cfg.Congress.RateLimitMS != 300 {
		t.Errorf("RateLimitMS = %d, want 300", cfg.Congress.RateLimitMS)
	}
	if cfg.Congress.CooldownMS != 2000 {
		t.Errorf("CooldownMS = %d, want 2000", cfg.Congress.CooldownMS)
	}
	if cfg.Congress.BaseURL != "https://api.congress.gov/v3" {
		t.Errorf("BaseURL = %q", cfg.Congress.BaseURL)
	}

	if cfg.Scoring.AutoAddThreshold != 40 || cfg.Scoring.ReviewThreshold != 20 {
		t.Errorf("thresholds = %d/%d, want 40/20", cfg.Scoring.AutoAddThreshold, cfg.Scoring.ReviewThreshold)
	}

	if cfg.Dataset.HistoryLimit != 30 {
		t.Errorf("HistoryLimit = %d, want 30", cfg.Dataset.HistoryLimit)
	}
	if cfg.Dataset.TimeZone != "America/New_York" {
		t.Errorf("TimeZone = %q", cfg.Dataset.TimeZone)
	}

	if len(cfg.Discovery.Committees) != 3 {
		t.Fatalf("Committees = %+v, want 3 defaults", cfg.Discovery.Committees)
	}
	if cfg.Discovery.Committees[0].Code != "hsgo10" {
		t.Errorf("first committee = %+v", cfg.Discovery.Committees[0])
	}
	wantTypes := []string{"hr", "s", "hjres", "sjres"}
	if len(cfg.Discovery.BillTypes) != len(wantTypes) {
		t.Fatalf("BillTypes = %v", cfg.Discovery.BillTypes)
	}
	for i, billType := range wantTypes {
		if cfg.Discovery.BillTypes[i] != billType {
			t.Errorf("BillTypes[%d] = %q, want %q", i, cfg.Discovery.BillTypes[i], billType)
		}
	}
	if cfg.Discovery.PageLimit != 250 || cfg.Discovery.MaxOffset != 1000 {
		t.Errorf("paging = %d/%d", cfg.Discovery.PageLimit, cfg.Discovery.MaxOffset)
	}
}

func TestEnvAPIKey(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Congress.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want value from CONGRESS_API_KEY", cfg.Congress.APIKey)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("RequireAPIKey: %v", err)
	}
}

func TestRequireAPIKeyMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireAPIKey()
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("err = %T, want *ConfigError", err)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DCBILLS_CONGRESS_NUMBER", "118")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Congress.Number != 118 {
		t.Errorf("Congress.Number = %d, want env override 118", cfg.Congress.Number)
	}
}
