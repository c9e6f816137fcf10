package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APPVIEW_URL", "CDN_URL", "DB_PATH", "USER_AGENT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("unexpected port %d", cfg.Port)
	}
	if cfg.AppViewURL == "" || cfg.CDNURL == "" || cfg.DBPath == "" {
		t.Fatalf("expected defaults to be applied: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APPVIEW_URL", "https://appview.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected port override, got %d", cfg.Port)
	}
	if cfg.AppViewURL != "https://appview.test" {
		t.Fatalf("expected appview override, got %q", cfg.AppViewURL)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}
