package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("CLINIC_TZ", "")
	t.Setenv("WORKDAY_START", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ClinicTimezone != "Europe/Paris" {
		t.Fatalf("expected default clinic timezone, got %s", cfg.ClinicTimezone)
	}
	if cfg.WorkdayStart != "09:00" || cfg.WorkdayEnd != "17:00" {
		t.Fatalf("expected default workday 09:00-17:00, got %s-%s", cfg.WorkdayStart, cfg.WorkdayEnd)
	}
	if cfg.WorksheetRange != "clients_info" {
		t.Fatalf("expected default worksheet range, got %s", cfg.WorksheetRange)
	}
	if cfg.WebhookTimeout != 20*time.Second {
		t.Fatalf("expected default webhook timeout, got %s", cfg.WebhookTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLINIC_TZ", "Europe/Madrid")
	t.Setenv("WORKDAY_START", "08:30")
	t.Setenv("DOCTORS_JSON", `[{"name":"Dr A","calendar_id":"cal-a"}]`)
	t.Setenv("WEBHOOK_BOOK", "https://automation.example.com/book")
	t.Setenv("WEBHOOK_TIMEOUT", "5s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %s", cfg.LogLevel)
	}
	if cfg.ClinicTimezone != "Europe/Madrid" {
		t.Fatalf("expected timezone override, got %s", cfg.ClinicTimezone)
	}
	if cfg.WorkdayStart != "08:30" {
		t.Fatalf("expected workday start override, got %s", cfg.WorkdayStart)
	}
	if cfg.DoctorsJSON == "" {
		t.Fatal("expected doctors json override")
	}
	if cfg.BookWebhookURL != "https://automation.example.com/book" {
		t.Fatalf("expected book webhook override, got %s", cfg.BookWebhookURL)
	}
	if cfg.WebhookTimeout != 5*time.Second {
		t.Fatalf("expected webhook timeout override, got %s", cfg.WebhookTimeout)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("WEBHOOK_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.WebhookTimeout != 20*time.Second {
		t.Fatalf("expected fallback to default timeout, got %s", cfg.WebhookTimeout)
	}
}
