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
	if cfg.EmailProvider != "stub" {
		t.Errorf("expected default email provider stub, got %s", cfg.EmailProvider)
	}
	if cfg.BusinessStartTime != "09:00" || cfg.BusinessEndTime != "16:00" {
		t.Errorf("unexpected business hours: %s-%s", cfg.BusinessStartTime, cfg.BusinessEndTime)
	}
	if cfg.BusinessTimezone != "Africa/Nairobi" {
		t.Errorf("expected Africa/Nairobi, got %s", cfg.BusinessTimezone)
	}
	if cfg.SlotInterval != 30*time.Minute {
		t.Errorf("expected 30m slot interval, got %s", cfg.SlotInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("EMAIL_TEST_MODE", "true")
	t.Setenv("STAFF_NOTIFICATION_EMAILS", "sales@juaenergy.co.ke, ops@juaenergy.co.ke")
	t.Setenv("SLOT_INTERVAL", "15m")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %s", cfg.EmailProvider)
	}
	if !cfg.EmailTestMode {
		t.Error("expected test mode enabled")
	}
	if len(cfg.StaffEmails) != 2 || cfg.StaffEmails[1] != "ops@juaenergy.co.ke" {
		t.Errorf("unexpected staff emails: %v", cfg.StaffEmails)
	}
	if cfg.SlotInterval != 15*time.Minute {
		t.Errorf("expected 15m interval, got %s", cfg.SlotInterval)
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Errorf("expected 2.5 rps, got %f", cfg.RateLimitPerSecond)
	}
}
