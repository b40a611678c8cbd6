package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.LeaderboardCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected LeaderboardCacheTTL: %s", cfg.LeaderboardCacheTTL)
	}
	if cfg.PickDeadline != 2*time.Minute {
		t.Fatalf("unexpected PickDeadline: %s", cfg.PickDeadline)
	}
	if cfg.SweepInterval != time.Minute {
		t.Fatalf("unexpected SweepInterval: %s", cfg.SweepInterval)
	}
	if cfg.RecomputeWorkers != 4 {
		t.Fatalf("unexpected RecomputeWorkers: %d", cfg.RecomputeWorkers)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_QStashRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.gridpick.dev")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TOKEN")
	}
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "token-123")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.gridpick.dev")
	t.Setenv("QSTASH_RETRIES", "5")
	t.Setenv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStashEnabled {
		t.Fatalf("expected QStashEnabled=true")
	}
	if cfg.QStashRetries != 5 {
		t.Fatalf("unexpected QStashRetries: %d", cfg.QStashRetries)
	}
	if cfg.QStashCircuitOpenWait != 30*time.Second {
		t.Fatalf("unexpected QStashCircuitOpenWait: %s", cfg.QStashCircuitOpenWait)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DRAFT_PICK_DEADLINE", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid DRAFT_PICK_DEADLINE")
	}
}
