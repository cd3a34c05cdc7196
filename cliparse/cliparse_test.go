package cliparse

import (
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "all flags provided",
			args: []string{"-p", "9000", "-d", "postgres://localhost/openvote", "-base-url", "https://vote.example.org"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 9000 {
					t.Errorf("Expected port 9000, got %d", cfg.Port)
				}
				if cfg.DatabaseURL != "postgres://localhost/openvote" {
					t.Errorf("Unexpected database URL: %s", cfg.DatabaseURL)
				}
				if cfg.BaseURL != "https://vote.example.org" {
					t.Errorf("Unexpected base URL: %s", cfg.BaseURL)
				}
			},
		},
		{
			name: "defaults applied",
			args: []string{"-d", "postgres://localhost/openvote"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 8642 {
					t.Errorf("Expected default port 8642, got %d", cfg.Port)
				}
				if cfg.SMTPPort != 587 {
					t.Errorf("Expected default SMTP port 587, got %d", cfg.SMTPPort)
				}
				if cfg.SweepSchedule != "@every 1m" {
					t.Errorf("Expected default sweep schedule, got %s", cfg.SweepSchedule)
				}
				if cfg.MailFrom == "" {
					t.Error("Expected default mail-from address")
				}
			},
		},
		{
			name:    "missing database URL",
			args:    []string{"-p", "9000"},
			wantErr: true,
		},
		{
			name:    "invalid flag",
			args:    []string{"--no-such-flag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep the environment out of flag fallback paths
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("BASE_URL", "")
			t.Setenv("SMTP_HOST", "")
			t.Setenv("SMTP_PORT", "")
			t.Setenv("SWEEP_SCHEDULE", "")

			cfg, err := ParseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("DATABASE_URL", "postgres://env/openvote")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SWEEP_SCHEDULE", "@every 30s")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 7777 {
		t.Errorf("Expected port from env, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://env/openvote" {
		t.Errorf("Expected database URL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.SMTPHost != "smtp.example.org" || cfg.SMTPPort != 2525 {
		t.Errorf("Expected SMTP settings from env, got %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.SweepSchedule != "@every 30s" {
		t.Errorf("Expected sweep schedule from env, got %s", cfg.SweepSchedule)
	}
}
