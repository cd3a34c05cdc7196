package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	BaseURL     string

	// SMTP delivery. If SMTPHost is empty, notification emails are
	// written to the log instead of being delivered.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// SweepSchedule is a cron expression for the notification sweep.
	SweepSchedule string
}

// ParseFlags validates flags and fills in defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("openvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in notification emails")

	// Mail settings (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SMTPHost, "smtp-host", "", "SMTP host (empty = log-only mail)")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", 0, "SMTP port")
	fs.StringVar(&cfg.SMTPUsername, "smtp-user", "", "SMTP username (prefer env)")
	fs.StringVar(&cfg.SMTPPassword, "smtp-pass", "", "SMTP password (prefer env)")
	fs.StringVar(&cfg.MailFrom, "mail-from", "", "From address for notification emails")

	fs.StringVar(&cfg.SweepSchedule, "sweep", "", "Cron schedule for the notification sweep")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8642 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}

	if cfg.SMTPHost == "" {
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
	}
	if cfg.SMTPPort == 0 {
		if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid SMTP_PORT env variable")
			}
			cfg.SMTPPort = port
		} else {
			cfg.SMTPPort = 587
		}
	}
	if cfg.SMTPUsername == "" {
		cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	}
	if cfg.SMTPPassword == "" {
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = os.Getenv("MAIL_FROM")
		if cfg.MailFrom == "" {
			cfg.MailFrom = "noreply@openvote.local"
		}
	}

	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = os.Getenv("SWEEP_SCHEDULE")
		if cfg.SweepSchedule == "" {
			cfg.SweepSchedule = "@every 1m"
		}
	}

	return cfg, nil
}
