package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

type Config struct {
	APIURL             string
	RequestTimeoutSecs int
	WatchIntervalSecs  int

	SSHBind        string
	SSHPort        int
	SSHHostKeyPath string

	TelegramBotToken string
}

const defaultAPIURL = "https://wspr.hb9vqq.ch/api/dx.json"

func Load() *Config {
	cfg := &Config{
		APIURL:           strings.TrimSpace(os.Getenv("DX_API_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	cfg.RequestTimeoutSecs = 10
	if v := strings.TrimSpace(os.Getenv("DX_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSecs = n
		} else {
			log.Warnf("invalid DX_REQUEST_TIMEOUT_SECS=%q, using default", v)
		}
	}

	cfg.WatchIntervalSecs = 60
	if v := strings.TrimSpace(os.Getenv("DX_WATCH_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WatchIntervalSecs = n
		} else {
			log.Warnf("invalid DX_WATCH_INTERVAL_SECS=%q, using default", v)
		}
	}

	cfg.SSHBind = strings.TrimSpace(os.Getenv("DX_SSH_BIND"))
	if cfg.SSHBind == "" {
		cfg.SSHBind = "0.0.0.0"
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("DX_SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		} else {
			log.Warnf("invalid DX_SSH_PORT=%q, using default", v)
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("DX_SSH_HOST_KEY"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/dx_sshd_ed25519"
	}

	return cfg
}
