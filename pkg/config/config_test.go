// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != "0.0.0.0:8080" {
		t.Errorf("listen addr: got %q", cfg.ListenAddr)
	}
	if got := cfg.PublicAPI.String(); got != "https://api.machines.dev" {
		t.Errorf("public api: got %q", got)
	}
	if got := cfg.PrivateAPI.String(); got != "http://fly-api.internal:4280" {
		t.Errorf("private api: got %q", got)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("request timeout should default to unbounded, got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envListenAddr, "127.0.0.1:9090")
	t.Setenv(envPublicAPIURL, "https://machines.test")
	t.Setenv(envRequestTimeout, "5s")
	t.Setenv(envLogLevel, "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("listen addr: got %q", cfg.ListenAddr)
	}
	if got := cfg.PublicAPI.String(); got != "https://machines.test" {
		t.Errorf("public api: got %q", got)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("request timeout: got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level should be lowered, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv(envPublicAPIURL, "machines.test/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-absolute base URL")
	}
}
