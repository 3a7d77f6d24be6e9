// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	envListenAddr            = "FLYD_LISTEN_ADDR"
	envPublicAPIURL          = "FLYD_PUBLIC_API_URL"
	envPrivateAPIURL         = "FLYD_PRIVATE_API_URL"
	envRequestTimeout        = "FLYD_REQUEST_TIMEOUT"
	envLogLevel              = "FLYD_LOG_LEVEL"
	envServerReadTimeout     = "FLYD_SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "FLYD_SERVER_WRITE_TIMEOUT"
	envServerIdleTimeout     = "FLYD_SERVER_IDLE_TIMEOUT"
	envGracefulShutdown      = "FLYD_GRACEFUL_SHUTDOWN"
	defaultListenAddr        = "0.0.0.0:8080"
	defaultPublicAPIURL      = "https://api.machines.dev"
	defaultPrivateAPIURL     = "http://fly-api.internal:4280"
	defaultLogLevel          = "info"
	defaultServerIdleTimeout = 120 * time.Second
	defaultGracefulShutdown  = 10 * time.Second
)

// Config captures runtime settings for the proxy.
type Config struct {
	ListenAddr string
	// PublicAPI is the Machines API base reached over the public internet.
	PublicAPI *url.URL
	// PrivateAPI is the Machines API base reached over the Fly private network.
	PrivateAPI *url.URL
	// RequestTimeout bounds outbound calls; zero means the call may block
	// for as long as the upstream takes.
	RequestTimeout          time.Duration
	LogLevel                string
	ServerReadTimeout       time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	GracefulShutdownTimeout time.Duration
}

// Load reads configuration from environment variables. Every value has a
// default matching the production Machines API contract, so an empty
// environment yields a working proxy.
func Load() (Config, error) {
	public, err := getBaseURL(envPublicAPIURL, defaultPublicAPIURL)
	if err != nil {
		return Config{}, err
	}

	private, err := getBaseURL(envPrivateAPIURL, defaultPrivateAPIURL)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:              getString(envListenAddr, defaultListenAddr),
		PublicAPI:               public,
		PrivateAPI:              private,
		RequestTimeout:          getDuration(envRequestTimeout, 0),
		LogLevel:                strings.ToLower(getString(envLogLevel, defaultLogLevel)),
		ServerReadTimeout:       getDuration(envServerReadTimeout, 0),
		ServerWriteTimeout:      getDuration(envServerWriteTimeout, 0),
		ServerIdleTimeout:       getDuration(envServerIdleTimeout, defaultServerIdleTimeout),
		GracefulShutdownTimeout: getDuration(envGracefulShutdown, defaultGracefulShutdown),
	}

	return cfg, nil
}

func getBaseURL(key, fallback string) (*url.URL, error) {
	raw := getString(key, fallback)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%s must be absolute (scheme://host), got %q", key, raw)
	}
	return u, nil
}

func getString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
