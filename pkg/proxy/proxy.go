// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-core-stack/flyd-proxy/pkg/auth"
	"github.com/go-core-stack/flyd-proxy/pkg/config"
	"github.com/go-core-stack/flyd-proxy/pkg/metrics"
)

// Proxy translates local machine requests into Machines API calls and
// relays the responses.
type Proxy struct {
	// cfg keeps runtime knobs such as the two upstream base URLs.
	cfg config.Config
	// client performs outbound HTTP requests. Constructed once and shared
	// by every in-flight handler; never recreated per request.
	client *http.Client
	// logger emits structured logs for observability.
	logger zerolog.Logger
}

// New constructs a Proxy backed by an http.Client configured with sensible
// connection pooling defaults and the provided runtime configuration.
func New(cfg config.Config) *Proxy {
	// Build a transport that honours system proxies and keeps connections warm.
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := &http.Client{
		// Zero by default: an upstream call blocks for as long as the
		// Machines API takes to answer.
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
	}

	return &Proxy{
		cfg:    cfg,
		client: client,
		logger: log.With().Str("component", "proxy").Logger(),
	}
}

// Handler builds the inbound routing surface.
func (p *Proxy) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(p.accessLog)

	r.HandleFunc("/", p.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", p.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v0/machines/new", p.handleCreateMachine).Methods(http.MethodPost)
	r.HandleFunc("/v0/machines/list", p.handleListMachines).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

func (p *Proxy) handleIndex(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "flyd!")
}

func (p *Proxy) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "YES!")
}

func (p *Proxy) handleCreateMachine(w http.ResponseWriter, r *http.Request) {
	cred, err := auth.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	req, err := parseCreateRequest(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target, err := createTarget(p.baseURL(req.UsePrivateAPI), req.AppName)
	if err != nil {
		http.Error(w, "Failed to parse URL: "+err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(req.Config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	p.forward(w, r, http.MethodPost, target, cred, bytes.NewReader(body))
}

func (p *Proxy) handleListMachines(w http.ResponseWriter, r *http.Request) {
	cred, err := auth.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	req, err := parseListRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target, err := listTarget(p.baseURL(req.UsePrivateAPI), req)
	if err != nil {
		http.Error(w, "Failed to parse URL: "+err.Error(), http.StatusInternalServerError)
		return
	}

	p.forward(w, r, http.MethodGet, target, cred, nil)
}

// baseURL selects the upstream host variant. A binary choice: the private
// network address when requested, the public address otherwise.
func (p *Proxy) baseURL(usePrivate bool) *url.URL {
	if usePrivate {
		return p.cfg.PrivateAPI
	}
	return p.cfg.PublicAPI
}

// forward executes the translated request against the upstream and relays
// the JSON response. The upstream status code is recorded for operators but
// deliberately not relayed: callers always receive 200 with whatever JSON
// the upstream produced, errors included.
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, method string, target *url.URL, cred auth.Credential, body io.Reader) {
	upstreamReq, err := http.NewRequestWithContext(r.Context(), method, target.String(), body)
	if err != nil {
		http.Error(w, "Failed to parse URL: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := cred.Attach(upstreamReq.Header); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	upstreamReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(upstreamReq)
	if err != nil {
		http.Error(w, "API request failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Error().Err(closeErr).Msg("close upstream response body failed")
		}
	}()

	metrics.UpstreamDuration.
		WithLabelValues(target.Host, strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		http.Error(w, "Failed to read response body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if resp.StatusCode >= http.StatusBadRequest {
		p.logger.Warn().
			Int("upstream_status", resp.StatusCode).
			Str("url", target.String()).
			Msg("upstream returned error status")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		p.logger.Error().Err(err).Msg("write response failed")
	}
}

// accessLog wraps handlers with per-request structured logging and request
// counting, replacing the runtime's built-in access logging.
func (p *Proxy) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		p.logger.Info().
			Str("request_id", uuid.NewString()).
			Str("remote_addr", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")

		metrics.RequestsTotal.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).
			Inc()
	})
}

// statusRecorder captures the status a handler wrote so it can be logged.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
