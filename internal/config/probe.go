package config

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Prober checks whether a base URL answers before suites are pointed at it.
type Prober struct {
	DialTimeout time.Duration
	HTTPTimeout time.Duration
	// Paths are tried in order; any HTTP response counts as reachable.
	Paths  []string
	Logger *zap.Logger
}

// NewProber returns a prober with short timeouts suitable for local stacks.
func NewProber(logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		DialTimeout: 250 * time.Millisecond,
		HTTPTimeout: 800 * time.Millisecond,
		Paths:       []string{"/healthz", "/login", "/"},
		Logger:      logger,
	}
}

// Reachable performs a TCP probe followed by an HTTP probe.
func (p *Prober) Reachable(ctx context.Context, base string) bool {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	d := net.Dialer{Timeout: p.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()

	client := &http.Client{Timeout: p.HTTPTimeout}
	base = strings.TrimRight(base, "/")
	for _, path := range p.Paths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			return true
		}
	}
	return false
}

// Candidates lists fallback base URLs for initial, in probe order, without
// initial itself.
func Candidates(initial string) []string {
	var candidates []string

	u, err := url.Parse(initial)
	if err == nil && u.Host != "" {
		scheme := u.Scheme
		if scheme == "" {
			scheme = "http"
		}
		host := u.Hostname()
		port := u.Port()
		if port == "" {
			port = "8000"
		}
		path := strings.TrimRight(u.Path, "/")
		ports := []string{port, "8000", "8080", "3000"}
		// Compose service names are not resolvable from the host machine.
		if host != "localhost" && host != "127.0.0.1" {
			for _, p := range ports {
				candidates = append(candidates, scheme+"://localhost:"+p+path)
			}
			for _, p := range ports {
				candidates = append(candidates, scheme+"://127.0.0.1:"+p+path)
			}
		} else {
			for _, p := range ports {
				candidates = append(candidates, scheme+"://"+host+":"+p+path)
			}
		}
	}
	candidates = append(candidates, "http://localhost:8000")

	seen := map[string]struct{}{initial: {}}
	uniq := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	return uniq
}

// DetectReachable returns initial when it answers, otherwise the first
// reachable candidate. When nothing answers initial is returned with ok=false.
func (p *Prober) DetectReachable(ctx context.Context, initial string) (string, bool) {
	start := time.Now()
	if p.Reachable(ctx, initial) {
		return initial, true
	}

	tried := []string{initial}
	for _, c := range Candidates(initial) {
		if ctx.Err() != nil {
			break
		}
		tried = append(tried, c)
		if p.Reachable(ctx, c) {
			p.Logger.Info("auto-detect switched base URL",
				zap.String("from", initial),
				zap.String("to", c),
				zap.Duration("elapsed", time.Since(start)),
				zap.Strings("tried", tried))
			return c, true
		}
	}
	p.Logger.Warn("auto-detect kept unreachable base URL",
		zap.String("base_url", initial),
		zap.Strings("tried", tried),
		zap.Duration("elapsed", time.Since(start)))
	return initial, false
}
