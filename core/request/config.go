package request

import (
	"fmt"
	"net/netip"

	"github.com/dmitrymomot/reqkit/pkg/clientip"
)

// DefaultMaxBodySize is the default limit for request bodies read by LoadBody (4MB).
const DefaultMaxBodySize int64 = 4 << 20

// Config provides environment-based configuration for request construction.
//
// Proxy headers (X-Forwarded-Proto, X-Forwarded-For, Client-IP) are trusted
// unconditionally by default. Any client can forge them, so deployments behind
// a proxy should list the proxy addresses in TrustedProxies, and deployments
// without one should disable TrustProxyHeaders.
type Config struct {
	TrustProxyHeaders bool     `env:"REQUEST_TRUST_PROXY_HEADERS" envDefault:"true"`
	TrustedProxies    []string `env:"REQUEST_TRUSTED_PROXIES" envSeparator:","`
	MaxBodySize       int64    `env:"REQUEST_MAX_BODY_SIZE" envDefault:"4194304"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TrustProxyHeaders: true,
		MaxBodySize:       DefaultMaxBodySize,
	}
}

// Option configures request construction.
type Option func(*settings)

type settings struct {
	trustProxyHeaders bool
	trustedProxies    []string
	maxBodySize       int64
}

func defaultSettings() settings {
	cfg := DefaultConfig()
	return settings{
		trustProxyHeaders: cfg.TrustProxyHeaders,
		maxBodySize:       cfg.MaxBodySize,
	}
}

// WithConfig applies a Config. Only a positive MaxBodySize overrides the default limit.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.trustProxyHeaders = cfg.TrustProxyHeaders
		s.trustedProxies = append(s.trustedProxies[:0:0], cfg.TrustedProxies...)
		if cfg.MaxBodySize > 0 {
			s.maxBodySize = cfg.MaxBodySize
		}
	}
}

// WithTrustedProxies restricts proxy headers to requests whose REMOTE_ADDR
// matches one of the given IPs or CIDR ranges.
func WithTrustedProxies(entries ...string) Option {
	return func(s *settings) {
		s.trustProxyHeaders = true
		s.trustedProxies = append(s.trustedProxies, entries...)
	}
}

// WithoutProxyHeaders ignores proxy headers entirely.
func WithoutProxyHeaders() Option {
	return func(s *settings) {
		s.trustProxyHeaders = false
		s.trustedProxies = nil
	}
}

// WithMaxBodySize sets the limit for bodies read by LoadBody.
func WithMaxBodySize(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// trustPolicy decides whether proxy-supplied server variables are honoured.
type trustPolicy struct {
	enabled bool
	proxies []netip.Prefix
}

func newTrustPolicy(s settings) (trustPolicy, error) {
	if !s.trustProxyHeaders {
		return trustPolicy{}, nil
	}
	proxies, err := clientip.ParseTrusted(s.trustedProxies)
	if err != nil {
		return trustPolicy{}, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}
	return trustPolicy{enabled: true, proxies: proxies}, nil
}

// allows reports whether proxy headers are trusted for a peer address.
// With no configured proxies every peer is trusted.
func (p trustPolicy) allows(remoteAddr string) bool {
	if !p.enabled {
		return false
	}
	if len(p.proxies) == 0 {
		return true
	}
	return clientip.IsTrusted(remoteAddr, p.proxies)
}
