package server

import (
	"crypto/tls"
	"fmt"
	"strings"

	"golang.org/x/crypto/acme/autocert"
)

// AutoCertTLS returns a TLS config that obtains certificates from Let's Encrypt
// for the given domains, caching them in cacheDir.
//
// Challenges are answered with TLS-ALPN-01 on the TLS listener itself, so the
// server must be reachable on port 443. Requests for other hosts fail the
// handshake.
func AutoCertTLS(domains []string, cacheDir string) (*tls.Config, error) {
	hosts := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			hosts = append(hosts, d)
		}
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: no domains", ErrInvalidAutoCert)
	}
	if cacheDir == "" {
		return nil, fmt.Errorf("%w: cache directory is required", ErrInvalidAutoCert)
	}

	m := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(hosts...),
		Cache:      autocert.DirCache(cacheDir),
	}

	cfg := m.TLSConfig()
	cfg.MinVersion = tls.VersionTLS12
	return cfg, nil
}
