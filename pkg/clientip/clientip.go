package clientip

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrInvalidProxy is returned when a trusted proxy entry is neither an IP nor a CIDR.
var ErrInvalidProxy = errors.New("invalid trusted proxy address")

// First returns the leftmost entry of a comma-separated address chain,
// trimmed of surrounding whitespace. Values without a comma are returned as-is.
//
//	First("203.0.113.7, 10.0.0.1") // "203.0.113.7"
func First(chain string) string {
	if i := strings.IndexByte(chain, ','); i >= 0 {
		return strings.TrimSpace(chain[:i])
	}
	return chain
}

// StripPort removes a trailing port from host:port or [ipv6]:port addresses.
// Addresses without a port are returned unchanged.
func StripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ParseTrusted parses IP addresses and CIDR ranges into prefixes.
// A bare IP becomes a single-address prefix. Empty entries are skipped.
func ParseTrusted(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// IsTrusted reports whether addr falls inside one of the trusted prefixes.
// The address may carry a port. Unparseable addresses are never trusted.
func IsTrusted(addr string, trusted []netip.Prefix) bool {
	ip, err := netip.ParseAddr(StripPort(strings.TrimSpace(addr)))
	if err != nil {
		return false
	}
	ip = ip.Unmap()

	for _, p := range trusted {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}
