// Package clientip parses client address chains set by proxies and decides
// whether an address belongs to a trusted proxy.
//
// Proxies append the address they received a request from to headers such as
// X-Forwarded-For, producing a chain like "client, proxy1, proxy2". First
// extracts the leftmost (original client) entry:
//
//	ip := clientip.First(r.Header.Get("X-Forwarded-For"))
//
// # Trusted Proxies
//
// Forwarding headers are set by whoever talks to the server, so a client can
// forge them. Only honour them when the direct peer is a known proxy:
//
//	trusted, err := clientip.ParseTrusted([]string{"10.0.0.0/8", "192.168.1.10"})
//	if err != nil {
//		return err
//	}
//
//	if clientip.IsTrusted(r.RemoteAddr, trusted) {
//		ip = clientip.First(r.Header.Get("X-Forwarded-For"))
//	}
//
// IPv4-mapped IPv6 addresses are unmapped before matching, so
// ::ffff:10.0.0.1 matches 10.0.0.0/8.
package clientip
