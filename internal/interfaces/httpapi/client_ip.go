package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var clientIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// resolveClientIP keys write rate limits. The first valid forwarded hop
// wins, then the socket address.
func resolveClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		for _, hop := range strings.Split(r.Header.Get(header), ",") {
			if ip := normalizeIP(hop); ip != "" {
				return ip
			}
		}
	}
	return normalizeIP(r.RemoteAddr)
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}

	addr, err := netip.ParseAddr(strings.Trim(value, "[]"))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
