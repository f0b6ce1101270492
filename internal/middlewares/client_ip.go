package middlewares

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order. The first one holding a parseable address wins.
var proxyHeaders = []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"}

// ClientIPMiddleware rewrites RemoteAddr to the caller's address as reported by the reverse proxy,
// keeping the socket port (or "0" when there is none).
func ClientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if clientIP := ClientIP(r); clientIP != "" {
			port := "0"
			if _, p, err := net.SplitHostPort(r.RemoteAddr); err == nil && p != "" {
				port = p
			}
			r.RemoteAddr = net.JoinHostPort(clientIP, port)
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller's address, preferring proxy headers over the socket peer.
func ClientIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		first, _, _ := strings.Cut(value, ",")
		if parsed := net.ParseIP(strings.TrimSpace(first)); parsed != nil {
			return parsed.String()
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}

	if parsed := net.ParseIP(host); parsed != nil {
		return parsed.String()
	}

	return ""
}
