package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request id in and out of the service.
	HeaderRequestID = "X-Request-ID"

	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-IP"
	bearerPrefix       = "bearer "
)

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// SanitizeRequestID keeps a well-formed incoming id and mints a fresh one otherwise.
func SanitizeRequestID(incoming string) string {
	if requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

func NewRequestID() string {
	return uuid.NewString()
}

// ClientIP returns the originating address: the first X-Forwarded-For hop,
// then X-Real-IP, then the connection's host without its port.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := r.Header.Get(headerForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := strings.TrimSpace(r.Header.Get(headerRealIP)); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// BearerToken returns the credential from an "Authorization: Bearer" header,
// matching the scheme case-insensitively.
func BearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	auth := r.Header.Get("Authorization")
	if len(auth) < len(bearerPrefix) || !strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(bearerPrefix):])
}
