package middleware

import (
	"net"
	"net/http"
	"strings"

	"sofadeal/internal/domain"
)

// SessionHeader carries the anonymous shopper session id.
const SessionHeader = "X-Session-ID"

const maxSessionIDLength = 128

// ViewerID identifies the shopper behind a request: the session header when
// present and sane, the client IP otherwise.
func ViewerID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" && len(id) <= maxSessionIDLength && !strings.ContainsAny(id, " :\t") {
		return domain.SessionViewer(id)
	}
	return "ip:" + ClientIP(r)
}

// ClientIP returns the remote address without its port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
