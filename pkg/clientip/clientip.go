package clientip

import (
	"net"
	"net/http"
	"strings"
)

// forwardedHeaders are consulted in order when proxy headers are trusted.
var forwardedHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the client address of r. Proxy headers are consulted only
// when trustForwarded is set; otherwise the TCP peer address is used. An
// empty string means no valid address was found.
func GetIP(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		for _, name := range forwardedHeaders {
			value := r.Header.Get(name)
			if value == "" {
				continue
			}
			// X-Forwarded-For lists the original client first.
			for candidate := range strings.SplitSeq(value, ",") {
				if ip := parseIP(candidate); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
