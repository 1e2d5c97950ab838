package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// Edge proxies in front of the API report the caller in these headers, most
// specific first.
var (
	clientIPHeaders      = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}
	clientCountryHeaders = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

func resolveClientIP(_ context.Context, r *http.Request) string {
	for _, header := range clientIPHeaders {
		if ip := normalizeIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}
	return normalizeIP(r.RemoteAddr)
}

// resolveCountryCode returns an ISO 3166 alpha-2 code, or "ZZ" when unknown.
func resolveCountryCode(_ context.Context, r *http.Request) string {
	for _, header := range clientCountryHeaders {
		if code := normalizeCountry(r.Header.Get(header)); code != "" {
			return code
		}
	}
	return "ZZ"
}

func normalizeIP(raw string) string {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	if parsed := net.ParseIP(value); parsed != nil {
		return parsed.String()
	}
	return ""
}

func normalizeCountry(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}
	return code
}
