package utils

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractParam retrieves a route parameter from the request context with any
// leading dot or trailing slash removed.
func ExtractParam(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	raw := params.ByName(paramName)
	return strings.Trim(strings.TrimSpace(raw), "./")
}

// ParseIntParam parses query[key] as an integer. A missing or empty
// parameter returns fallback.
func ParseIntParam(query url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// ParseListParam returns every value of a repeated query parameter. The
// bool reports whether the parameter was present at all, so "?country="
// (present, empty) can be told apart from no parameter.
func ParseListParam(query url.Values, key string) ([]string, bool) {
	raw, present := query[key]
	if !present {
		return nil, false
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values, true
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
