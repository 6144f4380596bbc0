package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultMaxBodySize int64 = 1 << 20

var sizeSuffixes = []struct {
	suffix string
	shift  uint
}{{"GB", 30}, {"MB", 20}, {"KB", 10}, {"B", 0}}

// parseSize reads "1MB", "512KB", "64B" or a bare byte count. Anything
// empty, unparsable or not positive gives fallback.
func parseSize(s string, fallback int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	var shift uint
	for _, u := range sizeSuffixes {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			s, shift = strings.TrimSpace(num), u.shift
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n << shift
}

// BodySizeLimit caps request bodies at maxSize. Reads past the cap fail,
// which the login handler reports as an unreadable body.
func BodySizeLimit(maxSize string) Middleware {
	limit := parseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
