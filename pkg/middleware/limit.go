package middleware

import (
	"fmt"
	"net/http"

	"github.com/docker/go-units"
)

// MaxBytes returns middleware that caps request bodies at limit bytes.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ParseSize converts a human-readable size such as "1MB" into bytes.
func ParseSize(size string) (int64, error) {
	n, err := units.FromHumanSize(size)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", size, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive: %s", size)
	}
	return n, nil
}
