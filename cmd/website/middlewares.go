package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

/*
newRequestLoggerMiddleware logs each request with its duration. Static
asset and image proxy paths are skipped to keep the log readable.
*/
func newRequestLoggerMiddleware(excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			for _, excludedPath := range excludedPaths {
				if strings.HasPrefix(path, excludedPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			next.ServeHTTP(w, r)

			slog.Info("request",
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
