package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS applies cross-origin policy from cfg. It is a no-op when disabled or when
// no origins are configured.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled || len(cfg.Origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
