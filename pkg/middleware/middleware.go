// Package middleware provides composable HTTP middleware: request logging, CORS,
// trailing-slash normalization, body size limits, and panic recovery.
package middleware

import "net/http"

// System is an ordered middleware stack.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type middleware struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware stack.
func New() System {
	return &middleware{
		stack: make([]func(http.Handler) http.Handler, 0),
	}
}

// Use appends mw. The first middleware added runs first.
func (m *middleware) Use(mw func(http.Handler) http.Handler) {
	m.stack = append(m.stack, mw)
}

func (m *middleware) Apply(handler http.Handler) http.Handler {
	for i := len(m.stack) - 1; i >= 0; i-- {
		handler = m.stack[i](handler)
	}
	return handler
}
