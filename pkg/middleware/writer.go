package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// StatusWriter records the status code written through it. It forwards
// Flush and Hijack so streaming and websocket handlers keep working.
type StatusWriter struct {
	http.ResponseWriter
	Status  int
	written bool
}

// NewStatusWriter wraps w with a default status of 200.
func NewStatusWriter(w http.ResponseWriter) *StatusWriter {
	return &StatusWriter{ResponseWriter: w, Status: http.StatusOK}
}

func (w *StatusWriter) WriteHeader(status int) {
	if !w.written {
		w.Status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

func (w *StatusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *StatusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.Status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *StatusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
