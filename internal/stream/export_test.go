package stream

import "github.com/google/uuid"

// Attach registers a subscriber without a connection and returns a function
// that disconnects it.
func (h *Hub) Attach(siteID uuid.UUID, buffer int) func() {
	c := &client{siteID: siteID, send: make(chan []byte, buffer)}
	h.add(c)
	return func() { h.remove(c) }
}
