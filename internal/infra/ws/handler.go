package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns an http.HandlerFunc that upgrades the connection and
// bridges it to a hub subscription. A writer goroutine pumps the
// subscriber channel; the read loop only detects disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("Websocket upgrade failed", "error", err)
			return
		}

		sub := h.Subscribe()

		go func() {
			for msg := range sub.Messages() {
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Debug("Websocket write failed", "id", sub.ID, "error", err)
					break
				}
			}
			conn.Close()
		}()

		go func() {
			defer func() {
				h.Unsubscribe(sub)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
