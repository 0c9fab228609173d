package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"gestionale-api/models"
)

const wsWriteTimeout = 5 * time.Second

// Hub tiene traccia dei client WebSocket connessi e invia loro gli eventi
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

// NewHub crea un hub vuoto
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS aperto come per le API REST
			},
		},
	}
}

// Broadcast invia un messaggio a tutti i client WebSocket connessi.
// I client che non rispondono vengono scollegati.
func (h *Hub) Broadcast(messageType string, payload interface{}) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	// Se non ci sono client connessi, non fare nulla
	if len(h.clients) == 0 {
		return
	}

	wsMessage := models.WSMessage{
		Type:    messageType,
		Payload: payload,
	}

	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := client.WriteJSON(wsMessage); err != nil {
			log.Warn().Err(err).Str("remote", client.RemoteAddr().String()).Msg("🔌 Client WebSocket scollegato")
			client.Close()
			delete(h.clients, client)
		}
	}
}

// Count restituisce il numero di client connessi
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWebSocket gestisce le connessioni WebSocket
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("🔌 Upgrade WebSocket fallito")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Cleanup quando la connessione viene chiusa
	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Loop di lettura messaggi: serve solo a rilevare la chiusura
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Close scollega tutti i client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		_ = client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server in arresto"),
			time.Now().Add(time.Second))
		client.Close()
		delete(h.clients, client)
	}
}
