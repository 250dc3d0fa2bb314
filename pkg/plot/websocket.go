package plot

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raykavin/chartkit/pkg/logger"
)

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// gestureEvent is the inbound shape for client interaction events
type gestureEvent struct {
	Type    string  `json:"type"`
	Chart   string  `json:"chart"`
	PointID int64   `json:"point_id"`
	DeltaX  float64 `json:"dx"`
	DeltaY  float64 `json:"dy"`
	Factor  float64 `json:"factor"`
}

// WebSocketManager handles WebSocket connections
type WebSocketManager struct {
	sync.RWMutex
	clients       map[*websocket.Conn]string // map of connection to chart name
	upgrader      websocket.Upgrader
	broadcastChan chan WebSocketMessage
	log           logger.Logger
	chart         *Chart
}

// NewWebSocketManager creates a new WebSocket manager
func NewWebSocketManager(log logger.Logger, chart *Chart) *WebSocketManager {
	manager := &WebSocketManager{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		broadcastChan: make(chan WebSocketMessage, 100),
		log:           log,
		chart:         chart,
	}

	go manager.handleBroadcasts()

	return manager
}

// handleBroadcasts processes messages from the broadcast channel
func (m *WebSocketManager) handleBroadcasts() {
	for msg := range m.broadcastChan {
		m.RLock()
		for conn, name := range m.clients {
			// Scope chart-specific messages to subscribed clients
			if payload, ok := msg.Payload.(map[string]any); ok {
				if msgChart, ok := payload["chart"].(string); ok && msgChart != "" && msgChart != name {
					continue
				}
			}

			if err := conn.WriteJSON(msg); err != nil {
				m.log.Error("Error sending WebSocket message: ", err)
				conn.Close()
				// Removal happens in the client handler once the closed
				// connection is detected; the map cannot shrink under a
				// read lock.
			}
		}
		m.RUnlock()
	}
}

// HandleWebSocket handles WebSocket connections
func (m *WebSocketManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("chart")
	if name == "" {
		http.Error(w, "Missing chart parameter", http.StatusBadRequest)
		return
	}

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Error("Failed to upgrade connection to WebSocket: ", err)
		return
	}

	m.Lock()
	m.clients[conn] = name
	clientCount := len(m.clients)
	m.Unlock()

	m.log.Infof("New WebSocket client connected for chart %s, total %d", name, clientCount)

	go m.sendInitialData(conn, name)
	go m.handleClient(conn)
}

// handleClient processes interaction events pushed by a client and
// applies them to the chart's state machine
func (m *WebSocketManager) handleClient(conn *websocket.Conn) {
	defer func() {
		m.Lock()
		delete(m.clients, conn)
		m.log.Info("WebSocket client disconnected, remaining: ", len(m.clients))
		m.Unlock()
		conn.Close()
	}()

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte{}, time.Now().Add(10*time.Second))
	})

	for {
		var event gestureEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.log.Error("WebSocket read error: ", err)
			}
			break
		}

		m.applyGesture(conn, event)
	}
}

// applyGesture routes one client event into the instance controller.
// Unknown event types are ignored; the state machine itself treats
// every transition as total.
func (m *WebSocketManager) applyGesture(conn *websocket.Conn, event gestureEvent) {
	instance, ok := m.chart.Instance(event.Chart)
	if !ok {
		return
	}

	controller := instance.Controller()

	switch event.Type {
	case "enter":
		controller.PointerEnter(event.PointID)
	case "leave":
		controller.PointerLeave(event.PointID)
	case "tap":
		controller.Tap(event.PointID)
	case "pan":
		controller.Pan(event.DeltaX, event.DeltaY)
	case "zoom":
		controller.Zoom(event.Factor)
	case "doubletap":
		controller.DoubleTap()
	case "finish":
		// reduced-motion escape hatch
		instance.Driver().Finish()
	default:
		m.log.Debugf("ignoring unknown gesture %q", event.Type)
		return
	}

	msg := WebSocketMessage{
		Type: "state",
		Payload: map[string]any{
			"chart": event.Chart,
			"state": controller.State(),
		},
	}
	if err := conn.WriteJSON(msg); err != nil {
		m.log.Error("Error sending state update: ", err)
	}
}

// sendInitialData sends the current geometry to a new client
func (m *WebSocketManager) sendInitialData(conn *websocket.Conn, name string) {
	geom, err := m.chart.Frame(name)
	if err != nil {
		m.log.WithError(err).Error("failed to build initial geometry")
		return
	}

	// The chart may be unmounted between Frame and this lookup.
	instance, ok := m.chart.Instance(name)
	if !ok {
		return
	}

	msg := WebSocketMessage{
		Type: "initialData",
		Payload: map[string]any{
			"chart":    name,
			"kind":     instance.Kind,
			"geometry": geom,
			"state":    instance.Controller().State(),
		},
	}

	if err := conn.WriteJSON(msg); err != nil {
		m.log.Error("Error sending initial data: ", err)
	}
}

// BroadcastRefresh tells subscribed clients to re-query geometry after
// a snapshot replacement
func (m *WebSocketManager) BroadcastRefresh(name string) {
	m.broadcastChan <- WebSocketMessage{
		Type: "refresh",
		Payload: map[string]any{
			"chart": name,
		},
	}
}
