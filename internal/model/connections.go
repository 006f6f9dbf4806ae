package model

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/ws"
)

// Conn is the part of a websocket connection the game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// writes serializes writers, a websocket connection allows only one at a time.
	writes sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// RegisterConnection attaches the owner's websocket and sends it the current state. A newer
// connection replaces an older one.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if !g.IsOwner(playerID) {
		return ErrNotOwner
	}

	g.connections.mu.Lock()
	old, exists := g.connections.connections[playerID]
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	if exists && old != conn {
		log.Printf("game %s: replacing connection for player %s", g.ID, playerID)
		old.Close()
	}

	g.Broadcast()
	return nil
}

// UnregisterConnection removes conn unless it has already been replaced.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()

	return len(g.connections.connections)
}

// Broadcast sends the current state to every connection. Connections that fail are dropped.
func (g *Game) Broadcast() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	g.send(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

// SendError reports a failed request to one player.
func (g *Game) SendError(playerID string, reqErr error) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: reqErr.Error()})
	if err != nil {
		return
	}
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return
	}

	g.connections.writes.Lock()
	defer g.connections.writes.Unlock()
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Printf("game %s: failed to send error to player %s: %v", g.ID, playerID, err)
	}
}

func (g *Game) send(msg ws.Message) {
	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.writes.Lock()
	defer g.connections.writes.Unlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send %s to player %s: %v", g.ID, msg.Type, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}
