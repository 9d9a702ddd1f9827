package gateway

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/veyrin/skirmish/internal/errors"
	"github.com/veyrin/skirmish/internal/services/battle"
)

// wsMessage is the envelope for everything sent over a battle socket
type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	msgState  = "state"  // full snapshot on connect
	msgDelta  = "delta"  // broadcast after every applied command
	msgResult = "result" // reply to a command sent on this socket
	msgError  = "error"
)

// wsConn serializes writes; the delta pump and the command reader both
// answer on the same socket.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(m wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(m)
}

// handleWS streams battle deltas to the client and accepts commands inbound.
// The socket closes when the battle ends or the client goes away.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	battleID := mux.Vars(r)["id"]

	b, err := g.manager.GetBattle(r.Context(), battleID)
	if err != nil {
		writeError(w, err)
		return
	}

	deltas, cancel, err := g.manager.Subscribe(battleID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[GATEWAY] websocket upgrade failed for battle %s: %v", battleID, err)
		return
	}
	defer conn.Close()

	ws := &wsConn{conn: conn}

	if err := ws.send(wsMessage{Type: msgState, Data: b.Snapshot()}); err != nil {
		return
	}

	// Pump deltas until the subscription closes, then hang up
	done := make(chan struct{})
	go func() {
		defer close(done)
		for delta := range deltas {
			if err := ws.send(wsMessage{Type: msgDelta, Data: delta}); err != nil {
				return
			}
		}
		ws.mu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle ended"))
		ws.mu.Unlock()
	}()

	for {
		var cmd battle.Command
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		cmd.BattleID = battleID

		result, err := g.manager.Execute(r.Context(), &cmd)
		if err != nil {
			if sendErr := ws.send(wsMessage{Type: msgError, Data: errorBody{
				Code:    string(errors.GetCode(err)),
				Message: err.Error(),
			}}); sendErr != nil {
				break
			}
			continue
		}

		if err := ws.send(wsMessage{Type: msgResult, Data: result}); err != nil {
			break
		}
	}

	// Drain the pump before hanging up. Cancelling closes the delta channel,
	// so the goroutine always finishes.
	cancel()
	<-done
}
