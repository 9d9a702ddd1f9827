package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/errors"
	"github.com/veyrin/skirmish/internal/services/battle"
)

// Config holds the gateway's collaborators
type Config struct {
	Manager *battle.Manager
}

// Gateway exposes battles over HTTP and WebSocket
type Gateway struct {
	manager  *battle.Manager
	upgrader websocket.Upgrader
}

// New creates a gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil || cfg.Manager == nil {
		return nil, errors.InvalidArgument("battle manager is required")
	}
	return &Gateway{
		manager: cfg.Manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Router builds the route table
func (g *Gateway) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/battles", g.handleCreateBattle).Methods(http.MethodPost)
	r.HandleFunc("/battles/{id}", g.handleGetBattle).Methods(http.MethodGet)
	r.HandleFunc("/battles/{id}/commands", g.handleCommand).Methods(http.MethodPost)
	r.HandleFunc("/ws/battles/{id}", g.handleWS)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateBattleRequest is the POST /battles payload
type CreateBattleRequest struct {
	Units            []*combat.Unit `json:"units"`
	Seed             int64          `json:"seed,omitempty"`
	TurnTimerSeconds int            `json:"turn_timer_seconds,omitempty"`
}

func (g *Gateway) handleCreateBattle(w http.ResponseWriter, r *http.Request) {
	var req CreateBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	delta, err := g.manager.CreateBattle(r.Context(), &battle.CreateBattleInput{
		Units:            req.Units,
		Seed:             req.Seed,
		TurnTimerSeconds: req.TurnTimerSeconds,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, delta)
}

func (g *Gateway) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b, err := g.manager.GetBattle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b.Snapshot())
}

// handleCommand applies one command. Rejections come back as a 200 carrying
// the rejection payload; HTTP errors are reserved for commands that never
// reached the battle.
func (g *Gateway) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd battle.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, errors.InvalidArgument("invalid request body"))
		return
	}
	cmd.BattleID = mux.Vars(r)["id"]

	result, err := g.manager.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorBody{
		Code:    string(errors.GetCode(err)),
		Message: err.Error(),
	})
}

func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument, errors.CodeValidation:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeAlreadyExists, errors.CodeBattleEnded:
		return http.StatusConflict
	case errors.CodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
