package server

import (
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервера.
// Показания по живым сессиям снимаются без синхронизации с игровым
// циклом, поэтому годятся для глаз, но не для автоматики.
type DebugHandler struct {
	Registry *Registry
}

func NewDebugHandler(r *Registry) *DebugHandler {
	return &DebugHandler{Registry: r}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
}

// /debug/sessions - список активных сессий и их краткое состояние
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	type SessionSummary struct {
		DungeonLevel int  `json:"dungeon_level"`
		PlayerAlive  bool `json:"player_alive"`
		PlayerHP     int  `json:"player_hp"`
		Messages     int  `json:"messages"`
	}

	var summary []SessionSummary
	for _, client := range h.Registry.Snapshot() {
		state := client.Session.State()
		summary = append(summary, SessionSummary{
			DungeonLevel: state.DungeonLevel,
			PlayerAlive:  state.IsPlayerAlive(),
			PlayerHP:     state.PlayerHitPoints().Current,
			Messages:     len(state.MessageLog),
		})
	}

	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
