package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"rogue-server/internal/engine"
	"rogue-server/internal/version"
	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"
)

// Server принимает WebSocket-подключения и поднимает на каждое свою
// игровую сессию: игра одиночная, у каждого клиента свой мир.
type Server struct {
	Config engine.Config
	Saver  engine.Saver

	registry *Registry
}

func New(cfg engine.Config, saver engine.Saver) *Server {
	return &Server{
		Config:   cfg,
		Saver:    saver,
		registry: NewRegistry(),
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/schema", enableCORS(s.handleSchema))

	debugHandler := NewDebugHandler(s.registry)
	debugHandler.RegisterRoutes(mux)

	logger.Log.Infof("🗡️  Rogue server running on %s", s.Config.Addr)
	return http.ListenAndServe(s.Config.Addr, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	session := engine.NewSession(s.Config, s.Saver)
	client := NewClient(session, conn)
	s.registry.Add(client)

	go client.writePump()
	go client.readPump(func() { s.registry.Remove(client) })
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleSchema отдает JSON Schema протокола для генерации клиентов.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.BuildSchemas())
}
