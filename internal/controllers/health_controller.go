package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"wordgate/internal/gate"
	"wordgate/internal/services"
	"wordgate/internal/storage"
)

type HealthController struct {
	service   services.VocabularyServiceInterface
	sessions  storage.SessionRepositoryInterface
	engine    gate.EngineInterface
	startTime time.Time
}

func NewHealthController(service services.VocabularyServiceInterface, sessions storage.SessionRepositoryInterface, engine gate.EngineInterface) *HealthController {
	return &HealthController{
		service:   service,
		sessions:  sessions,
		engine:    engine,
		startTime: time.Now(),
	}
}

type healthResponse struct {
	Status           string  `json:"status"`
	Uptime           string  `json:"uptime"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	Cards            int     `json:"cards"`
	ActiveSessions   int     `json:"active_sessions"`
	QuarantinedCards int     `json:"quarantined_cards"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	cards, err := hc.service.CountWords()
	if err != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	active, err := hc.sessions.ListActive()
	if err != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:           "ok",
		Uptime:           formatDuration(uptime),
		UptimeSeconds:    uptime.Seconds(),
		Cards:            cards,
		ActiveSessions:   len(active),
		QuarantinedCards: len(hc.engine.QuarantinedCards()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
