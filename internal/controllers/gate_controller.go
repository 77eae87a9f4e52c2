package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"wordgate/internal/gate"
	"wordgate/internal/models"
	"wordgate/internal/providers"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// GateController is the HTTP face of the gate engine, consumed by the
// OS-level launch interceptor.
type GateController struct {
	logger   providers.Logger
	engine   gate.EngineInterface
	counters gate.DayCounterManagerInterface
}

func NewGateController(logger providers.Logger, engine gate.EngineInterface, counters gate.DayCounterManagerInterface) *GateController {
	return &GateController{logger: logger, engine: engine, counters: counters}
}

type appRequest struct {
	App string `json:"app"`
}

type answerRequest struct {
	App     string `json:"app"`
	Correct bool   `json:"correct"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// writeEngineError maps engine failures onto HTTP statuses. Storage failures
// become 503: the interceptor treats anything but an explicit allow as a
// challenge, so the gate fails closed.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrStorageUnavailable):
		http.Error(w, "Storage Unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrNoReviewPending):
		http.Error(w, "No Review Pending", http.StatusConflict)
	case errors.Is(err, models.ErrSchedulingStateCorrupt):
		http.Error(w, "Scheduling State Corrupt", http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrCardNotFound):
		http.Error(w, "Card Not Found", http.StatusNotFound)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (gc *GateController) Attempt(w http.ResponseWriter, r *http.Request) {
	var payload appRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.App == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	decision, err := gc.engine.OnLaunchAttempt(payload.App, time.Now())
	if err != nil {
		gc.logger.Errorf(providers.TypeGate, "Launch attempt for %s failed: %s", payload.App, err)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (gc *GateController) Answer(w http.ResponseWriter, r *http.Request) {
	var payload answerRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.App == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome := models.OutcomeIncorrect
	if payload.Correct {
		outcome = models.OutcomeCorrect
	}
	decision, err := gc.engine.OnAnswer(payload.App, outcome, time.Now())
	if err != nil {
		gc.logger.Errorf(providers.TypeReview, "Answer for %s failed: %s", payload.App, err)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (gc *GateController) Abandon(w http.ResponseWriter, r *http.Request) {
	var payload appRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := gc.engine.OnAbandon(payload.App); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (gc *GateController) Lock(w http.ResponseWriter, r *http.Request) {
	var payload appRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := gc.engine.ForceLock(payload.App); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (gc *GateController) Counters(w http.ResponseWriter, r *http.Request) {
	counters, err := gc.counters.Current(time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counters)
}
