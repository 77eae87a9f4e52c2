package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"wordgate/internal/gate"
	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/services"
)

type VocabularyController struct {
	logger  providers.Logger
	service services.VocabularyServiceInterface
	engine  gate.EngineInterface
	cache   providers.CacheProviderInterface
}

func NewVocabularyController(logger providers.Logger, service services.VocabularyServiceInterface, engine gate.EngineInterface, cache providers.CacheProviderInterface) *VocabularyController {
	return &VocabularyController{
		logger:  logger,
		service: service,
		engine:  engine,
		cache:   cache,
	}
}

func (vc *VocabularyController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := vc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type addWordRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

func (vc *VocabularyController) AddWord(w http.ResponseWriter, r *http.Request) {
	var payload addWordRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	card, err := vc.service.AddWord(payload.Word, payload.Translation, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrDuplicateWord) {
			http.Error(w, "Word Already Exists", http.StatusConflict)
			return
		}
		if errors.Is(err, models.ErrStorageUnavailable) {
			writeEngineError(w, err)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (vc *VocabularyController) ListWords(w http.ResponseWriter, r *http.Request) {
	vc.serveFromCacheOrCompute(w, "words", func() (any, error) {
		return vc.service.ListWords()
	})
}

type resetSchedulingRequest struct {
	ID int64 `json:"id"`
}

// ResetScheduling is the explicit recovery path for a card whose scheduling
// state was quarantined; it never runs automatically.
func (vc *VocabularyController) ResetScheduling(w http.ResponseWriter, r *http.Request) {
	var payload resetSchedulingRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := vc.engine.ResetScheduling(payload.ID, time.Now()); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (vc *VocabularyController) Quarantined(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, vc.engine.QuarantinedCards())
}
