package services

import (
	"fmt"
	"strings"
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/scheduling/interfaces"
	"wordgate/internal/storage"
)

type VocabularyServiceInterface interface {
	// AddWord creates a card that is immediately eligible as "new". Words
	// are unique case-insensitively; a duplicate fails with
	// models.ErrDuplicateWord.
	AddWord(word, translation string, now time.Time) (*models.Card, error)
	ListWords() ([]models.Card, error)
	CountWords() (int, error)
}

type VocabularyService struct {
	cards     storage.CardRepositoryInterface
	scheduler interfaces.CardSchedulerInterface
	logger    providers.Logger
}

func NewVocabularyService(cards storage.CardRepositoryInterface, scheduler interfaces.CardSchedulerInterface, logger providers.Logger) VocabularyServiceInterface {
	return &VocabularyService{cards: cards, scheduler: scheduler, logger: logger}
}

func (s *VocabularyService) AddWord(word, translation string, now time.Time) (*models.Card, error) {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return nil, fmt.Errorf("word and translation must not be empty")
	}

	state, dueAt := s.scheduler.NewState(now)
	card := &models.Card{
		Word:            word,
		Translation:     translation,
		CreatedAt:       now,
		SchedulingState: state,
		DueAt:           dueAt,
	}
	if err := s.cards.Create(card); err != nil {
		return nil, err
	}
	s.logger.Infof(providers.TypeStore, "Added card %d (%s)", card.ID, card.Word)
	return card, nil
}

func (s *VocabularyService) ListWords() ([]models.Card, error) {
	return s.cards.ListAll()
}

func (s *VocabularyService) CountWords() (int, error) {
	return s.cards.Count()
}
