package storage

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"wordgate/internal/models"
)

type CardRepositoryInterface interface {
	Create(card *models.Card) error
	GetByID(id int64) (*models.Card, error)
	GetByWord(word string) (*models.Card, error)
	// SelectCandidates returns every card eligible for selection at now:
	// all never-shown cards plus shown cards whose due time has passed,
	// ordered by due time ascending then id ascending.
	SelectCandidates(now time.Time) ([]models.Card, error)
	ListAll() ([]models.Card, error)
	Update(card *models.Card) error
	Count() (int, error)
}

type CardRepository struct {
	db *sqlx.DB
}

func NewCardRepository(db *sqlx.DB) CardRepositoryInterface {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(card *models.Card) error {
	res, err := r.db.Exec(`
		INSERT INTO cards (word, translation, created_at, last_shown_at,
			correct_count, incorrect_count, scheduling_state, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, card.Word, card.Translation, card.CreatedAt, card.LastShownAt,
		card.CorrectCount, card.IncorrectCount, card.SchedulingState, card.DueAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateWord
		}
		return storageErr("create card", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("create card id", err)
	}
	card.ID = id
	return nil
}

func (r *CardRepository) GetByID(id int64) (*models.Card, error) {
	var card models.Card
	err := r.db.Get(&card, "SELECT * FROM cards WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCardNotFound
		}
		return nil, storageErr("get card", err)
	}
	return &card, nil
}

// GetByWord matches case-insensitively; the column collates NOCASE.
func (r *CardRepository) GetByWord(word string) (*models.Card, error) {
	var card models.Card
	err := r.db.Get(&card, "SELECT * FROM cards WHERE word = $1", word)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCardNotFound
		}
		return nil, storageErr("get card by word", err)
	}
	return &card, nil
}

func (r *CardRepository) SelectCandidates(now time.Time) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.Select(&cards, `
		SELECT * FROM cards
		WHERE last_shown_at IS NULL OR due_at <= $1
		ORDER BY due_at ASC, id ASC
	`, now)
	if err != nil {
		return nil, storageErr("select candidates", err)
	}
	return cards, nil
}

func (r *CardRepository) ListAll() ([]models.Card, error) {
	var cards []models.Card
	err := r.db.Select(&cards, "SELECT * FROM cards ORDER BY id ASC")
	if err != nil {
		return nil, storageErr("list cards", err)
	}
	return cards, nil
}

func (r *CardRepository) Update(card *models.Card) error {
	_, err := r.db.Exec(`
		UPDATE cards SET
			word = $1, translation = $2, last_shown_at = $3,
			correct_count = $4, incorrect_count = $5,
			scheduling_state = $6, due_at = $7
		WHERE id = $8
	`, card.Word, card.Translation, card.LastShownAt,
		card.CorrectCount, card.IncorrectCount,
		card.SchedulingState, card.DueAt, card.ID)
	if err != nil {
		return storageErr("update card", err)
	}
	return nil
}

func (r *CardRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, "SELECT COUNT(*) FROM cards"); err != nil {
		return 0, storageErr("count cards", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
