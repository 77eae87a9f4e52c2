package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"wordgate/internal/models"
)

type CountersRepositoryInterface interface {
	// GetLatest returns the record with the highest day key, or nil when the
	// table is empty. Day keys only ever grow, so the latest record is the
	// current one.
	GetLatest() (*models.DayCounters, error)
	GetByKey(dayKey int) (*models.DayCounters, error)
	Insert(counters *models.DayCounters) error
	Update(counters *models.DayCounters) error
	ListAll() ([]models.DayCounters, error)
}

type CountersRepository struct {
	db *sqlx.DB
}

func NewCountersRepository(db *sqlx.DB) CountersRepositoryInterface {
	return &CountersRepository{db: db}
}

func (r *CountersRepository) GetLatest() (*models.DayCounters, error) {
	var counters models.DayCounters
	err := r.db.Get(&counters, "SELECT * FROM day_counters ORDER BY day_key DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get latest day counters", err)
	}
	return &counters, nil
}

func (r *CountersRepository) GetByKey(dayKey int) (*models.DayCounters, error) {
	var counters models.DayCounters
	err := r.db.Get(&counters, "SELECT * FROM day_counters WHERE day_key = $1", dayKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get day counters", err)
	}
	return &counters, nil
}

func (r *CountersRepository) ListAll() ([]models.DayCounters, error) {
	var all []models.DayCounters
	err := r.db.Select(&all, "SELECT * FROM day_counters ORDER BY day_key ASC")
	if err != nil {
		return nil, storageErr("list day counters", err)
	}
	return all, nil
}

func (r *CountersRepository) Insert(counters *models.DayCounters) error {
	_, err := r.db.Exec(`
		INSERT INTO day_counters (day_key, new_shown, review_shown, reviews_since_last_new)
		VALUES ($1, $2, $3, $4)
	`, counters.DayKey, counters.NewShown, counters.ReviewShown, counters.ReviewsSinceLastNew)
	if err != nil {
		return storageErr("insert day counters", err)
	}
	return nil
}

func (r *CountersRepository) Update(counters *models.DayCounters) error {
	_, err := r.db.Exec(`
		UPDATE day_counters SET new_shown = $1, review_shown = $2, reviews_since_last_new = $3
		WHERE day_key = $4
	`, counters.NewShown, counters.ReviewShown, counters.ReviewsSinceLastNew, counters.DayKey)
	if err != nil {
		return storageErr("update day counters", err)
	}
	return nil
}
