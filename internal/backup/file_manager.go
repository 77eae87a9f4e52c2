package backup

import (
	"errors"
	"os"

	json "github.com/goccy/go-json"

	"wordgate/internal/backup/interfaces"
	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/storage"
)

const snapshotVersion = 1

// Snapshot is the on-disk backup format: the full card set plus the day
// ledger history and session table, zstd-compressed JSON.
type Snapshot struct {
	Version  int                  `json:"version"`
	Cards    []models.Card        `json:"cards"`
	Counters []models.DayCounters `json:"counters"`
	Sessions []models.GateSession `json:"sessions"`
}

type FileManager struct {
	cards      storage.CardRepositoryInterface
	counters   storage.CountersRepositoryInterface
	sessions   storage.SessionRepositoryInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(
	compressor interfaces.CompressorInterface,
	cards storage.CardRepositoryInterface,
	counters storage.CountersRepositoryInterface,
	sessions storage.SessionRepositoryInterface,
	logger providers.Logger,
) *FileManager {
	return &FileManager{
		cards:      cards,
		counters:   counters,
		sessions:   sessions,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot, err := f.collect()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores entries the database is missing. Existing rows win:
// a backup never overwrites live learning progress.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return err
	}

	restored := 0
	for i := range snapshot.Cards {
		card := snapshot.Cards[i]
		_, err := f.cards.GetByWord(card.Word)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrCardNotFound) {
			return err
		}
		card.ID = 0
		if err := f.cards.Create(&card); err != nil {
			return err
		}
		restored++
	}

	for i := range snapshot.Counters {
		counters := snapshot.Counters[i]
		existing, err := f.counters.GetByKey(counters.DayKey)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := f.counters.Insert(&counters); err != nil {
			return err
		}
	}

	for i := range snapshot.Sessions {
		session := snapshot.Sessions[i]
		existing, err := f.sessions.Get(session.AppID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := f.sessions.Upsert(&session); err != nil {
			return err
		}
	}

	if restored > 0 {
		f.logger.Infof(providers.TypeStore, "Restored %d cards from backup %s", restored, fileName)
	}
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) collect() (*Snapshot, error) {
	cards, err := f.cards.ListAll()
	if err != nil {
		return nil, err
	}
	counters, err := f.counters.ListAll()
	if err != nil {
		return nil, err
	}
	sessions, err := f.sessions.ListAll()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:  snapshotVersion,
		Cards:    cards,
		Counters: counters,
		Sessions: sessions,
	}, nil
}
