package backup

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"wordgate/internal/backup/interfaces"
	"wordgate/internal/providers"
	"wordgate/internal/structures"
)

// Scheduler runs the periodic backup job and the restore/persist hooks the
// app calls at startup and shutdown.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	cron        *gocron.Scheduler
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gocron.NewScheduler(time.Local)

	_, err := s.cron.Every(s.config.Backup.SaveInterval).Do(func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.fileManager.SaveToFile(s.config.Backup.FilePath); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Backup written to %s", s.config.Backup.FilePath)
	})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to schedule backup job: %s", err)
		return
	}

	s.cron.StartAsync()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Backup.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Writing final backup...")
	if err := s.fileManager.SaveToFile(s.config.Backup.FilePath); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
	}
}
