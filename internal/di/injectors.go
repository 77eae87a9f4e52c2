//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"wordgate/internal"
	"wordgate/internal/backup"
	"wordgate/internal/controllers"
	"wordgate/internal/gate"
	"wordgate/internal/providers"
	"wordgate/internal/scheduling"
	"wordgate/internal/services"
	"wordgate/internal/storage"
	"wordgate/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewConnection,
		storage.NewCardRepository,
		storage.NewCountersRepository,
		storage.NewSessionRepository,

		scheduling.NewSM2Scheduler,
		gate.NewPolicy,
		gate.NewDayCounterManager,
		gate.NewGateSessionManager,
		gate.NewReviewOutcomeProcessor,
		gate.NewEngine,
		services.NewVocabularyService,

		backup.NewZstdCompressor,
		backup.NewFileManager,
		backup.NewScheduler,

		controllers.NewGateController,
		controllers.NewVocabularyController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
