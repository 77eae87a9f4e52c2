package internal

import (
	"net/http"

	"wordgate/internal/controllers"
	"wordgate/internal/providers"
)

func InitRoutes(gateController *controllers.GateController, vocabularyController *controllers.VocabularyController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/attempt", http.HandlerFunc(gateController.Attempt))
	routers.Post("/answer", http.HandlerFunc(gateController.Answer))
	routers.Post("/abandon", http.HandlerFunc(gateController.Abandon))
	routers.Post("/lock", http.HandlerFunc(gateController.Lock))
	routers.Get("/counters", http.HandlerFunc(gateController.Counters))

	routers.Get("/words", http.HandlerFunc(vocabularyController.ListWords))
	routers.Post("/words/add", http.HandlerFunc(vocabularyController.AddWord))
	routers.Post("/words/reset", http.HandlerFunc(vocabularyController.ResetScheduling))
	routers.Get("/words/quarantined", http.HandlerFunc(vocabularyController.Quarantined))
	return routers
}
