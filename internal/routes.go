package internal

import (
	"net/http"
	"tabsleep/internal/controllers"
	"tabsleep/internal/providers"
)

func InitRoutes(messageController *controllers.MessageController, eventController *controllers.EventController, panelController *controllers.PanelController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/message", http.HandlerFunc(messageController.HandleMessage))

	routers.Post("/events/updated", http.HandlerFunc(eventController.Updated))
	routers.Post("/events/activated", http.HandlerFunc(eventController.Activated))
	routers.Post("/events/removed", http.HandlerFunc(eventController.Removed))

	routers.Post("/suspend", http.HandlerFunc(panelController.Suspend))
	routers.Post("/resume", http.HandlerFunc(panelController.Resume))
	routers.Get("/stats", http.HandlerFunc(panelController.GetStats))
	routers.Get("/memory", http.HandlerFunc(panelController.GetMemory))
	routers.Get("/settings", http.HandlerFunc(panelController.GetSettings))
	routers.Post("/settings", http.HandlerFunc(panelController.SaveSettings))
	return routers
}
