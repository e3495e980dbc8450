//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"tabsleep/internal"
	"tabsleep/internal/browser"
	"tabsleep/internal/controllers"
	"tabsleep/internal/providers"
	"tabsleep/internal/scheduler"
	"tabsleep/internal/services"
	"tabsleep/internal/storage"
	"tabsleep/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		logProvider,
		providers.NewMetricsProvider,
		providers.NewCacheProvider,
		providers.NewMemoryInfoProvider,

		services.NewActivityTracker,
		wire.Bind(new(providers.TabCounter), new(*services.ActivityTracker)),
		wire.Bind(new(services.ActivityTrackerInterface), new(*services.ActivityTracker)),
		wire.Bind(new(services.TabEventHandlerInterface), new(*services.ActivityTracker)),

		compressorProvider,
		storage.NewFileStore,
		browser.NewBridgeClient,
		browser.NewTabService,
		browser.NewNotifier,

		services.NewConfigService,
		services.NewSweepService,
		services.NewMemoryService,
		services.NewPanelService,
		scheduler.NewScheduler,

		controllers.NewMessageController,
		controllers.NewEventController,
		controllers.NewPanelController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
