package service

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/dialogs"
	"github.com/postiq-ai/postiq-bot/cmd/service/handler"
	"github.com/postiq-ai/postiq-bot/cmd/service/middleware"
	"github.com/postiq-ai/postiq-bot/pkg/metrics"
)

func serve(app *core.Core) {
	engine := dialog.NewManager(
		app.Bot(),
		app.Sessions(),
		app.Locker(),
		app.Store().CachedFileStore(),
		app.Cfg().Clients.GenerationTimeout,
	)
	dialogs.RegisterAll(app, engine)

	httpSrv := &handler.HttpSrv{
		Core:     app,
		Engine:   app.HttpEngine(),
		Bot:      engine,
		Dispatch: middleware.UpdatePipeline(app, engine),
	}
	setupHttpRouter(httpSrv)

	app.HttpEngine().Run(app.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.Trace(), middleware.Metric(s.Core), middleware.Log())
	s.Engine.GET("/metrics", metrics.Handler())

	root := s.Engine.Group(s.Core.Cfg().Prefix)

	root.POST("/update", middleware.TelegramSecret(s.Core), s.Update)

	internal := root.Group("", middleware.InterserviceSecret(s.Core))
	{
		internal.POST("/webhook/set", s.SetWebhook)

		internal.POST("/notify/employee-added", s.NotifyEmployeeAdded)
		internal.POST("/notify/vizard-generated", s.NotifyVizardGenerated)
		internal.POST("/notify/publication-approved", s.NotifyPublicationApproved)
		internal.POST("/notify/publication-rejected", s.NotifyPublicationRejected)

		internal.POST("/cache/file", s.CacheFile)

		internal.GET("/table/create", s.CreateTables)
		internal.GET("/table/drop", s.DropTables)
	}
}
