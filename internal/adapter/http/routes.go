package http

import "github.com/labstack/echo/v4"

type Routes struct {
	Health      *Handler
	Factors     *FactorHandler
	Simulations *SimulationHandler
	Proposals   *ProposalHandler
	Settings    *SettingsHandler
	Auth        *AuthHandler

	RequireAdmin echo.MiddlewareFunc
	Idempotency  echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)

	api := e.Group("/api")
	api.GET("/factors", r.Factors.List)
	api.GET("/factors/terms", r.Factors.Terms)
	api.GET("/factors/lookup", r.Factors.Lookup)
	api.POST("/simulations", r.Simulations.Simulate)
	api.POST("/proposals", r.Proposals.Create, r.Idempotency)
	api.POST("/proposals/:id/documents", r.Proposals.UploadDocuments)

	api.POST("/admin/login", r.Auth.Login)
	api.POST("/admin/logout", r.Auth.Logout)
	api.GET("/admin/me", r.Auth.Me)

	admin := api.Group("/admin", r.RequireAdmin)
	admin.POST("/factors/import", r.Factors.Import)
	admin.PUT("/factors", r.Factors.Upsert)
	admin.DELETE("/factors/:id", r.Factors.Delete)
	admin.POST("/factors/delete", r.Factors.DeleteMany)

	admin.GET("/proposals", r.Proposals.List)
	admin.GET("/proposals/stats", r.Proposals.Stats)
	admin.GET("/proposals/export", r.Proposals.Export)
	admin.GET("/proposals/:id", r.Proposals.Get)
	admin.PATCH("/proposals/:id/status", r.Proposals.UpdateStatus)

	admin.GET("/settings", r.Settings.List)
	admin.GET("/settings/:key", r.Settings.Get)
	admin.PUT("/settings/:key", r.Settings.Set)
	admin.GET("/storage/status", r.Settings.StorageStatus)
	admin.POST("/storage/test", r.Settings.TestStorage)
}
