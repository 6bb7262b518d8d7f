package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/config"
	"github.com/example/sevahub/internal/handlers"
	"github.com/example/sevahub/internal/middleware"
	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, st *store.Store, sync *services.SyncService, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(st, sync, cfg)
	profileHandler := handlers.NewProfileHandler(st, sync)
	requestHandler := handlers.NewRequestHandler(st, sync)
	adminHandler := handlers.NewAdminHandler(st, sync)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Post("/profile/skills", profileHandler.AddSkill)
	protected.Delete("/profile/skills", profileHandler.RemoveSkill)
	protected.Put("/profile/donor", profileHandler.SetDonorProfile)

	protected.Post("/requests", requestHandler.Create)
	protected.Get("/requests", requestHandler.ListMine)
	protected.Get("/requests/:id", requestHandler.Get)
	protected.Delete("/requests/:id", requestHandler.Cancel)
	protected.Post("/requests/:id/acceptances", requestHandler.Offer)
	protected.Post("/requests/:id/acceptances/:acceptanceId/accept", requestHandler.Accept)
	protected.Post("/requests/:id/acceptances/:acceptanceId/reject", requestHandler.Reject)
	protected.Post("/requests/:id/outcome", requestHandler.Outcome)

	protected.Get("/alerts/donor", requestHandler.DonorAlerts)
	protected.Get("/alerts/volunteer", requestHandler.VolunteerAlerts)
	protected.Get("/tasks", requestHandler.Tasks)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg))
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Post("/clear", adminHandler.ClearAll)
}
