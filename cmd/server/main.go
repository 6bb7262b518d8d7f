package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/sevahub/internal/config"
	"github.com/example/sevahub/internal/routes"
	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/storage"
	"github.com/example/sevahub/internal/store"
)

func main() {
	cfg := config.Load()

	repo, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	st := store.New()
	snap, err := repo.Load()
	if err != nil {
		log.Fatalf("failed to load snapshot: %v", err)
	}
	st.Hydrate(snap)
	log.Printf("Loaded %d users and %d requests from %s storage",
		len(snap.Users), len(snap.AppData.ServiceRequests), cfg.StorageDriver)

	sync := services.NewSyncService(st, repo, cfg.SyncURL)

	app := fiber.New(fiber.Config{
		AppName: "Seva Hub Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, st, sync, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
