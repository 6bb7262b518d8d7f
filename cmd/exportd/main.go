package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/sevahub/internal/config"
	"github.com/example/sevahub/internal/exporter"
)

func main() {
	cfg := config.Load()

	sink, err := exporter.New(cfg.ExportDir)
	if err != nil {
		log.Fatalf("failed to initialize exporter: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "Seva Hub Export Server",
		BodyLimit: 50 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	sink.Register(app)

	log.Printf("Export server running on :%s, writing to %s", cfg.ExportPort, cfg.ExportDir)
	if err := app.Listen(":" + cfg.ExportPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
