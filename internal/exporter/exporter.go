package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/models"
)

// Export file names, fixed since the first release.
const (
	CSVFileName  = "SevaHub_Data.csv"
	JSONFileName = "SevaHub_Data.json"
)

// Exporter receives state snapshots and mirrors them to CSV and JSON files
// on disk. It performs no validation or conflict resolution: the latest
// snapshot wins, and both files are rewritten on every sync.
type Exporter struct {
	mu          sync.RWMutex
	snap        models.Snapshot
	lastUpdated time.Time
	exportDir   string
}

// filePayload is the JSON file layout: the snapshot plus the sync time.
type filePayload struct {
	Users       []models.User   `json:"users"`
	AuthUser    *models.User    `json:"authUser"`
	AppData     *models.AppData `json:"appData"`
	LastUpdated string          `json:"lastUpdated"`
}

// New creates an Exporter writing into exportDir, creating it if needed.
func New(exportDir string) (*Exporter, error) {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Exporter{exportDir: exportDir}, nil
}

// Register wires the export sink routes onto the app.
func (e *Exporter) Register(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/sync-data", e.HandleSync)
	api.Get("/export/csv", e.HandleCSV)
	api.Get("/export/json", e.HandleJSON)
	api.Get("/export/files", e.HandleFiles)
	api.Get("/health", e.HandleHealth)
}

// HandleSync accepts a snapshot and immediately rewrites both export files.
func (e *Exporter) HandleSync(c *fiber.Ctx) error {
	var snap models.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.snap = snap
	e.lastUpdated = time.Now()

	if err := e.writeFiles(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Data synced successfully",
		"lastUpdated": e.lastUpdated.UTC().Format(time.RFC3339),
	})
}

// HandleCSV serves the latest CSV export as a file attachment.
func (e *Exporter) HandleCSV(c *fiber.Ctx) error {
	return e.serveFile(c, CSVFileName, "text/csv")
}

// HandleJSON serves the latest JSON export as a file attachment.
func (e *Exporter) HandleJSON(c *fiber.Ctx) error {
	return e.serveFile(c, JSONFileName, "application/json")
}

// HandleFiles lists the export directory contents.
func (e *Exporter) HandleFiles(c *fiber.Ctx) error {
	entries, err := os.ReadDir(e.exportDir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	files := []fiber.Map{}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fiber.Map{
			"name":         entry.Name(),
			"size":         info.Size(),
			"lastModified": info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{"files": files})
}

// HandleHealth reports sink status and the last sync time.
func (e *Exporter) HandleHealth(c *fiber.Ctx) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var last interface{}
	if !e.lastUpdated.IsZero() {
		last = e.lastUpdated.UTC().Format(time.RFC3339)
	}

	return c.JSON(fiber.Map{
		"status":         "ok",
		"lastDataUpdate": last,
		"exportDir":      e.exportDir,
	})
}

func (e *Exporter) serveFile(c *fiber.Ctx, name, contentType string) error {
	path := filepath.Join(e.exportDir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No data available yet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(content)
}

// writeFiles rewrites both export files from the held snapshot. Caller
// must hold the write lock.
func (e *Exporter) writeFiles() error {
	csvContent := BuildCSV(e.snap)
	if err := os.WriteFile(filepath.Join(e.exportDir, CSVFileName), []byte(csvContent), 0o644); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	payload := filePayload{
		Users:       e.snap.Users,
		AuthUser:    e.snap.AuthUser,
		AppData:     e.snap.AppData,
		LastUpdated: e.lastUpdated.UTC().Format(time.RFC3339),
	}
	jsonContent, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(e.exportDir, JSONFileName), jsonContent, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
