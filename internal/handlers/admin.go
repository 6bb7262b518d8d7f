package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/store"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	store *store.Store
	sync  *services.SyncService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(st *store.Store, sync *services.SyncService) *AdminHandler {
	return &AdminHandler{store: st, sync: sync}
}

// DashboardStats returns aggregate statistics over users and requests.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	users := h.store.Users()
	requests := h.store.Requests()

	usersByRole := make(map[string]int)
	for _, u := range users {
		usersByRole[string(u.Role)]++
	}

	requestsByStatus := make(map[string]int)
	requestsByService := make(map[string]int)
	totalOffers := 0
	for _, r := range requests {
		requestsByStatus[string(r.Status)]++
		requestsByService[string(r.Service)]++
		totalOffers += len(r.Acceptances)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":         len(users),
			"users_by_role":       usersByRole,
			"total_requests":      len(requests),
			"requests_by_status":  requestsByStatus,
			"requests_by_service": requestsByService,
			"total_acceptances":   totalOffers,
		},
	})
}

// ClearAll wipes every user and request. Exists for testing; the normal
// flow never hard-deletes users.
func (h *AdminHandler) ClearAll(c *fiber.Ctx) error {
	h.store.Clear()
	h.sync.Publish()
	return c.JSON(fiber.Map{"success": true, "message": "all data cleared"})
}
