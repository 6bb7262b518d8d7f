package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/config"
	"github.com/example/sevahub/internal/models"
	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/store"
	"github.com/example/sevahub/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	store *store.Store
	sync  *services.SyncService
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(st *store.Store, sync *services.SyncService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, sync: sync, cfg: cfg}
}

type registerRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Password  string   `json:"password"`
	City      string   `json:"city"`
	Pincode   string   `json:"pincode"`
	DOB       string   `json:"dob"`
	Role      string   `json:"role"`
	BloodType string   `json:"bloodType"`
	Skills    []string `json:"volunteerSkills"`
}

// Register creates a new user account for any role.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if !utils.ValidEmail(req.Email) {
		return fiber.NewError(fiber.StatusBadRequest, "please enter a valid email address")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone number must be 10 digits")
	}
	if req.Pincode != "" && !utils.ValidPincode(req.Pincode) {
		return fiber.NewError(fiber.StatusBadRequest, "pincode must be 5 or 6 digits")
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleGeneral
	}
	switch role {
	case models.RoleNeedy, models.RoleVolunteer, models.RoleDonor, models.RoleGeneral:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown role")
	}

	user, err := h.store.Register(models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		City:      req.City,
		Pincode:   req.Pincode,
		DOB:       req.DOB,
		Role:      role,
		BloodType: req.BloodType,
		Skills:    req.Skills,
	})
	if err != nil {
		return storeError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, string(user.Role), h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	h.sync.Publish()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user. The failure message never reveals
// whether the email or the password was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return storeError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, string(user.Role), h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout clears the stored auth user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout()
	h.sync.Publish()
	return c.JSON(fiber.Map{"success": true})
}
