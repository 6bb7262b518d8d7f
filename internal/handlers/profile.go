package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/middleware"
	"github.com/example/sevahub/internal/models"
	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/store"
	"github.com/example/sevahub/internal/utils"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	store *store.Store
	sync  *services.SyncService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(st *store.Store, sync *services.SyncService) *ProfileHandler {
	return &ProfileHandler{store: st, sync: sync}
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.store.UserByID(userID)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
	Pincode   *string `json:"pincode"`
	DOB       *string `json:"dob"`
	Role      *string `json:"role"`
	BloodType *string `json:"bloodType"`
}

// UpdateProfile merges the provided fields into the user record.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone != nil && !utils.ValidPhone(*req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone number must be 10 digits")
	}
	if req.Pincode != nil && !utils.ValidPincode(*req.Pincode) {
		return fiber.NewError(fiber.StatusBadRequest, "pincode must be 5 or 6 digits")
	}

	patch := store.ProfilePatch{
		Name:      req.Name,
		Phone:     req.Phone,
		City:      req.City,
		Pincode:   req.Pincode,
		DOB:       req.DOB,
		BloodType: req.BloodType,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		switch role {
		case models.RoleNeedy, models.RoleVolunteer, models.RoleDonor, models.RoleGeneral:
			patch.Role = &role
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown role")
		}
	}

	user, err := h.store.UpdateProfile(userID, patch)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": user})
}

type skillRequest struct {
	Skill string `json:"skill"`
}

// AddSkill appends a volunteer skill to the profile.
func (h *ProfileHandler) AddSkill(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req skillRequest
	if err := c.BodyParser(&req); err != nil || req.Skill == "" {
		return fiber.NewError(fiber.StatusBadRequest, "skill is required")
	}

	user, err := h.store.AddSkill(userID, req.Skill)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": user})
}

// RemoveSkill deletes a volunteer skill from the profile.
func (h *ProfileHandler) RemoveSkill(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req skillRequest
	if err := c.BodyParser(&req); err != nil || req.Skill == "" {
		return fiber.NewError(fiber.StatusBadRequest, "skill is required")
	}

	user, err := h.store.RemoveSkill(userID, req.Skill)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": user})
}

type donorProfileRequest struct {
	Age                 int      `json:"age"`
	BloodType           string   `json:"bloodType"`
	ChronicDiseases     bool     `json:"chronicDiseases"`
	ChronicDiseasesList []string `json:"chronicDiseasesList"`
	RecentIllness       bool     `json:"recentIllness"`
	RecentIllnessList   []string `json:"recentIllnessList"`
	Vaccinated          bool     `json:"vaccinated"`
	VaccineDays         int      `json:"vaccineDays"`
	SubstanceUse        bool     `json:"substanceUse"`
	SubstanceUseDays    int      `json:"substanceUseDays"`
	GuardianName        string   `json:"guardianName"`
	GuardianRelation    string   `json:"guardianRelationship"`
	GuardianPhone       string   `json:"guardianPhone"`
}

// SetDonorProfile validates the donor questionnaire against the donation
// eligibility thresholds and stores it on the user.
func (h *ProfileHandler) SetDonorProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req donorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.BloodType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "blood type is required")
	}

	age := req.Age
	if age == 0 {
		if user, err := h.store.UserByID(userID); err == nil {
			age = user.Age
		}
	}

	if err := utils.CheckDonorEligibility(utils.DonorEligibility{
		Age:              age,
		Vaccinated:       req.Vaccinated,
		VaccineDays:      req.VaccineDays,
		SubstanceUse:     req.SubstanceUse,
		SubstanceUseDays: req.SubstanceUseDays,
		GuardianName:     req.GuardianName,
		GuardianPhone:    req.GuardianPhone,
	}); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.store.SetDonorProfile(userID, models.DonorProfile{
		BloodType:           req.BloodType,
		ChronicDiseases:     req.ChronicDiseases,
		ChronicDiseasesList: req.ChronicDiseasesList,
		RecentIllness:       req.RecentIllness,
		RecentIllnessList:   req.RecentIllnessList,
		Vaccinated:          req.Vaccinated,
		VaccineDays:         req.VaccineDays,
		SubstanceUse:        req.SubstanceUse,
		SubstanceUseDays:    req.SubstanceUseDays,
		GuardianName:        req.GuardianName,
		GuardianRelation:    req.GuardianRelation,
		GuardianPhone:       req.GuardianPhone,
	})
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": user})
}
