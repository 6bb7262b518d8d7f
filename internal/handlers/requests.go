package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/sevahub/internal/middleware"
	"github.com/example/sevahub/internal/models"
	"github.com/example/sevahub/internal/services"
	"github.com/example/sevahub/internal/store"
	"github.com/example/sevahub/internal/utils"
)

// RequestHandler manages the service request workflow endpoints.
type RequestHandler struct {
	store *store.Store
	sync  *services.SyncService
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(st *store.Store, sync *services.SyncService) *RequestHandler {
	return &RequestHandler{store: st, sync: sync}
}

type createRequestRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Place       string `json:"place"`
	BloodType   string `json:"bloodType"`
	Units       int    `json:"units"`
	Hospital    string `json:"hospital"`
	Urgency     string `json:"urgency"`
	OrganType   string `json:"organType"`
	PatientAge  int    `json:"patientAge"`
	EventType   string `json:"eventType"`
	ServiceType string `json:"serviceType"`
}

// Create submits a new service request on behalf of the authenticated
// needy user.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Service == "" || req.Date == "" || req.Place == "" {
		return fiber.NewError(fiber.StatusBadRequest, "please fill in all fields")
	}
	if !utils.ValidEmail(req.Email) {
		return fiber.NewError(fiber.StatusBadRequest, "please enter a valid email address")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone number must be 10 digits")
	}
	if !utils.FutureDate(req.Date) {
		return fiber.NewError(fiber.StatusBadRequest, "please select a future date")
	}

	kind := models.ServiceKind(req.Service)
	if !kind.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown service kind")
	}
	if kind == models.ServiceBlood && req.BloodType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "blood type is required for blood requests")
	}
	if kind == models.ServiceOrgan && req.OrganType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "organ type is required for organ requests")
	}

	units := req.Units
	if kind == models.ServiceBlood && units == 0 {
		units = 1
	}

	request, err := h.store.SubmitRequest(models.ServiceRequest{
		RequesterID: userID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Service:     kind,
		Date:        req.Date,
		Place:       req.Place,
		BloodType:   req.BloodType,
		Units:       units,
		Hospital:    req.Hospital,
		Urgency:     req.Urgency,
		OrganType:   req.OrganType,
		PatientAge:  req.PatientAge,
		EventType:   req.EventType,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": request})
}

// ListMine returns the authenticated user's own requests.
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.RequestsByRequester(userID)})
}

// Get returns a single request by id.
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.store.RequestByID(id)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": request})
}

// DonorAlerts returns the donor-facing alert feed. Alerts the viewer has
// already offered on are hidden, and when the viewer's blood type is known
// only compatible blood/organ alerts are shown.
func (h *RequestHandler) DonorAlerts(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	viewer, err := h.store.UserByID(userID)
	if err != nil {
		return storeError(err)
	}

	alerts := []models.DonorAlert{}
	for _, alert := range h.store.DonorAlerts() {
		if request, err := h.store.RequestByID(alert.ID); err == nil && request.HasOfferFrom(userID) {
			continue
		}
		if viewer.BloodType != "" && alert.BloodType != "" && !store.IsCompatible(viewer.BloodType, alert.BloodType) {
			continue
		}
		alerts = append(alerts, alert)
	}

	return c.JSON(fiber.Map{"success": true, "data": alerts})
}

// VolunteerAlerts returns the volunteer-facing alert feed, hiding requests
// the viewer has already offered on.
func (h *RequestHandler) VolunteerAlerts(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	alerts := []models.VolunteerAlert{}
	for _, alert := range h.store.VolunteerAlerts() {
		if request, err := h.store.RequestByID(alert.ID); err == nil && request.HasOfferFrom(userID) {
			continue
		}
		alerts = append(alerts, alert)
	}

	return c.JSON(fiber.Map{"success": true, "data": alerts})
}

// Offer records the authenticated volunteer's or donor's acceptance offer
// on a request.
func (h *RequestHandler) Offer(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	acceptor, err := h.store.UserByID(userID)
	if err != nil {
		return storeError(err)
	}

	role := models.AcceptorVolunteer
	if acceptor.Role == models.RoleDonor {
		role = models.AcceptorDonor
	}

	request, err := h.store.Offer(requestID, models.Acceptance{
		AcceptorID: acceptor.ID,
		Name:       acceptor.Name,
		Role:       role,
		Phone:      acceptor.Phone,
		Email:      acceptor.Email,
		BloodType:  acceptor.BloodType,
	})
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": request})
}

// Accept lets the requester promote one offer to the confirmed acceptance.
func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	request, acceptanceID, err := h.requesterAndOffer(c)
	if err != nil {
		return err
	}

	updated, err := h.store.AcceptOffer(request.ID, acceptanceID)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject lets the requester remove one offer, recording the mandatory
// reason on the request.
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	request, acceptanceID, err := h.requesterAndOffer(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.store.RejectOffer(request.ID, acceptanceID, req.Reason)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Cancel pulls the request down entirely, removing it from every alert and
// task view. A reason is mandatory.
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.store.RequestByID(requestID)
	if err != nil {
		return storeError(err)
	}
	if request.RequesterID != userID {
		return fiber.NewError(fiber.StatusForbidden, "only the requester may cancel a request")
	}

	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.Cancel(requestID, req.Reason); err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "message": "request cancelled"})
}

type outcomeRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

// Outcome records the service result on a request with a confirmed offer.
// The requester rates the outcome; the selected acceptor may also mark it
// from their task board.
func (h *RequestHandler) Outcome(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	var req outcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	outcome := models.ServiceOutcome(req.Status)
	if outcome != models.OutcomeSuccess && outcome != models.OutcomeFailure {
		return fiber.NewError(fiber.StatusBadRequest, "status must be success or failure")
	}

	request, err := h.store.RequestByID(requestID)
	if err != nil {
		return storeError(err)
	}
	allowed := request.RequesterID == userID ||
		(request.AcceptedBy != nil && request.AcceptedBy.AcceptorID == userID)
	if !allowed {
		return fiber.NewError(fiber.StatusForbidden, "only the requester or the accepted helper may rate this request")
	}

	updated, err := h.store.MarkOutcome(requestID, outcome, req.Feedback)
	if err != nil {
		return storeError(err)
	}

	h.sync.Publish()

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Tasks returns the authenticated helper's upcoming and completed boards,
// donor or volunteer shaped depending on their role.
func (h *RequestHandler) Tasks(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if middleware.GetCurrentUserRole(c) == string(models.RoleDonor) {
		upcoming, completed := h.store.DonorTasks(userID)
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
			"upcoming":  upcoming,
			"completed": completed,
		}})
	}

	upcoming, completed := h.store.VolunteerTasks(userID)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"upcoming":  upcoming,
		"completed": completed,
	}})
}

// requesterAndOffer parses the route ids and verifies the caller owns the
// request.
func (h *RequestHandler) requesterAndOffer(c *fiber.Ctx) (*models.ServiceRequest, uuid.UUID, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}
	acceptanceID, err := uuid.Parse(c.Params("acceptanceId"))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid acceptance id")
	}

	request, err := h.store.RequestByID(requestID)
	if err != nil {
		return nil, uuid.Nil, storeError(err)
	}
	if request.RequesterID != userID {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusForbidden, "only the requester may manage offers")
	}

	return request, acceptanceID, nil
}
