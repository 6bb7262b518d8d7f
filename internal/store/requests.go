package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/sevahub/internal/models"
)

// SubmitRequest appends a new service request to the ledger. The request's
// track (donor vs volunteer facing) is fixed here by its service kind.
func (s *Store) SubmitRequest(req models.ServiceRequest) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = uuid.New()
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Status = models.StatusPending
	req.Acceptances = []models.Acceptance{}
	req.AcceptedBy = nil
	req.AcceptedByNeedy = false
	req.RejectedByNeedy = false
	req.ServiceStatus = ""
	req.CompletedAt = nil

	s.requests = append(s.requests, &req)
	out := copyRequest(&req)
	return &out, nil
}

// RequestByID returns a copy of the request with the given id.
func (s *Store) RequestByID(id uuid.UUID) (*models.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.findRequest(id)
	if r == nil {
		return nil, ErrNotFound
	}
	out := copyRequest(r)
	return &out, nil
}

// RequestsByRequester returns copies of every request the user submitted.
func (s *Store) RequestsByRequester(requesterID uuid.UUID) []models.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ServiceRequest
	for _, r := range s.requests {
		if r.RequesterID == requesterID {
			out = append(out, copyRequest(r))
		}
	}
	return out
}

// Requests returns copies of the whole ledger.
func (s *Store) Requests() []models.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ServiceRequest, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, copyRequest(r))
	}
	return out
}

// Offer records a volunteer's or donor's acceptance offer on a request.
// The ledger enforces one offer per acceptor per request, and re-validates
// donor blood compatibility on the donor track so an incompatible offer
// can never enter the ledger regardless of what the caller checked.
func (s *Store) Offer(requestID uuid.UUID, offer models.Acceptance) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findRequest(requestID)
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Terminal() {
		return nil, ErrRequestClosed
	}
	if r.HasOfferFrom(offer.AcceptorID) {
		return nil, ErrDuplicateAcceptance
	}
	if r.Service.DonorTrack() && offer.Role == models.AcceptorDonor && r.BloodType != "" {
		if !IsCompatible(offer.BloodType, r.BloodType) {
			return nil, ErrIncompatibleBloodType
		}
	}

	offer.ID = uuid.New()
	offer.AcceptedAt = time.Now()
	r.Acceptances = append(r.Acceptances, offer)
	r.UpdatedAt = time.Now()

	out := copyRequest(r)
	return &out, nil
}

// AcceptOffer promotes one acceptance to the request's confirmed offer.
// The remaining offers stay listed; only one is ever selected.
func (s *Store) AcceptOffer(requestID, acceptanceID uuid.UUID) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findRequest(requestID)
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Terminal() {
		return nil, ErrRequestClosed
	}
	acc := r.AcceptanceByID(acceptanceID)
	if acc == nil {
		return nil, ErrNotFound
	}

	selected := *acc
	r.AcceptedBy = &selected
	r.AcceptedByNeedy = true
	r.Status = models.StatusAccepted
	r.UpdatedAt = time.Now()

	out := copyRequest(r)
	return &out, nil
}

// RejectOffer removes one acceptance from the request. A reason is
// mandatory and recorded on the request. Rejecting the selected offer
// clears it and drops the request back to Pending; rejecting any other
// offer leaves the selection untouched.
func (s *Store) RejectOffer(requestID, acceptanceID uuid.UUID, reason string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findRequest(requestID)
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Terminal() {
		return nil, ErrRequestClosed
	}
	acc := r.AcceptanceByID(acceptanceID)
	if acc == nil {
		return nil, ErrNotFound
	}

	kept := r.Acceptances[:0]
	for _, a := range r.Acceptances {
		if a.ID != acceptanceID {
			kept = append(kept, a)
		}
	}
	r.Acceptances = kept
	r.RejectedByNeedy = true
	r.RejectionReason = reason

	if r.AcceptedBy != nil && r.AcceptedBy.ID == acceptanceID {
		r.AcceptedBy = nil
		r.AcceptedByNeedy = false
		r.Status = models.StatusPending
	}
	r.UpdatedAt = time.Now()

	out := copyRequest(r)
	return &out, nil
}

// Cancel removes the request from the ledger entirely. A reason is
// mandatory. Because every alert and task view is derived from the ledger
// under the same mutex, the request disappears from all projections before
// the next read.
func (s *Store) Cancel(requestID uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.requests {
		if r.ID == requestID {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MarkOutcome records the service outcome on a request that already has a
// confirmed offer, moving it to its terminal status. Feedback is optional
// and stored verbatim.
func (s *Store) MarkOutcome(requestID uuid.UUID, outcome models.ServiceOutcome, feedback string) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findRequest(requestID)
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Terminal() {
		return nil, ErrRequestClosed
	}
	if r.AcceptedBy == nil {
		return nil, ErrNoAcceptedOffer
	}

	r.ServiceStatus = outcome
	r.ServiceFeedback = feedback
	if outcome == models.OutcomeSuccess {
		r.Status = models.StatusResolved
	} else {
		r.Status = models.StatusFailed
	}
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now

	out := copyRequest(r)
	return &out, nil
}

// DonorAlerts projects every active Blood/Organ request into the
// donor-facing alert shape.
func (s *Store) DonorAlerts() []models.DonorAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.DonorAlert{}
	for _, r := range s.requests {
		if r.Service.DonorTrack() && !r.Terminal() {
			out = append(out, donorAlert(r))
		}
	}
	return out
}

// VolunteerAlerts projects every active Event/Social request into the
// volunteer-facing alert shape.
func (s *Store) VolunteerAlerts() []models.VolunteerAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.VolunteerAlert{}
	for _, r := range s.requests {
		if !r.Service.DonorTrack() && !r.Terminal() {
			out = append(out, volunteerAlert(r))
		}
	}
	return out
}

// DonorTasks returns the donor's upcoming and completed task boards.
// Upcoming holds active requests the donor has offered on; completed holds
// terminal requests where the donor's offer was the selected one.
func (s *Store) DonorTasks(donorID uuid.UUID) (upcoming, completed []models.DonorTask) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upcoming = []models.DonorTask{}
	completed = []models.DonorTask{}
	for _, r := range s.requests {
		if !r.Service.DonorTrack() {
			continue
		}
		if r.Terminal() {
			if r.AcceptedBy != nil && r.AcceptedBy.AcceptorID == donorID {
				completed = append(completed, donorTask(r, r.AcceptedBy))
			}
			continue
		}
		for i := range r.Acceptances {
			if r.Acceptances[i].AcceptorID == donorID {
				upcoming = append(upcoming, donorTask(r, &r.Acceptances[i]))
				break
			}
		}
	}
	return upcoming, completed
}

// VolunteerTasks returns the volunteer's upcoming and completed task
// boards, mirroring DonorTasks for the event/social track.
func (s *Store) VolunteerTasks(volunteerID uuid.UUID) (upcoming, completed []models.VolunteerTask) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upcoming = []models.VolunteerTask{}
	completed = []models.VolunteerTask{}
	for _, r := range s.requests {
		if r.Service.DonorTrack() {
			continue
		}
		if r.Terminal() {
			if r.AcceptedBy != nil && r.AcceptedBy.AcceptorID == volunteerID {
				completed = append(completed, volunteerTask(r, r.AcceptedBy))
			}
			continue
		}
		for i := range r.Acceptances {
			if r.Acceptances[i].AcceptorID == volunteerID {
				upcoming = append(upcoming, volunteerTask(r, &r.Acceptances[i]))
				break
			}
		}
	}
	return upcoming, completed
}

func (s *Store) findRequest(id uuid.UUID) *models.ServiceRequest {
	for _, r := range s.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func donorAlert(r *models.ServiceRequest) models.DonorAlert {
	return models.DonorAlert{
		ID:               r.ID,
		Service:          r.Service,
		BloodType:        r.BloodType,
		Units:            r.Units,
		Hospital:         r.Hospital,
		Urgency:          r.Urgency,
		OrganType:        r.OrganType,
		PatientAge:       r.PatientAge,
		RequesterName:    r.Name,
		RequesterContact: r.Phone,
		AcceptedByNeedy:  r.AcceptedByNeedy,
		RejectedByNeedy:  r.RejectedByNeedy,
		RejectionReason:  r.RejectionReason,
		CreatedAt:        r.CreatedAt,
	}
}

func volunteerAlert(r *models.ServiceRequest) models.VolunteerAlert {
	return models.VolunteerAlert{
		ID:            r.ID,
		Service:       r.Service,
		Date:          r.Date,
		Place:         r.Place,
		RequesterName: r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		EventType:     r.EventType,
		ServiceType:   r.ServiceType,
		CreatedAt:     r.CreatedAt,
	}
}

func donorTask(r *models.ServiceRequest, acc *models.Acceptance) models.DonorTask {
	return models.DonorTask{
		ID:          r.ID,
		BloodType:   r.BloodType,
		Units:       r.Units,
		Hospital:    r.Hospital,
		Urgency:     r.Urgency,
		AcceptedBy:  acc.Name,
		AcceptedAt:  acc.AcceptedAt,
		Status:      r.ServiceStatus,
		CompletedAt: r.CompletedAt,
	}
}

func volunteerTask(r *models.ServiceRequest, acc *models.Acceptance) models.VolunteerTask {
	return models.VolunteerTask{
		ID:            r.ID,
		Service:       r.Service,
		Date:          r.Date,
		Place:         r.Place,
		VolunteerName: acc.Name,
		AcceptedBy:    acc.Name,
		AcceptedAt:    acc.AcceptedAt,
		Status:        r.ServiceStatus,
		CompletedAt:   r.CompletedAt,
	}
}
