package store

import (
	"sync"

	"github.com/example/sevahub/internal/models"
)

// Store owns the application state: registered users, the single
// authenticated user and the service request ledger. The original keeps
// these as ambient module-level lists; here they live on one explicit
// object handed to the HTTP layer. Every operation is a synchronous
// transformation guarded by the mutex, so callers always observe the
// state left by the previous operation.
type Store struct {
	mu       sync.RWMutex
	users    []*models.User
	authUser *models.User
	requests []*models.ServiceRequest
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Hydrate replaces the store's state with a previously persisted snapshot.
// Derived projections in the snapshot are ignored; they are recomputed on
// demand from the request ledger.
func (s *Store) Hydrate(snap *models.Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	for i := range snap.Users {
		u := snap.Users[i]
		s.users = append(s.users, &u)
	}

	s.authUser = nil
	if snap.AuthUser != nil {
		for _, u := range s.users {
			if u.ID == snap.AuthUser.ID {
				s.authUser = u
				break
			}
		}
	}

	s.requests = nil
	if snap.AppData != nil {
		for i := range snap.AppData.ServiceRequests {
			r := snap.AppData.ServiceRequests[i]
			s.requests = append(s.requests, &r)
		}
	}
}

// Snapshot returns a deep copy of the full state together with every
// derived projection, in the shape the export sink expects.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Users: make([]models.User, 0, len(s.users)),
		AppData: &models.AppData{
			ServiceRequests:         make([]models.ServiceRequest, 0, len(s.requests)),
			IncomingAlerts:          []models.DonorAlert{},
			UpcomingAlerts:          []models.DonorTask{},
			CompletedAlerts:         []models.DonorTask{},
			VolunteerUpcomingTasks:  []models.VolunteerTask{},
			VolunteerCompletedTasks: []models.VolunteerTask{},
		},
	}

	for _, u := range s.users {
		snap.Users = append(snap.Users, *u)
	}
	if s.authUser != nil {
		au := *s.authUser
		snap.AuthUser = &au
	}

	for _, r := range s.requests {
		snap.AppData.ServiceRequests = append(snap.AppData.ServiceRequests, copyRequest(r))

		if r.Service.DonorTrack() {
			if !r.Terminal() {
				snap.AppData.IncomingAlerts = append(snap.AppData.IncomingAlerts, donorAlert(r))
			}
			if r.AcceptedBy != nil && r.AcceptedBy.Role == models.AcceptorDonor {
				if r.Terminal() {
					snap.AppData.CompletedAlerts = append(snap.AppData.CompletedAlerts, donorTask(r, r.AcceptedBy))
				} else {
					snap.AppData.UpcomingAlerts = append(snap.AppData.UpcomingAlerts, donorTask(r, r.AcceptedBy))
				}
			}
		} else {
			if r.AcceptedBy != nil && r.AcceptedBy.Role == models.AcceptorVolunteer {
				if r.Terminal() {
					snap.AppData.VolunteerCompletedTasks = append(snap.AppData.VolunteerCompletedTasks, volunteerTask(r, r.AcceptedBy))
				} else {
					snap.AppData.VolunteerUpcomingTasks = append(snap.AppData.VolunteerUpcomingTasks, volunteerTask(r, r.AcceptedBy))
				}
			}
		}
	}

	return snap
}

// Clear wipes all users, the auth user and the request ledger. Exists for
// testing; there is no soft-delete in the normal flow.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.authUser = nil
	s.requests = nil
}

func copyRequest(r *models.ServiceRequest) models.ServiceRequest {
	out := *r
	out.Acceptances = append([]models.Acceptance(nil), r.Acceptances...)
	if r.AcceptedBy != nil {
		ab := *r.AcceptedBy
		out.AcceptedBy = &ab
	}
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
