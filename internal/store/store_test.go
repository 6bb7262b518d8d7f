package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/example/sevahub/internal/models"
)

func registerUser(t *testing.T, s *Store, name, email string, role models.Role, bloodType string) *models.User {
	t.Helper()
	u, err := s.Register(models.User{
		Name:      name,
		Email:     email,
		Phone:     "9876543210",
		Password:  "secret",
		Role:      role,
		BloodType: bloodType,
	})
	if err != nil {
		t.Fatalf("Register(%s) returned error: %v", email, err)
	}
	return u
}

func submitBloodRequest(t *testing.T, s *Store, requester *models.User, bloodType string) *models.ServiceRequest {
	t.Helper()
	r, err := s.SubmitRequest(models.ServiceRequest{
		RequesterID: requester.ID,
		Name:        requester.Name,
		Phone:       requester.Phone,
		Email:       requester.Email,
		Service:     models.ServiceBlood,
		Date:        "2026-12-01",
		Place:       "City Hospital",
		BloodType:   bloodType,
		Units:       2,
		Hospital:    "City Hospital",
		Urgency:     "High",
	})
	if err != nil {
		t.Fatalf("SubmitRequest returned error: %v", err)
	}
	return r
}

func offerFrom(t *testing.T, s *Store, requestID uuid.UUID, acceptor *models.User) *models.ServiceRequest {
	t.Helper()
	role := models.AcceptorVolunteer
	if acceptor.Role == models.RoleDonor {
		role = models.AcceptorDonor
	}
	r, err := s.Offer(requestID, models.Acceptance{
		AcceptorID: acceptor.ID,
		Name:       acceptor.Name,
		Role:       role,
		Phone:      acceptor.Phone,
		Email:      acceptor.Email,
		BloodType:  acceptor.BloodType,
	})
	if err != nil {
		t.Fatalf("Offer from %s returned error: %v", acceptor.Email, err)
	}
	return r
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := New()
	first := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")

	_, err := s.Register(models.User{Name: "Imposter", Email: "asha@example.com", Phone: "9876543210", Password: "x"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := s.UserByEmail("asha@example.com")
	if err != nil {
		t.Fatalf("UserByEmail returned error: %v", err)
	}
	if got.ID != first.ID || got.Name != "Asha" {
		t.Fatalf("first record was modified: got %+v", got)
	}
}

func TestAuthenticate(t *testing.T) {
	s := New()
	registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")

	t.Run("success", func(t *testing.T) {
		u, err := s.Authenticate("asha@example.com", "secret")
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if u.Email != "asha@example.com" {
			t.Fatalf("unexpected user: %+v", u)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := s.Authenticate("asha@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email same error", func(t *testing.T) {
		if _, err := s.Authenticate("ghost@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	s := New()
	u := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")

	city := "Pune"
	updated, err := s.UpdateProfile(u.ID, ProfilePatch{City: &city})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.City != "Pune" || updated.Name != "Asha" {
		t.Fatalf("patch merged incorrectly: %+v", updated)
	}

	if _, err := s.UpdateProfile(uuid.New(), ProfilePatch{City: &city}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSkills(t *testing.T) {
	s := New()
	u := registerUser(t, s, "Vik", "vik@example.com", models.RoleVolunteer, "")

	if _, err := s.AddSkill(u.ID, "First Aid"); err != nil {
		t.Fatalf("AddSkill returned error: %v", err)
	}
	got, _ := s.AddSkill(u.ID, "First Aid")
	if len(got.Skills) != 1 {
		t.Fatalf("duplicate skill was added: %v", got.Skills)
	}

	got, err := s.RemoveSkill(u.ID, "First Aid")
	if err != nil {
		t.Fatalf("RemoveSkill returned error: %v", err)
	}
	if len(got.Skills) != 0 {
		t.Fatalf("skill not removed: %v", got.Skills)
	}
}

func TestTrackPartition(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")

	blood := submitBloodRequest(t, s, needy, "A+")
	event, err := s.SubmitRequest(models.ServiceRequest{
		RequesterID: needy.ID,
		Name:        needy.Name,
		Phone:       needy.Phone,
		Email:       needy.Email,
		Service:     models.ServiceEvent,
		Date:        "2026-12-01",
		Place:       "Community Hall",
		EventType:   "Charity Drive",
	})
	if err != nil {
		t.Fatalf("SubmitRequest returned error: %v", err)
	}

	donorAlerts := s.DonorAlerts()
	if len(donorAlerts) != 1 || donorAlerts[0].ID != blood.ID {
		t.Fatalf("donor alerts = %+v, want only the blood request", donorAlerts)
	}

	volunteerAlerts := s.VolunteerAlerts()
	if len(volunteerAlerts) != 1 || volunteerAlerts[0].ID != event.ID {
		t.Fatalf("volunteer alerts = %+v, want only the event request", volunteerAlerts)
	}
}

func TestOfferCompatibilityEnforced(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "A+")
	req := submitBloodRequest(t, s, needy, "B+")

	_, err := s.Offer(req.ID, models.Acceptance{
		AcceptorID: donor.ID,
		Name:       donor.Name,
		Role:       models.AcceptorDonor,
		BloodType:  donor.BloodType,
	})
	if !errors.Is(err, ErrIncompatibleBloodType) {
		t.Fatalf("expected ErrIncompatibleBloodType, got %v", err)
	}

	got, _ := s.RequestByID(req.ID)
	if len(got.Acceptances) != 0 {
		t.Fatalf("incompatible offer entered the ledger: %+v", got.Acceptances)
	}
}

func TestOfferDuplicateRejected(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")

	offerFrom(t, s, req.ID, donor)
	_, err := s.Offer(req.ID, models.Acceptance{AcceptorID: donor.ID, Role: models.AcceptorDonor, BloodType: "O-"})
	if !errors.Is(err, ErrDuplicateAcceptance) {
		t.Fatalf("expected ErrDuplicateAcceptance, got %v", err)
	}
}

func TestAcceptOneRejectAnother(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donorX := registerUser(t, s, "Xavi", "xavi@example.com", models.RoleDonor, "O-")
	donorY := registerUser(t, s, "Yana", "yana@example.com", models.RoleDonor, "B+")
	req := submitBloodRequest(t, s, needy, "B+")

	offerFrom(t, s, req.ID, donorX)
	withBoth := offerFrom(t, s, req.ID, donorY)
	if len(withBoth.Acceptances) != 2 {
		t.Fatalf("want 2 acceptances, got %d", len(withBoth.Acceptances))
	}
	offerX := withBoth.Acceptances[0]
	offerY := withBoth.Acceptances[1]

	accepted, err := s.AcceptOffer(req.ID, offerX.ID)
	if err != nil {
		t.Fatalf("AcceptOffer returned error: %v", err)
	}
	if accepted.Status != models.StatusAccepted || !accepted.AcceptedByNeedy {
		t.Fatalf("request not marked accepted: %+v", accepted)
	}
	if accepted.AcceptedBy == nil || accepted.AcceptedBy.AcceptorID != donorX.ID {
		t.Fatalf("acceptedBy = %+v, want donor X", accepted.AcceptedBy)
	}
	if len(accepted.Acceptances) != 2 {
		t.Fatalf("accepting one offer removed others: %+v", accepted.Acceptances)
	}

	afterReject, err := s.RejectOffer(req.ID, offerY.ID, "chose another donor")
	if err != nil {
		t.Fatalf("RejectOffer returned error: %v", err)
	}
	if len(afterReject.Acceptances) != 1 || afterReject.Acceptances[0].ID != offerX.ID {
		t.Fatalf("offer Y not removed: %+v", afterReject.Acceptances)
	}
	if afterReject.AcceptedBy == nil || afterReject.AcceptedBy.AcceptorID != donorX.ID {
		t.Fatalf("selection lost after rejecting another offer: %+v", afterReject.AcceptedBy)
	}
	if !afterReject.RejectedByNeedy || afterReject.RejectionReason != "chose another donor" {
		t.Fatalf("rejection not recorded: %+v", afterReject)
	}
}

func TestRejectSelectedOfferRevertsToPending(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")

	withOffer := offerFrom(t, s, req.ID, donor)
	offerID := withOffer.Acceptances[0].ID

	if _, err := s.AcceptOffer(req.ID, offerID); err != nil {
		t.Fatalf("AcceptOffer returned error: %v", err)
	}

	got, err := s.RejectOffer(req.ID, offerID, "changed plans")
	if err != nil {
		t.Fatalf("RejectOffer returned error: %v", err)
	}
	if got.Status != models.StatusPending || got.AcceptedBy != nil || got.AcceptedByNeedy {
		t.Fatalf("request did not revert to pending: %+v", got)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")
	withOffer := offerFrom(t, s, req.ID, donor)

	if _, err := s.RejectOffer(req.ID, withOffer.Acceptances[0].ID, "  "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestRejectAfterOutcomeRefused(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")
	withOffer := offerFrom(t, s, req.ID, donor)
	acceptanceID := withOffer.Acceptances[0].ID

	if _, err := s.AcceptOffer(req.ID, acceptanceID); err != nil {
		t.Fatalf("AcceptOffer returned error: %v", err)
	}
	if _, err := s.MarkOutcome(req.ID, models.OutcomeSuccess, "all good"); err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}

	if _, err := s.RejectOffer(req.ID, acceptanceID, "changed my mind"); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}

	got, err := s.RequestByID(req.ID)
	if err != nil {
		t.Fatalf("RequestByID returned error: %v", err)
	}
	if got.Status != models.StatusResolved || got.ServiceStatus != models.OutcomeSuccess {
		t.Fatalf("rated request was modified: status=%s serviceStatus=%s", got.Status, got.ServiceStatus)
	}
	if got.AcceptedBy == nil || got.AcceptedBy.AcceptorID != donor.ID {
		t.Fatalf("selected offer was cleared: %+v", got.AcceptedBy)
	}

	_, completed := s.DonorTasks(donor.ID)
	if len(completed) != 1 {
		t.Fatalf("completed tasks = %d, want 1", len(completed))
	}
}

func TestCancelRemovesAllProjections(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	req := submitBloodRequest(t, s, needy, "A+")

	if err := s.Cancel(req.ID, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired for empty reason, got %v", err)
	}

	if err := s.Cancel(req.ID, "no longer needed"); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	if _, err := s.RequestByID(req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancelled request still in ledger")
	}
	if alerts := s.DonorAlerts(); len(alerts) != 0 {
		t.Fatalf("cancelled request still in donor alerts: %+v", alerts)
	}
	if alerts := s.VolunteerAlerts(); len(alerts) != 0 {
		t.Fatalf("cancelled request still in volunteer alerts: %+v", alerts)
	}
	if err := s.Cancel(req.ID, "again"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second cancel, got %v", err)
	}
}

func TestMarkOutcomeRequiresAcceptedOffer(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")
	offerFrom(t, s, req.ID, donor)

	if _, err := s.MarkOutcome(req.ID, models.OutcomeSuccess, ""); !errors.Is(err, ErrNoAcceptedOffer) {
		t.Fatalf("expected ErrNoAcceptedOffer, got %v", err)
	}
}

func TestMarkOutcomeFailure(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	req := submitBloodRequest(t, s, needy, "B+")
	withOffer := offerFrom(t, s, req.ID, donor)

	if _, err := s.AcceptOffer(req.ID, withOffer.Acceptances[0].ID); err != nil {
		t.Fatalf("AcceptOffer returned error: %v", err)
	}

	got, err := s.MarkOutcome(req.ID, models.OutcomeFailure, "no-show")
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if got.ServiceStatus != models.OutcomeFailure || got.ServiceFeedback != "no-show" {
		t.Fatalf("outcome not recorded: %+v", got)
	}
	if got.Status != models.StatusFailed || got.CompletedAt == nil {
		t.Fatalf("terminal status not set: %+v", got)
	}

	if alerts := s.DonorAlerts(); len(alerts) != 0 {
		t.Fatalf("terminal request still in incoming alerts: %+v", alerts)
	}
	upcoming, completed := s.DonorTasks(donor.ID)
	if len(upcoming) != 0 || len(completed) != 1 {
		t.Fatalf("task boards wrong: upcoming=%d completed=%d", len(upcoming), len(completed))
	}
	if completed[0].Status != models.OutcomeFailure {
		t.Fatalf("completed task status = %q, want failure", completed[0].Status)
	}

	if _, err := s.MarkOutcome(req.ID, models.OutcomeSuccess, ""); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed on second rating, got %v", err)
	}
}

func TestBloodRequestEndToEnd(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	donor := registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")

	req, err := s.SubmitRequest(models.ServiceRequest{
		RequesterID: needy.ID,
		Name:        needy.Name,
		Phone:       needy.Phone,
		Email:       needy.Email,
		Service:     models.ServiceBlood,
		BloodType:   "B+",
		Place:       "City Hospital",
		Hospital:    "City Hospital",
		Date:        "2025-12-01",
		Units:       1,
		Urgency:     "High",
	})
	if err != nil {
		t.Fatalf("SubmitRequest returned error: %v", err)
	}

	withOffer := offerFrom(t, s, req.ID, donor)
	if _, err := s.AcceptOffer(req.ID, withOffer.Acceptances[0].ID); err != nil {
		t.Fatalf("AcceptOffer returned error: %v", err)
	}

	final, err := s.MarkOutcome(req.ID, models.OutcomeSuccess, "Thank you")
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if final.Status != models.StatusResolved {
		t.Errorf("status = %q, want Resolved", final.Status)
	}
	if final.ServiceStatus != models.OutcomeSuccess {
		t.Errorf("serviceStatus = %q, want success", final.ServiceStatus)
	}
	if final.ServiceFeedback != "Thank you" {
		t.Errorf("serviceFeedback = %q, want Thank you", final.ServiceFeedback)
	}

	if alerts := s.DonorAlerts(); len(alerts) != 0 {
		t.Errorf("resolved request still in incoming alerts: %+v", alerts)
	}
	_, completed := s.DonorTasks(donor.ID)
	if len(completed) != 1 || completed[0].ID != req.ID {
		t.Errorf("resolved request missing from completed tasks: %+v", completed)
	}

	snap := s.Snapshot()
	if len(snap.AppData.CompletedAlerts) != 1 {
		t.Errorf("snapshot completedAlerts = %+v, want one entry", snap.AppData.CompletedAlerts)
	}
	if len(snap.AppData.IncomingAlerts) != 0 {
		t.Errorf("snapshot incomingAlerts should be empty: %+v", snap.AppData.IncomingAlerts)
	}
}

func TestSnapshotHydrateRoundTrip(t *testing.T) {
	s := New()
	needy := registerUser(t, s, "Asha", "asha@example.com", models.RoleNeedy, "")
	registerUser(t, s, "Dev", "dev@example.com", models.RoleDonor, "O-")
	submitBloodRequest(t, s, needy, "A+")
	if _, err := s.Authenticate("asha@example.com", "secret"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	snap := s.Snapshot()
	// Imported data may carry the legacy Unresolved status; it must survive
	// the round trip untouched.
	legacy := snap.AppData.ServiceRequests[0]
	legacy.ID = uuid.New()
	legacy.Status = models.StatusUnresolved
	snap.AppData.ServiceRequests = append(snap.AppData.ServiceRequests, legacy)

	restored := New()
	restored.Hydrate(&snap)

	if got := restored.Users(); len(got) != 2 {
		t.Fatalf("restored %d users, want 2", len(got))
	}
	if got := restored.Requests(); len(got) != 2 {
		t.Fatalf("restored %d requests, want 2", len(got))
	}
	if got, err := restored.RequestByID(legacy.ID); err != nil || got.Status != models.StatusUnresolved {
		t.Fatalf("legacy request not restored: %+v, %v", got, err)
	}
	restoredSnap := restored.Snapshot()
	if restoredSnap.AuthUser == nil || restoredSnap.AuthUser.Email != "asha@example.com" {
		t.Fatalf("auth user not restored: %+v", restoredSnap.AuthUser)
	}
}
