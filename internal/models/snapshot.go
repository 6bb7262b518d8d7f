package models

import (
	"time"

	"github.com/google/uuid"
)

// DonorAlert is the donor-facing projection of a Blood or Organ request.
// It is derived at read time and never stored independently.
type DonorAlert struct {
	ID               uuid.UUID   `json:"id"`
	Service          ServiceKind `json:"requestType"`
	BloodType        string      `json:"bloodType"`
	Units            int         `json:"units"`
	Hospital         string      `json:"hospital"`
	Urgency          string      `json:"urgency"`
	OrganType        string      `json:"organType,omitempty"`
	PatientAge       int         `json:"patientAge,omitempty"`
	RequesterName    string      `json:"requesterName"`
	RequesterContact string      `json:"requesterContact"`
	AcceptedByNeedy  bool        `json:"acceptedByNeedy"`
	RejectedByNeedy  bool        `json:"rejectedByNeedy"`
	RejectionReason  string      `json:"rejectionReason,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// VolunteerAlert is the volunteer-facing projection of an Event Management
// or Social Service request.
type VolunteerAlert struct {
	ID            uuid.UUID   `json:"id"`
	Service       ServiceKind `json:"service"`
	Date          string      `json:"date"`
	Place         string      `json:"place"`
	RequesterName string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	EventType     string      `json:"eventType,omitempty"`
	ServiceType   string      `json:"serviceType,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// DonorTask is a donor's view of a request they have offered to serve.
type DonorTask struct {
	ID          uuid.UUID      `json:"id"`
	BloodType   string         `json:"bloodType"`
	Units       int            `json:"units"`
	Hospital    string         `json:"hospital"`
	Urgency     string         `json:"urgency"`
	AcceptedBy  string         `json:"acceptedBy,omitempty"`
	AcceptedAt  time.Time      `json:"acceptedAt"`
	Status      ServiceOutcome `json:"status,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// VolunteerTask is a volunteer's view of a request they have offered to
// serve.
type VolunteerTask struct {
	ID            uuid.UUID      `json:"id"`
	Service       ServiceKind    `json:"service"`
	Date          string         `json:"date"`
	Place         string         `json:"place"`
	VolunteerName string         `json:"volunteerName"`
	AcceptedBy    string         `json:"acceptedBy,omitempty"`
	AcceptedAt    time.Time      `json:"acceptedAt"`
	Status        ServiceOutcome `json:"status,omitempty"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
}

// AppData bundles the request ledger with every derived projection, in the
// shape the export sink expects.
type AppData struct {
	ServiceRequests         []ServiceRequest `json:"serviceRequests"`
	IncomingAlerts          []DonorAlert     `json:"incomingAlerts"`
	UpcomingAlerts          []DonorTask      `json:"upcomingAlerts"`
	CompletedAlerts         []DonorTask      `json:"completedAlerts"`
	VolunteerUpcomingTasks  []VolunteerTask  `json:"volunteerUpcomingTasks"`
	VolunteerCompletedTasks []VolunteerTask  `json:"volunteerCompletedTasks"`
}

// Snapshot is the full application state pushed to the export sink and
// persisted by the snapshot repository.
type Snapshot struct {
	Users    []User   `json:"users"`
	AuthUser *User    `json:"authUser"`
	AppData  *AppData `json:"appData"`
}
