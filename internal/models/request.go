package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceKind enumerates the services a needy user can request.
type ServiceKind string

// Supported service kinds. Blood and Organ requests are routed to donors,
// Event Management and Social Service requests to volunteers.
const (
	ServiceBlood  ServiceKind = "Blood"
	ServiceOrgan  ServiceKind = "Organ"
	ServiceEvent  ServiceKind = "Event Management"
	ServiceSocial ServiceKind = "Social Service"
)

// DonorTrack reports whether requests of this kind are shown to donors
// rather than volunteers. The track is fixed for the request's lifetime.
func (k ServiceKind) DonorTrack() bool {
	return k == ServiceBlood || k == ServiceOrgan
}

// Valid reports whether k is one of the four supported kinds.
func (k ServiceKind) Valid() bool {
	switch k {
	case ServiceBlood, ServiceOrgan, ServiceEvent, ServiceSocial:
		return true
	}
	return false
}

// RequestStatus tracks where a request sits in the matching workflow.
type RequestStatus string

// Request lifecycle states. Unresolved is a legacy value that can appear
// in imported data; the workflow itself only ever produces the other four.
const (
	StatusPending    RequestStatus = "Pending"
	StatusAccepted   RequestStatus = "Accepted"
	StatusResolved   RequestStatus = "Resolved"
	StatusUnresolved RequestStatus = "Unresolved"
	StatusFailed     RequestStatus = "Failed"
)

// ServiceOutcome is the needy user's rating of a completed request.
type ServiceOutcome string

// Terminal outcomes.
const (
	OutcomeSuccess ServiceOutcome = "success"
	OutcomeFailure ServiceOutcome = "failure"
)

// AcceptorRole distinguishes who made an offer on a request.
type AcceptorRole string

// Offer roles.
const (
	AcceptorVolunteer AcceptorRole = "Volunteer"
	AcceptorDonor     AcceptorRole = "Donor"
)

// Acceptance is an offer by a volunteer or donor to serve a request.
type Acceptance struct {
	ID         uuid.UUID    `json:"id"`
	AcceptorID uuid.UUID    `json:"acceptorId"`
	Name       string       `json:"name"`
	Role       AcceptorRole `json:"role"`
	Phone      string       `json:"phone"`
	Email      string       `json:"email"`
	BloodType  string       `json:"bloodType,omitempty"`
	AcceptedAt time.Time    `json:"acceptedAt"`
}

// ServiceRequest is a needy user's plea for assistance, together with the
// offers it has accrued and its workflow state.
type ServiceRequest struct {
	BaseModel
	RequesterID uuid.UUID   `gorm:"type:uuid;index" json:"requesterId"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Service     ServiceKind `json:"service"`
	Date        string      `json:"date"`
	Place       string      `json:"place"`

	// Kind-specific fields, zero-valued when not applicable.
	BloodType   string `json:"bloodType,omitempty"`
	Units       int    `json:"units,omitempty"`
	Hospital    string `json:"hospital,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	OrganType   string `json:"organType,omitempty"`
	PatientAge  int    `json:"patientAge,omitempty"`
	EventType   string `json:"eventType,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`

	Status          RequestStatus  `json:"status"`
	Acceptances     []Acceptance   `gorm:"serializer:json" json:"acceptances"`
	AcceptedBy      *Acceptance    `gorm:"serializer:json" json:"acceptedBy,omitempty"`
	AcceptedByNeedy bool           `json:"acceptedByNeedy"`
	RejectedByNeedy bool           `json:"rejectedByNeedy"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ServiceStatus   ServiceOutcome `json:"serviceStatus,omitempty"`
	ServiceFeedback string         `json:"serviceFeedback,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
}

// Terminal reports whether the request has been rated and left the
// active workflow.
func (r *ServiceRequest) Terminal() bool {
	return r.ServiceStatus != ""
}

// AcceptanceByID returns the offer with the given id, or nil.
func (r *ServiceRequest) AcceptanceByID(id uuid.UUID) *Acceptance {
	for i := range r.Acceptances {
		if r.Acceptances[i].ID == id {
			return &r.Acceptances[i]
		}
	}
	return nil
}

// HasOfferFrom reports whether the acceptor already has an offer on r.
func (r *ServiceRequest) HasOfferFrom(acceptorID uuid.UUID) bool {
	for i := range r.Acceptances {
		if r.Acceptances[i].AcceptorID == acceptorID {
			return true
		}
	}
	return false
}
