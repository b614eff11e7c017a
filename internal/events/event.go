// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"lead_management_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event     = events.Event
	Bus       = events.Bus
	Handler   = events.Handler
	BaseEvent = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the system, whether through
// the intake API or the synthetic generator.
type LeadCreated struct {
	BaseEvent
	DocumentNumber string `json:"documentNumber"`
	BusinessLineID int    `json:"businessLineId"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
	Source         string `json:"source"` // "api" or "simulation"
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// =============================================================================
// Assignment Domain Events
// =============================================================================

// LeadAssigned is published for each lead handed to a seller by a committed
// assignment cycle.
type LeadAssigned struct {
	BaseEvent
	CycleID              uuid.UUID `json:"cycleId"`
	LeadDocumentNumber   string    `json:"leadDocumentNumber"`
	SellerDocumentNumber string    `json:"sellerDocumentNumber"`
	BusinessLineID       int       `json:"businessLineId"`
	AssignedAt           time.Time `json:"assignedAt"`
}

func (e LeadAssigned) EventName() string { return "assignments.lead.assigned" }

// AssignmentCycleCompleted is published after an assignment cycle commits,
// including cycles that exited early with nothing to do.
type AssignmentCycleCompleted struct {
	BaseEvent
	CycleID         uuid.UUID     `json:"cycleId"`
	PendingLeads    int           `json:"pendingLeads"`
	EligibleSellers int           `json:"eligibleSellers"`
	AssignedCount   int           `json:"assignedCount"`
	Duration        time.Duration `json:"duration"`
}

func (e AssignmentCycleCompleted) EventName() string { return "assignments.cycle.completed" }
