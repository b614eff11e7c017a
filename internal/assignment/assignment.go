// Package assignment provides the lead assignment bounded context.
// This file defines the public API of the assignment module.
// Only types and interfaces defined here should be imported by other domains.
package assignment

import (
	"context"

	"github.com/google/uuid"
)

// Canonical assignment status names. The registry matches them
// case-insensitively, so these are display spellings, not keys.
const (
	StatusPending    = "Pending"
	StatusAssigned   = "Assigned"
	StatusInProgress = "In Progress"
)

// WorkloadStatuses are the statuses that count against a seller's capacity.
func WorkloadStatuses() []string {
	return []string{StatusAssigned, StatusInProgress}
}

// CycleResult summarizes one committed assignment cycle.
type CycleResult struct {
	CycleID         uuid.UUID
	PendingLeads    int
	EligibleSellers int
	AssignedCount   int
}

// CycleRunner is the public interface for triggering assignment cycles.
// The scheduler and the simulator depend on this, not on the service struct.
type CycleRunner interface {
	RunCycle(ctx context.Context) (CycleResult, error)
}
