// Package engine implements the matching pass of an assignment cycle.
// It is pure: no I/O, no clock reads, no mutation of its inputs, so the
// same inputs always produce the same proposals.
package engine

import "time"

// Lead is the minimal lead view the matcher works with.
type Lead struct {
	DocumentNumber string
	BusinessLineID int
}

// Seller is the minimal seller view the matcher works with.
// CurrentLeads is the seller's committed workload at the cycle snapshot.
type Seller struct {
	DocumentNumber string
	BusinessLineID int
	MaxLeadsCount  int
	CurrentLeads   int
}

// Proposal is one lead-to-seller pairing produced by a matching pass.
type Proposal struct {
	LeadDocumentNumber   string
	SellerDocumentNumber string
	StatusID             int
	AssignedAt           time.Time
}

// Match pairs pending leads with sellers in a single greedy pass.
//
// Leads are visited in the given order. A seller is eligible for a lead when
// both share a business line and the seller still has spare capacity, counting
// assignments proposed earlier in this same pass. The first eligible seller in
// the given seller order wins. Leads with no eligible seller are skipped and
// stay pending; that is an expected outcome, not an error.
func Match(leads []Lead, sellers []Seller, assignedStatusID int, now func() time.Time) []Proposal {
	proposals := make([]Proposal, 0, len(leads))
	// Capacity consumed within this pass, keyed by seller document number.
	// Scoped to one call so concurrent or repeated passes never share state.
	consumed := make(map[string]int, len(sellers))

	for _, lead := range leads {
		for _, seller := range sellers {
			if seller.BusinessLineID != lead.BusinessLineID {
				continue
			}
			if seller.CurrentLeads+consumed[seller.DocumentNumber] >= seller.MaxLeadsCount {
				continue
			}

			proposals = append(proposals, Proposal{
				LeadDocumentNumber:   lead.DocumentNumber,
				SellerDocumentNumber: seller.DocumentNumber,
				StatusID:             assignedStatusID,
				AssignedAt:           now(),
			})
			consumed[seller.DocumentNumber]++
			break
		}
	}

	return proposals
}
