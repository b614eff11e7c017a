package engine

import (
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		leads   []Lead
		sellers []Seller
		want    []Proposal
	}{
		{
			name:    "single lead matches seller on same line below capacity",
			leads:   []Lead{{DocumentNumber: "L1", BusinessLineID: 1}},
			sellers: []Seller{{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 3, CurrentLeads: 2}},
			want: []Proposal{
				{LeadDocumentNumber: "L1", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
			},
		},
		{
			name:  "lead skipped when no seller shares its line",
			leads: []Lead{{DocumentNumber: "L1", BusinessLineID: 1}},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 2, MaxLeadsCount: 5, CurrentLeads: 0},
				{DocumentNumber: "S2", BusinessLineID: 3, MaxLeadsCount: 5, CurrentLeads: 0},
			},
			want: []Proposal{},
		},
		{
			name:  "seller at exact capacity is not eligible",
			leads: []Lead{{DocumentNumber: "L1", BusinessLineID: 1}},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 2, CurrentLeads: 2},
			},
			want: []Proposal{},
		},
		{
			name:  "seller with zero capacity is never eligible",
			leads: []Lead{{DocumentNumber: "L1", BusinessLineID: 1}},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 0, CurrentLeads: 0},
			},
			want: []Proposal{},
		},
		{
			name: "earlier leads win when demand exceeds capacity",
			leads: []Lead{
				{DocumentNumber: "L1", BusinessLineID: 1},
				{DocumentNumber: "L2", BusinessLineID: 1},
				{DocumentNumber: "L3", BusinessLineID: 1},
			},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 2, CurrentLeads: 0},
			},
			want: []Proposal{
				{LeadDocumentNumber: "L1", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
				{LeadDocumentNumber: "L2", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
			},
		},
		{
			name: "first seller in sequence wins a tie",
			leads: []Lead{
				{DocumentNumber: "L1", BusinessLineID: 1},
			},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 5, CurrentLeads: 4},
				{DocumentNumber: "S2", BusinessLineID: 1, MaxLeadsCount: 5, CurrentLeads: 0},
			},
			want: []Proposal{
				{LeadDocumentNumber: "L1", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
			},
		},
		{
			name: "overflow moves to the next eligible seller once the first fills",
			leads: []Lead{
				{DocumentNumber: "L1", BusinessLineID: 1},
				{DocumentNumber: "L2", BusinessLineID: 1},
				{DocumentNumber: "L3", BusinessLineID: 1},
			},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 1, CurrentLeads: 0},
				{DocumentNumber: "S2", BusinessLineID: 1, MaxLeadsCount: 2, CurrentLeads: 0},
			},
			want: []Proposal{
				{LeadDocumentNumber: "L1", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
				{LeadDocumentNumber: "L2", SellerDocumentNumber: "S2", StatusID: 7, AssignedAt: testNow},
				{LeadDocumentNumber: "L3", SellerDocumentNumber: "S2", StatusID: 7, AssignedAt: testNow},
			},
		},
		{
			name: "mixed lines route each lead to its own line",
			leads: []Lead{
				{DocumentNumber: "L1", BusinessLineID: 2},
				{DocumentNumber: "L2", BusinessLineID: 1},
				{DocumentNumber: "L3", BusinessLineID: 3},
			},
			sellers: []Seller{
				{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 1, CurrentLeads: 0},
				{DocumentNumber: "S2", BusinessLineID: 2, MaxLeadsCount: 1, CurrentLeads: 0},
			},
			want: []Proposal{
				{LeadDocumentNumber: "L1", SellerDocumentNumber: "S2", StatusID: 7, AssignedAt: testNow},
				{LeadDocumentNumber: "L2", SellerDocumentNumber: "S1", StatusID: 7, AssignedAt: testNow},
			},
		},
		{
			name:    "no leads yields no proposals",
			leads:   []Lead{},
			sellers: []Seller{{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 5, CurrentLeads: 0}},
			want:    []Proposal{},
		},
		{
			name:    "no sellers yields no proposals",
			leads:   []Lead{{DocumentNumber: "L1", BusinessLineID: 1}},
			sellers: []Seller{},
			want:    []Proposal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.leads, tt.sellers, 7, fixedNow)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatch_NeverExceedsCapacityWithinBatch(t *testing.T) {
	leads := make([]Lead, 20)
	for i := range leads {
		leads[i] = Lead{DocumentNumber: string(rune('A' + i)), BusinessLineID: 1}
	}
	sellers := []Seller{
		{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 3, CurrentLeads: 1},
		{DocumentNumber: "S2", BusinessLineID: 1, MaxLeadsCount: 4, CurrentLeads: 0},
	}

	got := Match(leads, sellers, 1, fixedNow)

	counts := make(map[string]int)
	for _, p := range got {
		counts[p.SellerDocumentNumber]++
	}
	if counts["S1"] != 2 {
		t.Errorf("seller S1 received %d leads, want 2 (capacity 3 with 1 in flight)", counts["S1"])
	}
	if counts["S2"] != 4 {
		t.Errorf("seller S2 received %d leads, want 4", counts["S2"])
	}
	if len(got) != 6 {
		t.Errorf("Match() proposed %d assignments, want 6", len(got))
	}
}

func TestMatch_IsDeterministic(t *testing.T) {
	leads := []Lead{
		{DocumentNumber: "L1", BusinessLineID: 1},
		{DocumentNumber: "L2", BusinessLineID: 2},
		{DocumentNumber: "L3", BusinessLineID: 1},
	}
	sellers := []Seller{
		{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 1, CurrentLeads: 0},
		{DocumentNumber: "S2", BusinessLineID: 2, MaxLeadsCount: 2, CurrentLeads: 1},
		{DocumentNumber: "S3", BusinessLineID: 1, MaxLeadsCount: 2, CurrentLeads: 0},
	}

	first := Match(leads, sellers, 9, fixedNow)
	second := Match(leads, sellers, 9, fixedNow)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Match() runs differ: first %+v, second %+v", first, second)
	}
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	leads := []Lead{
		{DocumentNumber: "L1", BusinessLineID: 1},
		{DocumentNumber: "L2", BusinessLineID: 1},
	}
	sellers := []Seller{
		{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 5, CurrentLeads: 2},
	}
	wantLeads := []Lead{
		{DocumentNumber: "L1", BusinessLineID: 1},
		{DocumentNumber: "L2", BusinessLineID: 1},
	}
	wantSellers := []Seller{
		{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 5, CurrentLeads: 2},
	}

	Match(leads, sellers, 1, fixedNow)

	if !reflect.DeepEqual(leads, wantLeads) {
		t.Errorf("Match() mutated leads: got %+v, want %+v", leads, wantLeads)
	}
	if !reflect.DeepEqual(sellers, wantSellers) {
		t.Errorf("Match() mutated sellers: got %+v, want %+v", sellers, wantSellers)
	}
}

func TestMatch_StampsStatusAndClock(t *testing.T) {
	calls := 0
	countingNow := func() time.Time {
		calls++
		return testNow.Add(time.Duration(calls) * time.Second)
	}

	leads := []Lead{
		{DocumentNumber: "L1", BusinessLineID: 1},
		{DocumentNumber: "L2", BusinessLineID: 1},
	}
	sellers := []Seller{
		{DocumentNumber: "S1", BusinessLineID: 1, MaxLeadsCount: 10, CurrentLeads: 0},
	}

	got := Match(leads, sellers, 42, countingNow)

	if len(got) != 2 {
		t.Fatalf("Match() proposed %d assignments, want 2", len(got))
	}
	for i, p := range got {
		if p.StatusID != 42 {
			t.Errorf("proposal %d has status %d, want 42", i, p.StatusID)
		}
	}
	if !got[1].AssignedAt.After(got[0].AssignedAt) {
		t.Errorf("expected per-proposal timestamps to advance: %v then %v", got[0].AssignedAt, got[1].AssignedAt)
	}
}
