// Package generator produces synthetic leads for load and demo environments.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
)

var givenNames = []string{"Juan", "Maria", "Pedro", "Ana", "Luis", "Sofia", "Carlos"}

var surnames = []string{"Gomez", "Perez", "Martinez", "Lopez", "Rodriguez", "Mendez"}

// Lead is one synthetic lead ready for insertion.
type Lead struct {
	DocumentNumber string
	GivenName      string
	Surname        string
	Phone          string
	Email          string
	BusinessLineID int
	CountryID      int
	DocumentTypeID int
}

// ReferenceIDs are the valid reference table ids sampled during generation.
type ReferenceIDs struct {
	BusinessLines []int
	Countries     []int
	DocumentTypes []int
}

// Generator produces synthetic Colombian-flavored leads.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Batch produces count leads for one generation cycle. Document numbers embed
// the cycle and position plus a random four-digit suffix, so collisions across
// runs happen and the writer must skip duplicates.
func (g *Generator) Batch(cycle, count int, refs ReferenceIDs) []Lead {
	leads := make([]Lead, 0, count)
	for i := 0; i < count; i++ {
		leads = append(leads, g.lead(cycle, i, refs))
	}
	return leads
}

func (g *Generator) lead(cycle, position int, refs ReferenceIDs) Lead {
	givenName := givenNames[g.rng.Intn(len(givenNames))]
	surname := surnames[g.rng.Intn(len(surnames))]

	return Lead{
		DocumentNumber: fmt.Sprintf("L%d_%d%d", cycle, position, 1000+g.rng.Intn(9000)),
		GivenName:      givenName,
		Surname:        surname,
		Phone:          fmt.Sprintf("+57%d", 3000000000+g.rng.Int63n(1000000000)),
		Email:          fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(givenName), strings.ToLower(surname), 1+g.rng.Intn(999)),
		BusinessLineID: pick(g.rng, refs.BusinessLines),
		CountryID:      pick(g.rng, refs.Countries),
		DocumentTypeID: pick(g.rng, refs.DocumentTypes),
	}
}

func pick(rng *rand.Rand, ids []int) int {
	return ids[rng.Intn(len(ids))]
}
