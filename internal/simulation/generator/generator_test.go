package generator

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func testRefs() ReferenceIDs {
	return ReferenceIDs{
		BusinessLines: []int{1, 2, 3},
		Countries:     []int{1, 2},
		DocumentTypes: []int{1, 2, 3},
	}
}

func TestBatchProducesRequestedCount(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))

	leads := g.Batch(1, 5, testRefs())
	if len(leads) != 5 {
		t.Fatalf("expected 5 leads, got %d", len(leads))
	}
}

func TestLeadShape(t *testing.T) {
	g := New(rand.New(rand.NewSource(42)))

	docPattern := regexp.MustCompile(`^L7_3\d{4}$`)
	emailPattern := regexp.MustCompile(`^[a-z]+\.[a-z]+\d{1,3}@example\.com$`)

	for trial := 0; trial < 100; trial++ {
		lead := g.lead(7, 3, testRefs())

		if !docPattern.MatchString(lead.DocumentNumber) {
			t.Fatalf("unexpected document number %q", lead.DocumentNumber)
		}
		if !emailPattern.MatchString(lead.Email) {
			t.Fatalf("unexpected email %q", lead.Email)
		}

		if !strings.HasPrefix(lead.Phone, "+57") {
			t.Fatalf("expected Colombian phone prefix, got %q", lead.Phone)
		}
		digits, err := strconv.ParseInt(strings.TrimPrefix(lead.Phone, "+57"), 10, 64)
		if err != nil {
			t.Fatalf("phone %q is not numeric: %v", lead.Phone, err)
		}
		if digits < 3000000000 || digits > 3999999999 {
			t.Fatalf("phone %q outside mobile range", lead.Phone)
		}

		if !containsInt(testRefs().BusinessLines, lead.BusinessLineID) {
			t.Fatalf("business line %d not in reference set", lead.BusinessLineID)
		}
		if !containsInt(testRefs().Countries, lead.CountryID) {
			t.Fatalf("country %d not in reference set", lead.CountryID)
		}
		if !containsInt(testRefs().DocumentTypes, lead.DocumentTypeID) {
			t.Fatalf("document type %d not in reference set", lead.DocumentTypeID)
		}
	}
}

func TestEmailMatchesName(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)))

	for trial := 0; trial < 50; trial++ {
		lead := g.lead(1, 0, testRefs())

		prefix := strings.ToLower(lead.GivenName) + "." + strings.ToLower(lead.Surname)
		if !strings.HasPrefix(lead.Email, prefix) {
			t.Fatalf("email %q does not match name %s %s", lead.Email, lead.GivenName, lead.Surname)
		}
	}
}

func TestNamePoolsAreUsed(t *testing.T) {
	g := New(rand.New(rand.NewSource(99)))

	for trial := 0; trial < 50; trial++ {
		lead := g.lead(1, 0, testRefs())

		if !containsString(givenNames, lead.GivenName) {
			t.Fatalf("given name %q not in pool", lead.GivenName)
		}
		if !containsString(surnames, lead.Surname) {
			t.Fatalf("surname %q not in pool", lead.Surname)
		}
	}
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
