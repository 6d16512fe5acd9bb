package api

import (
	"testing"
)

func TestListParamsRoundTrip(t *testing.T) {
	approved := false
	params := RestaurantListParams{
		Page:     3,
		Limit:    20,
		Search:   "pizza",
		Category: "cat-1",
		City:     "Bogota",
		Sort:     "name",
		Approved: &approved,
	}

	restored := RestaurantListParamsFromValues(params.Values())

	if restored.Page != params.Page || restored.Limit != params.Limit {
		t.Fatalf("pagination lost: %+v", restored)
	}
	if restored.Search != params.Search || restored.Category != params.Category ||
		restored.City != params.City || restored.Sort != params.Sort {
		t.Fatalf("filters lost: %+v", restored)
	}
	if restored.Approved == nil || *restored.Approved != false {
		t.Fatalf("approved flag lost: %+v", restored.Approved)
	}
}

func TestListParamsEmptyValuesOmitted(t *testing.T) {
	q := RestaurantListParams{}.Values()
	if len(q) != 0 {
		t.Fatalf("empty params encoded as %v, want empty query", q)
	}

	restored := RestaurantListParamsFromValues(q)
	if restored.Approved != nil {
		t.Fatal("absent isApproved must stay nil, not false")
	}
	if restored.Page != 0 || restored.Search != "" {
		t.Fatalf("unexpected defaults: %+v", restored)
	}
}
