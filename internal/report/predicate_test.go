package report

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPredicateMatchesDateRange(t *testing.T) {
	p := Predicate{
		DateField: "invoiceDate",
		DateFrom:  "2022-01-01",
		DateTo:    "2022-12-31",
	}

	tests := []struct {
		name string
		date interface{}
		want bool
	}{
		{name: "inside range", date: "2022-06-15", want: true},
		{name: "on lower bound", date: "2022-01-01", want: true},
		{name: "on upper bound", date: "2022-12-31", want: true},
		{name: "before range", date: "2021-12-31", want: false},
		{name: "after range", date: "2023-01-01", want: false},
		{name: "timestamp suffix ignored", date: "2022-12-31T23:59:59Z", want: true},
		{name: "time typed value", date: time.Date(2022, 3, 4, 10, 0, 0, 0, time.UTC), want: true},
		{name: "missing date", date: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Matches(bson.M{"invoiceDate": tt.date})
			if got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestPredicateMatchesEqualsAndContains(t *testing.T) {
	doc := bson.M{"customer": "customer B", "item": "item ABC"}

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{name: "exact match", p: Predicate{Equals: map[string]string{"customer": "customer B"}}, want: true},
		{name: "case sensitive", p: Predicate{Equals: map[string]string{"customer": "Customer B"}}, want: false},
		{name: "partial is not equal", p: Predicate{Equals: map[string]string{"customer": "customer"}}, want: false},
		{name: "substring match", p: Predicate{Contains: map[string]string{"item": "ABC"}}, want: true},
		{name: "substring absent", p: Predicate{Contains: map[string]string{"item": "XYZ"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Matches(doc); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicateToBSONDateBounds(t *testing.T) {
	p := Predicate{DateField: "dateInvoice", DateFrom: "2022-01-01", DateTo: "2022-01-31"}

	filter := p.ToBSON()
	cond, ok := filter["dateInvoice"].(bson.M)
	if !ok {
		t.Fatalf("expected date condition, got %v", filter)
	}
	if cond["$gte"] != "2022-01-01" {
		t.Errorf("got $gte %v, want 2022-01-01", cond["$gte"])
	}
	// Upper bound is exclusive on the following day so time suffixes on the
	// stored value still fall inside the range.
	if cond["$lt"] != "2022-02-01" {
		t.Errorf("got $lt %v, want 2022-02-01", cond["$lt"])
	}
}
