package domain_test

import (
	"errors"
	"testing"

	"orderdesk/internal/domain"
)

func TestCanTransition_Table(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		ok       bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusShipped, false},
		{domain.StatusConfirmed, domain.StatusProcessing, true},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusDelivered, false},
		{domain.StatusProcessing, domain.StatusShipped, true},
		{domain.StatusProcessing, domain.StatusCancelled, true},
		{domain.StatusProcessing, domain.StatusPending, false},
		{domain.StatusShipped, domain.StatusDelivered, true},
		{domain.StatusShipped, domain.StatusCancelled, false},
		{domain.StatusDelivered, domain.StatusPending, false},
		{domain.StatusDelivered, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusPending, false},
	}
	for _, tc := range cases {
		if got := domain.CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTransition_IllegalLeavesOrderUntouched(t *testing.T) {
	o := domain.Order{Status: domain.StatusDelivered}
	for _, to := range domain.Statuses() {
		err := o.Transition(to)
		var invalid domain.InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("DELIVERED -> %s: want InvalidTransitionError, got %v", to, err)
		}
		if invalid.From != domain.StatusDelivered || invalid.To != to {
			t.Fatalf("error does not name both states: %+v", invalid)
		}
		if o.Status != domain.StatusDelivered {
			t.Fatalf("status mutated on failed transition: %s", o.Status)
		}
	}
}

func TestTransition_Legal(t *testing.T) {
	o := domain.Order{Status: domain.StatusPending}
	if err := o.Transition(domain.StatusCancelled); err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", o.Status)
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	o := domain.Order{Status: domain.StatusPending}
	err := o.Transition(domain.OrderStatus("LOST"))
	var valErr domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
