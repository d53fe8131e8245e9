package domain

import "testing"

func TestCanTransition_ForwardPath(t *testing.T) {
	steps := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusShipped},
		{StatusShipped, StatusDelivered},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to be legal", s.from, s.to)
		}
	}
}

func TestCanTransition_Cancel(t *testing.T) {
	if !CanTransition(StatusPending, StatusCancelled) {
		t.Fatalf("expected pending -> cancelled to be legal")
	}
	if !CanTransition(StatusProcessing, StatusCancelled) {
		t.Fatalf("expected processing -> cancelled to be legal")
	}
	for _, from := range []OrderStatus{StatusShipped, StatusDelivered, StatusCancelled} {
		if CanTransition(from, StatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be illegal", from)
		}
	}
}

func TestCanTransition_NoSkipsOrReversals(t *testing.T) {
	illegal := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusPending},
		{StatusShipped, StatusProcessing},
		{StatusDelivered, StatusShipped},
		{StatusCancelled, StatusPending},
	}
	for _, s := range illegal {
		if CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to be illegal", s.from, s.to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if ValidStatus("returned") {
		t.Fatalf("expected unknown status to be invalid")
	}
}
