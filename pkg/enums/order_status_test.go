package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusRefunded},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	forbidden := []struct{ from, to OrderStatus }{
		{OrderStatusShipped, OrderStatusPending},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusRefunded, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusDelivered},
	}
	for _, tt := range forbidden {
		if tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be rejected", tt.from, tt.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()

	if !OrderStatusCancelled.IsTerminal() || !OrderStatusRefunded.IsTerminal() {
		t.Fatal("cancelled and refunded must be terminal")
	}
	if OrderStatusDelivered.IsTerminal() {
		t.Fatal("delivered still permits refund")
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("processing")
	if err != nil || status != OrderStatusProcessing {
		t.Fatalf("unexpected result %v %v", status, err)
	}
	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseShippingMethod(t *testing.T) {
	t.Parallel()

	method, err := ParseShippingMethod("express")
	if err != nil || method != ShippingMethodExpress {
		t.Fatalf("unexpected result %v %v", method, err)
	}
	if _, err := ParseShippingMethod("drone"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
