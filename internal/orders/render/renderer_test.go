package render

import (
	"strings"
	"testing"
)

func sampleOrder() Order {
	return Order{
		Timestamp:       "2026-08-31T12:00:00Z",
		PlayerName:      "Alex P",
		TeamName:        "Tigers",
		Email:           "a@example.com",
		ShirtSize:       "M",
		PlayerLineCount: 2,
		PlayerLines:     []string{"Alex", "Sam"},
		BusinessDesign:  "No",
		TotalAmount:     40,
	}
}

func TestOperatorEmailContainsFullOrderDetail(t *testing.T) {
	t.Parallel()

	subject, body := OperatorEmail(Printer(), sampleOrder(), "https://venmo.com/?txn=pay&amount=40")

	if subject != "New Shirt Order" {
		t.Fatalf("subject = %q, want %q", subject, "New Shirt Order")
	}
	for _, want := range []string{
		"Date/Time: 2026-08-31T12:00:00Z",
		"Player Name: Alex P",
		"Team/Coach: Tigers",
		"Shirt Size: M",
		"Supporter Lines Purchased: 2",
		"  1. Alex",
		"  2. Sam",
		"Business Design Purchased: No",
		"Business Names:\n  (none)",
		"Total Amount: $40",
		"https://venmo.com/?txn=pay&amount=40",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("operator body missing %q:\n%s", want, body)
		}
	}
}

func TestCustomerEmailAddsReceiptFraming(t *testing.T) {
	t.Parallel()

	subject, body := CustomerEmail(Printer(), sampleOrder(), "https://venmo.com/?txn=pay&amount=40", "sales@example.com")

	if subject != "Your Shirt Order Confirmation" {
		t.Fatalf("subject = %q, want %q", subject, "Your Shirt Order Confirmation")
	}
	if !strings.Contains(body, "Thank you for your order!") {
		t.Fatalf("customer body missing greeting:\n%s", body)
	}
	if !strings.Contains(body, "Order Summary") {
		t.Fatalf("customer body missing summary header:\n%s", body)
	}
	if strings.Contains(body, "logo") {
		t.Fatalf("customer body must not mention logo without a business design:\n%s", body)
	}
}

func TestCustomerEmailRemindsAboutLogoForBusinessDesigns(t *testing.T) {
	t.Parallel()

	order := sampleOrder()
	order.BusinessDesign = "yes"
	order.BusinessDesignRequested = true
	order.BusinessLineCount = 1
	order.BusinessLines = []string{"Acme Co"}
	order.TotalAmount = 240

	_, body := CustomerEmail(Printer(), order, "https://venmo.com/?txn=pay&amount=240", "sales@example.com")

	for _, want := range []string{
		"  1. Acme Co",
		"Total Amount: $240",
		"please email your logo file to sales@example.com",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("customer body missing %q:\n%s", want, body)
		}
	}
}

func TestNameListFallsBackToNone(t *testing.T) {
	t.Parallel()

	order := sampleOrder()
	order.PlayerLineCount = 0
	order.PlayerLines = nil

	_, body := OperatorEmail(Printer(), order, "link")
	if !strings.Contains(body, "Supporter Names:\n  (none)") {
		t.Fatalf("operator body missing supporter (none) fallback:\n%s", body)
	}
}
