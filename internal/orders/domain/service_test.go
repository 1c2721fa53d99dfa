package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dtanque/shirt-orders/internal/platform/mail"
)

type fakeLedger struct {
	records []Record
	err     error
}

func (f *fakeLedger) Append(_ context.Context, record Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

type fakeIndex struct {
	summaries []OrderSummary
	err       error
}

func (f *fakeIndex) RecordOrder(_ context.Context, summary OrderSummary) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testConfig() Config {
	return Config{
		RecipientHandle: "dtanque",
		FromAddress:     "orders@example.com",
		OperatorAddress: "operator@example.com",
		SalesAddress:    "sales@example.com",
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
}

func TestSubmitRejectsUnacceptedTermsWithoutSideEffects(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	sender := &fakeSender{}
	service := NewService(testConfig(), ledger, nil, sender, fixedClock())

	_, err := service.Submit(context.Background(), Submission{TermsAccepted: false})
	if !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("err = %v, want %v", err, ErrTermsNotAccepted)
	}
	if len(ledger.records) != 0 {
		t.Fatalf("ledger records = %d, want 0", len(ledger.records))
	}
	if len(sender.sent) != 0 {
		t.Fatalf("sent mails = %d, want 0", len(sender.sent))
	}
}

func TestSubmitCommitsRecordAndNotifies(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	index := &fakeIndex{}
	sender := &fakeSender{}
	service := NewService(testConfig(), ledger, index, sender, fixedClock())

	sub := ParseSubmission(map[string]string{
		"playerName": "Alex P",
		"teamName":   "Tigers",
		"email":      "a@example.com",
		"shirtSize":  "M",
		"terms":      "on",
		"lineCount":  "2",
		"line1":      "Alex",
		"line2":      "Sam",
	})
	result, err := service.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Amount != 40 {
		t.Fatalf("amount = %d, want 40", result.Amount)
	}
	for _, part := range []string{"amount=40", "Fundraiser%20-%20Alex%20P"} {
		if !strings.Contains(result.PaymentLink, part) {
			t.Fatalf("payment link = %q, missing %q", result.PaymentLink, part)
		}
	}

	if len(ledger.records) != 1 {
		t.Fatalf("ledger records = %d, want 1", len(ledger.records))
	}
	record := ledger.records[0]
	if record.TotalAmount != 40 {
		t.Fatalf("record total = %d, want 40", record.TotalAmount)
	}
	if !record.Timestamp.Equal(fixedClock()()) {
		t.Fatalf("record timestamp = %v, want fixed clock time", record.Timestamp)
	}

	if len(index.summaries) != 1 {
		t.Fatalf("indexed orders = %d, want 1", len(index.summaries))
	}

	if len(sender.sent) != 2 {
		t.Fatalf("sent mails = %d, want 2", len(sender.sent))
	}
	operator, customer := sender.sent[0], sender.sent[1]
	if operator.To != "operator@example.com" {
		t.Fatalf("operator mail to = %q, want operator@example.com", operator.To)
	}
	if customer.To != "a@example.com" {
		t.Fatalf("customer mail to = %q, want a@example.com", customer.To)
	}
	if !strings.Contains(customer.Body, result.PaymentLink) {
		t.Fatal("customer body missing payment link")
	}
}

func TestSubmitPricesBusinessDesign(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	service := NewService(testConfig(), ledger, nil, nil, fixedClock())

	sub := ParseSubmission(map[string]string{
		"playerName":     "Alex P",
		"terms":          "on",
		"lineCount":      "2",
		"line1":          "Alex",
		"line2":          "Sam",
		"businessDesign": "yes",
		"businessLines":  "1",
		"businessLine1":  "Acme Co",
	})
	result, err := service.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Amount != 240 {
		t.Fatalf("amount = %d, want 240", result.Amount)
	}
}

func TestSubmitIgnoresUnparsableLineCount(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	service := NewService(testConfig(), ledger, nil, nil, fixedClock())

	sub := ParseSubmission(map[string]string{
		"terms":          "on",
		"lineCount":      "abc",
		"businessDesign": "yes",
		"businessLines":  "1",
	})
	result, err := service.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Amount != 200 {
		t.Fatalf("amount = %d, want 200 (business lines only)", result.Amount)
	}
}

func TestSubmitFailsWhenLedgerAppendFails(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{err: errors.New("disk full")}
	sender := &fakeSender{}
	service := NewService(testConfig(), ledger, nil, sender, fixedClock())

	_, err := service.Submit(context.Background(), Submission{TermsAccepted: true})
	if err == nil {
		t.Fatal("expected ledger failure")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("sent mails = %d, want 0 after persistence failure", len(sender.sent))
	}
}

func TestSubmitSucceedsWhenMailFails(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	sender := &fakeSender{err: errors.New("relay down")}
	service := NewService(testConfig(), ledger, nil, sender, fixedClock())

	result, err := service.Submit(context.Background(), Submission{TermsAccepted: true, PlayerLineCount: 1, PlayerLines: []string{"Alex"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Amount != 20 {
		t.Fatalf("amount = %d, want 20", result.Amount)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("ledger records = %d, want 1 (order stays committed)", len(ledger.records))
	}
}

func TestSubmitSucceedsWhenIndexFails(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	index := &fakeIndex{err: errors.New("db locked")}
	service := NewService(testConfig(), ledger, index, nil, fixedClock())

	if _, err := service.Submit(context.Background(), Submission{TermsAccepted: true}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("ledger records = %d, want 1", len(ledger.records))
	}
}

func TestSubmitRequiresLedger(t *testing.T) {
	t.Parallel()

	service := NewService(testConfig(), nil, nil, nil, fixedClock())
	if _, err := service.Submit(context.Background(), Submission{TermsAccepted: true}); !errors.Is(err, ErrLedgerNotConfigured) {
		t.Fatalf("err = %v, want %v", err, ErrLedgerNotConfigured)
	}
}
