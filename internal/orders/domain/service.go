package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dtanque/shirt-orders/internal/orders/payment"
	"github.com/dtanque/shirt-orders/internal/orders/render"
	apperrors "github.com/dtanque/shirt-orders/internal/platform/errors"
	"github.com/dtanque/shirt-orders/internal/platform/mail"
)

var (
	// ErrTermsNotAccepted indicates the submission declined the order terms.
	ErrTermsNotAccepted = apperrors.E(apperrors.KindInvalidInput, "terms not accepted")
	// ErrLedgerNotConfigured indicates the service is missing its ledger.
	ErrLedgerNotConfigured = errors.New("order ledger is not configured")
)

// Ledger is the durable append-only record store for committed orders.
type Ledger interface {
	Append(ctx context.Context, record Record) error
}

// Index mirrors order summaries for the admin recent-orders view. Index
// writes are best effort; the ledger is the source of truth.
type Index interface {
	RecordOrder(ctx context.Context, summary OrderSummary) error
}

// Sender delivers one notification email, best effort.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Config holds the intake parameters supplied at startup.
type Config struct {
	Prices PriceList
	// RecipientHandle is the Venmo payment destination.
	RecipientHandle string
	// FromAddress is the sender identity for both notifications.
	FromAddress string
	// OperatorAddress receives the internal copy of every order.
	OperatorAddress string
	// SalesAddress receives logo files for business designs; referenced in
	// the customer confirmation.
	SalesAddress string
}

// Result is the successful outcome of one submission.
type Result struct {
	Amount      int
	PaymentLink string
}

// Service orchestrates one order submission end to end.
type Service struct {
	cfg    Config
	ledger Ledger
	index  Index
	sender Sender
	loc    render.Localizer
	clock  func() time.Time
}

// NewService constructs the intake service. index and sender may be nil;
// their steps are skipped. A nil clock defaults to time.Now.
func NewService(cfg Config, ledger Ledger, index Index, sender Sender, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	if cfg.Prices == (PriceList{}) {
		cfg.Prices = DefaultPrices()
	}
	return &Service{
		cfg:    cfg,
		ledger: ledger,
		index:  index,
		sender: sender,
		loc:    render.Printer(),
		clock:  clock,
	}
}

// Submit runs the linear intake sequence: validate terms, price, append the
// ledger record, then best-effort index the order and dispatch the operator
// and customer notifications. The ledger append is the commit point: if it
// fails nothing was recorded and no email is sent; once it succeeds the
// request reports success regardless of notification outcome.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if s == nil || s.ledger == nil {
		return Result{}, ErrLedgerNotConfigured
	}
	if !sub.TermsAccepted {
		return Result{}, ErrTermsNotAccepted
	}

	total := s.cfg.Prices.Total(sub.PlayerLineCount, sub.BusinessDesignRequested(), sub.BusinessLineCount)
	record := NewRecord(sub, s.clock(), total)

	if err := s.ledger.Append(ctx, record); err != nil {
		return Result{}, fmt.Errorf("append order record: %w", err)
	}

	if s.index != nil {
		if err := s.index.RecordOrder(ctx, record.Summary()); err != nil {
			log.Printf("index order for %q: %v", record.PlayerName, err)
		}
	}

	link := payment.Link(s.cfg.RecipientHandle, total, record.PlayerName)
	s.notify(ctx, record, link)

	return Result{Amount: total, PaymentLink: link}, nil
}

func (s *Service) notify(ctx context.Context, record Record, paymentLink string) {
	if s.sender == nil {
		return
	}
	order := renderOrder(record)

	subject, body := render.OperatorEmail(s.loc, order, paymentLink)
	if err := s.sender.Send(ctx, mail.Message{
		From:    s.cfg.FromAddress,
		To:      s.cfg.OperatorAddress,
		Subject: subject,
		Body:    body,
	}); err != nil {
		log.Printf("send operator notification: %v", err)
	}

	subject, body = render.CustomerEmail(s.loc, order, paymentLink, s.cfg.SalesAddress)
	if err := s.sender.Send(ctx, mail.Message{
		From:    s.cfg.FromAddress,
		To:      record.Email,
		Subject: subject,
		Body:    body,
	}); err != nil {
		log.Printf("send customer confirmation to %q: %v", record.Email, err)
	}
}

func renderOrder(record Record) render.Order {
	return render.Order{
		Timestamp:               record.Timestamp.Format(time.RFC3339),
		PlayerName:              record.PlayerName,
		TeamName:                record.TeamName,
		Email:                   record.Email,
		ShirtSize:               record.ShirtSize,
		PlayerLineCount:         record.PlayerLineCount,
		PlayerLines:             record.PlayerLines,
		BusinessDesign:          record.BusinessDesign,
		BusinessDesignRequested: record.BusinessDesign == businessDesignYes,
		BusinessLineCount:       record.BusinessLineCount,
		BusinessLines:           record.BusinessLines,
		TotalAmount:             record.TotalAmount,
	}
}
