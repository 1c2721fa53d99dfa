// Package app assembles the order intake process: ledger, optional order
// index, optional SMTP sender, the domain service, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtanque/shirt-orders/internal/orders/api/web"
	"github.com/dtanque/shirt-orders/internal/orders/domain"
	"github.com/dtanque/shirt-orders/internal/orders/storage/csvledger"
	ordersqlite "github.com/dtanque/shirt-orders/internal/orders/storage/sqlite"
	"github.com/dtanque/shirt-orders/internal/platform/httpx"
	"github.com/dtanque/shirt-orders/internal/platform/mail"
	"github.com/dtanque/shirt-orders/internal/platform/timeouts"
)

// Config defines the inputs for the intake process.
type Config struct {
	HTTPAddr   string
	LedgerPath string
	// IndexDBPath enables the sqlite order index when set.
	IndexDBPath string

	Prices          domain.PriceList
	RecipientHandle string

	// Mail configures the SMTP transport. An empty Mail.Host disables
	// notifications entirely.
	Mail            mail.Config
	FromAddress     string
	OperatorAddress string
	SalesAddress    string
}

// Server hosts the order intake HTTP endpoints over the CSV ledger.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	index      *ordersqlite.Store
}

// NewServer wires the intake process from configuration. The ledger file is
// created with its header row when missing; the order index and mail sender
// are optional and skipped when unconfigured.
func NewServer(cfg Config) (*Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.LedgerPath == "" {
		return nil, errors.New("ledger path is required")
	}

	ledger, err := openLedger(cfg.LedgerPath)
	if err != nil {
		return nil, err
	}

	var index *ordersqlite.Store
	var domainIndex domain.Index
	var lister web.OrderLister
	if cfg.IndexDBPath != "" {
		index, err = openIndex(cfg.IndexDBPath)
		if err != nil {
			return nil, err
		}
		domainIndex = index
		lister = index
	}

	var sender domain.Sender
	if strings.TrimSpace(cfg.Mail.Host) != "" {
		client, err := mail.New(cfg.Mail)
		if err != nil {
			return nil, fmt.Errorf("build mail client: %w", err)
		}
		sender = client
	} else {
		log.Printf("smtp host not configured, order notifications disabled")
	}

	service := domain.NewService(domain.Config{
		Prices:          cfg.Prices,
		RecipientHandle: cfg.RecipientHandle,
		FromAddress:     cfg.FromAddress,
		OperatorAddress: cfg.OperatorAddress,
		SalesAddress:    cfg.SalesAddress,
	}, ledger, domainIndex, sender, nil)

	mux := web.NewMux(web.NewHandlers(service, lister, ledger.Path()))
	handler := httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   cfg.HTTPAddr,
		httpServer: httpServer,
		index:      index,
	}, nil
}

// Handler exposes the assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("orders server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("order intake listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the order index resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.index != nil {
		if err := s.index.Close(); err != nil {
			log.Printf("close order index: %v", err)
		}
	}
}

func openLedger(path string) (*csvledger.Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}
	ledger, err := csvledger.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order ledger: %w", err)
	}
	return ledger, nil
}

func openIndex(path string) (*ordersqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}
	store, err := ordersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order index: %w", err)
	}
	return store, nil
}
