// Package server parses configuration for the order intake process and runs
// it until shutdown.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtanque/shirt-orders/internal/orders/app"
	"github.com/dtanque/shirt-orders/internal/orders/domain"
	"github.com/dtanque/shirt-orders/internal/platform/config"
	"github.com/dtanque/shirt-orders/internal/platform/mail"
	"github.com/dtanque/shirt-orders/internal/platform/otel"
)

const defaultHTTPAddr = ":3000"

// Config holds the server command configuration.
type Config struct {
	HTTPAddr    string
	LedgerPath  string
	IndexDBPath string

	PlayerLinePrice   int
	BusinessLinePrice int
	RecipientHandle   string

	Mail            mail.Config
	FromAddress     string
	OperatorAddress string
	SalesAddress    string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config. Environment variables supply the
// defaults; flags override them.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	prices := domain.DefaultPrices()
	cfg := Config{
		HTTPAddr:          envOrDefault(lookup, "SHIRT_ORDERS_HTTP_ADDR", defaultHTTPAddr),
		LedgerPath:        envOrDefault(lookup, "SHIRT_ORDERS_LEDGER_PATH", filepath.Join("data", "orders.csv")),
		IndexDBPath:       envOrDefault(lookup, "SHIRT_ORDERS_INDEX_DB_PATH", ""),
		PlayerLinePrice:   envOrDefaultInt(lookup, "SHIRT_ORDERS_PRICE_PLAYER_LINE", prices.PlayerLine),
		BusinessLinePrice: envOrDefaultInt(lookup, "SHIRT_ORDERS_PRICE_BUSINESS_LINE", prices.BusinessLine),
		RecipientHandle:   envOrDefault(lookup, "SHIRT_ORDERS_VENMO_RECIPIENT", ""),
		FromAddress:       envOrDefault(lookup, "SHIRT_ORDERS_FROM_ADDRESS", ""),
		OperatorAddress:   envOrDefault(lookup, "SHIRT_ORDERS_OPERATOR_ADDRESS", ""),
		SalesAddress:      envOrDefault(lookup, "SHIRT_ORDERS_SALES_ADDRESS", ""),
	}
	if err := config.ParseEnv(&cfg.Mail); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.LedgerPath, "ledger-path", cfg.LedgerPath, "order ledger CSV file path")
	fs.StringVar(&cfg.IndexDBPath, "index-db-path", cfg.IndexDBPath, "optional sqlite order index path")
	fs.IntVar(&cfg.PlayerLinePrice, "price-player-line", cfg.PlayerLinePrice, "price per supporter line")
	fs.IntVar(&cfg.BusinessLinePrice, "price-business-line", cfg.BusinessLinePrice, "price per business line")
	fs.StringVar(&cfg.RecipientHandle, "venmo-recipient", cfg.RecipientHandle, "Venmo recipient handle for payment links")
	fs.StringVar(&cfg.FromAddress, "from-address", cfg.FromAddress, "sender address for notification emails")
	fs.StringVar(&cfg.OperatorAddress, "operator-address", cfg.OperatorAddress, "operator address for new order notifications")
	fs.StringVar(&cfg.SalesAddress, "sales-address", cfg.SalesAddress, "sales address referenced for business logo files")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the order intake server.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "shirt-orders")
	if err != nil {
		log.Printf("tracing setup: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	server, err := app.NewServer(app.Config{
		HTTPAddr:    cfg.HTTPAddr,
		LedgerPath:  cfg.LedgerPath,
		IndexDBPath: cfg.IndexDBPath,
		Prices: domain.PriceList{
			PlayerLine:   cfg.PlayerLinePrice,
			BusinessLine: cfg.BusinessLinePrice,
		},
		RecipientHandle: cfg.RecipientHandle,
		Mail:            cfg.Mail,
		FromAddress:     cfg.FromAddress,
		OperatorAddress: cfg.OperatorAddress,
		SalesAddress:    cfg.SalesAddress,
	})
	if err != nil {
		return fmt.Errorf("init orders server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve orders: %w", err)
	}
	return nil
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func envOrDefaultInt(lookup EnvLookup, key string, fallback int) int {
	raw := envOrDefault(lookup, key, "")
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, raw, err)
		return fallback
	}
	return parsed
}
