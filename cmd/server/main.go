// Package main starts the fundraiser shirt order intake service.
//
// This process owns the order form endpoints, the append-only CSV ledger,
// and the notification emails sent when an order is accepted.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	servercmd "github.com/dtanque/shirt-orders/internal/cmd/server"
)

func main() {
	cfg, err := servercmd.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ORDERS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := servercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
