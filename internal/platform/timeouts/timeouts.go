// Package timeouts defines shared timeout constants used across the service.
// Centralizing these values keeps the durations discoverable and prevents
// drift between the HTTP boundary and outbound collaborators.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// MailSend caps one SMTP dial-and-send round trip. Mail delivery is
// best-effort after an order is committed, so a slow relay must not pin a
// request indefinitely.
const MailSend = 15 * time.Second
