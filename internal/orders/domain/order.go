// Package domain implements fundraiser shirt-order intake: submission
// parsing, pricing, and the linear submit flow that commits an order to the
// ledger before any notification is attempted.
package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	// MaxStoredPlayerLines is the fixed number of player line columns in a
	// ledger row. Line texts past this cap are not stored.
	MaxStoredPlayerLines = 20
	// MaxStoredBusinessLines is the fixed number of business line columns in
	// a ledger row.
	MaxStoredBusinessLines = 10

	businessDesignYes     = "yes"
	defaultBusinessDesign = "No"
)

// Submission is the raw form data for one fundraiser shirt order.
type Submission struct {
	PlayerName string
	TeamName   string
	Email      string
	ShirtSize  string

	TermsAccepted bool

	// BusinessDesign is the raw field value; only the sentinel "yes"
	// requests a business design.
	BusinessDesign string

	PlayerLineCount   int
	BusinessLineCount int
	PlayerLines       []string
	BusinessLines     []string
}

// BusinessDesignRequested reports whether the submission opts into a
// business design.
func (s Submission) BusinessDesignRequested() bool {
	return s.BusinessDesign == businessDesignYes
}

// ParseSubmission builds a Submission from flat form fields.
//
// Numeric fields parse permissively: a malformed or absent count reads as
// zero, never an error. The business line count is forced to zero unless the
// business design field carries the "yes" sentinel. Line texts are collected
// by positional lookup (line1..lineN, businessLine1..businessLineM); a
// missing position reads as an empty string.
func ParseSubmission(fields map[string]string) Submission {
	sub := Submission{
		PlayerName:     fields["playerName"],
		TeamName:       fields["teamName"],
		Email:          fields["email"],
		ShirtSize:      fields["shirtSize"],
		TermsAccepted:  accepted(fields["terms"]),
		BusinessDesign: fields["businessDesign"],
	}

	sub.PlayerLineCount = parseCount(fields["lineCount"])
	sub.PlayerLines = collectLines(fields, "line", sub.PlayerLineCount)

	if sub.BusinessDesignRequested() {
		sub.BusinessLineCount = parseCount(fields["businessLines"])
		sub.BusinessLines = collectLines(fields, "businessLine", sub.BusinessLineCount)
	}

	return sub
}

func accepted(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && trimmed != "false"
}

func parseCount(value string) int {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func collectLines(fields map[string]string, prefix string, count int) []string {
	if count <= 0 {
		return nil
	}
	lines := make([]string, count)
	for i := 1; i <= count; i++ {
		lines[i-1] = fields[prefix+strconv.Itoa(i)]
	}
	return lines
}

// Record is the durable, priced, timestamped representation of one
// submission. Once appended to the ledger it is never modified or deleted.
type Record struct {
	Timestamp  time.Time
	PlayerName string
	TeamName   string
	Email      string
	ShirtSize  string

	PlayerLineCount int
	PlayerLines     []string

	BusinessDesign    string
	BusinessLineCount int
	BusinessLines     []string

	TotalAmount int
}

// NewRecord freezes one submission into a ledger record at the given time.
func NewRecord(sub Submission, at time.Time, totalAmount int) Record {
	design := strings.TrimSpace(sub.BusinessDesign)
	if design == "" {
		design = defaultBusinessDesign
	}
	return Record{
		Timestamp:         at.UTC(),
		PlayerName:        sub.PlayerName,
		TeamName:          sub.TeamName,
		Email:             sub.Email,
		ShirtSize:         sub.ShirtSize,
		PlayerLineCount:   sub.PlayerLineCount,
		PlayerLines:       sub.PlayerLines,
		BusinessDesign:    design,
		BusinessLineCount: sub.BusinessLineCount,
		BusinessLines:     sub.BusinessLines,
		TotalAmount:       totalAmount,
	}
}

// PlayerLine returns the player line text at zero-based position i, or an
// empty string when the position was never filled.
func (r Record) PlayerLine(i int) string {
	if i < 0 || i >= len(r.PlayerLines) {
		return ""
	}
	return r.PlayerLines[i]
}

// BusinessLine returns the business line text at zero-based position i, or
// an empty string when the position was never filled.
func (r Record) BusinessLine(i int) string {
	if i < 0 || i >= len(r.BusinessLines) {
		return ""
	}
	return r.BusinessLines[i]
}

// OrderSummary is the index-friendly view of one record: counts and totals
// without the line texts. The CSV ledger remains the source of truth.
type OrderSummary struct {
	CreatedAt      time.Time
	PlayerName     string
	TeamName       string
	Email          string
	ShirtSize      string
	PlayerLines    int
	BusinessDesign bool
	BusinessLines  int
	TotalAmount    int
}

// Summary derives the index view of the record.
func (r Record) Summary() OrderSummary {
	return OrderSummary{
		CreatedAt:      r.Timestamp,
		PlayerName:     r.PlayerName,
		TeamName:       r.TeamName,
		Email:          r.Email,
		ShirtSize:      r.ShirtSize,
		PlayerLines:    r.PlayerLineCount,
		BusinessDesign: r.BusinessDesign == businessDesignYes,
		BusinessLines:  r.BusinessLineCount,
		TotalAmount:    r.TotalAmount,
	}
}
