// Package csvledger persists order records in a single append-only CSV file.
//
// The file format is fixed width: one unquoted header row of 39 columns, then
// one row per order with every field double-quote wrapped. Embedded quotes
// and commas are deliberately NOT escaped. Downstream consumers of the
// existing ledgers expect exactly this shape, so the serialization must not
// be "fixed" to proper CSV escaping.
package csvledger

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dtanque/shirt-orders/internal/orders/domain"
)

// ColumnCount is the fixed ledger row width:
// 6 base fields + 20 player lines + 2 business fields + 10 business lines +
// 1 total.
const ColumnCount = 6 + domain.MaxStoredPlayerLines + 2 + domain.MaxStoredBusinessLines + 1

// Ledger owns one append-only CSV order log. Appends are serialized by an
// in-process mutex so concurrent submissions never produce a torn or merged
// row.
type Ledger struct {
	path string

	mu sync.Mutex
}

// Open binds a ledger to path, creating the file with its header row when it
// does not exist yet. Reopening an existing ledger leaves its contents
// untouched, so calling Open on every process start is safe.
func Open(path string) (*Ledger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	ledger := &Ledger{path: path}
	if err := ledger.ensureHeader(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Path returns the ledger file location for bulk export.
func (l *Ledger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append durably writes one record as a single fixed-width row. On error the
// record is considered not persisted.
func (l *Ledger) Append(ctx context.Context, record domain.Record) error {
	if l == nil {
		return fmt.Errorf("ledger is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row := formatRow(record)

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger for append: %w", err)
	}
	if _, err := file.WriteString(row); err != nil {
		_ = file.Close()
		return fmt.Errorf("append ledger row: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("sync ledger: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}

func (l *Ledger) ensureHeader() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	if err := os.WriteFile(l.path, []byte(headerRow()), 0o644); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	return nil
}

// Header returns the fixed 39-column header line without trailing newline.
func Header() string {
	return strings.Join(headerColumns(), ",")
}

func headerRow() string {
	return Header() + "\n"
}

func headerColumns() []string {
	columns := make([]string, 0, ColumnCount)
	columns = append(columns,
		"Timestamp",
		"Player Name",
		"Team/Coach",
		"Email",
		"Shirt Size",
		"Number of Player Lines",
	)
	for i := 1; i <= domain.MaxStoredPlayerLines; i++ {
		columns = append(columns, "Player Line "+strconv.Itoa(i))
	}
	columns = append(columns,
		"Business Design Purchased",
		"Number of Business Lines",
	)
	for i := 1; i <= domain.MaxStoredBusinessLines; i++ {
		columns = append(columns, "Business Line "+strconv.Itoa(i))
	}
	columns = append(columns, "Total Amount")
	return columns
}

func formatRow(record domain.Record) string {
	fields := make([]string, 0, ColumnCount)
	fields = append(fields,
		record.Timestamp.UTC().Format(time.RFC3339),
		record.PlayerName,
		record.TeamName,
		record.Email,
		record.ShirtSize,
		strconv.Itoa(record.PlayerLineCount),
	)
	for i := 0; i < domain.MaxStoredPlayerLines; i++ {
		fields = append(fields, record.PlayerLine(i))
	}
	fields = append(fields,
		record.BusinessDesign,
		strconv.Itoa(record.BusinessLineCount),
	)
	for i := 0; i < domain.MaxStoredBusinessLines; i++ {
		fields = append(fields, record.BusinessLine(i))
	}
	fields = append(fields, strconv.Itoa(record.TotalAmount))

	var row strings.Builder
	for idx, field := range fields {
		if idx > 0 {
			row.WriteByte(',')
		}
		// Naive quote wrap, no escaping: the mandated ledger shape.
		row.WriteByte('"')
		row.WriteString(field)
		row.WriteByte('"')
	}
	row.WriteByte('\n')
	return row.String()
}
