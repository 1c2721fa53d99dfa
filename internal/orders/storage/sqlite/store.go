// Package sqlite provides the SQLite-backed order index.
//
// The index mirrors order summaries for the admin recent-orders view; the
// CSV ledger stays the source of truth and index writes are best effort.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dtanque/shirt-orders/internal/orders/domain"
	"github.com/dtanque/shirt-orders/internal/orders/storage/sqlite/migrations"
	sqlitemigrate "github.com/dtanque/shirt-orders/internal/platform/storage/sqlitemigrate"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Store persists order summaries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite order index and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordOrder inserts one order summary.
func (s *Store) RecordOrder(ctx context.Context, summary domain.OrderSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	createdAt := summary.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO orders (
		   created_at,
		   player_name,
		   team_name,
		   email,
		   shirt_size,
		   player_lines,
		   business_design,
		   business_lines,
		   total_amount
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UnixMilli(),
		summary.PlayerName,
		summary.TeamName,
		summary.Email,
		summary.ShirtSize,
		summary.PlayerLines,
		boolToInt(summary.BusinessDesign),
		summary.BusinessLines,
		summary.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert order summary: %w", err)
	}
	return nil
}

// ListRecentOrders returns up to limit order summaries, newest first. A
// non-positive limit defaults to 50; limits above 200 are clamped.
func (s *Store) ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT created_at, player_name, team_name, email, shirt_size,
		        player_lines, business_design, business_lines, total_amount
		   FROM orders
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []domain.OrderSummary
	for rows.Next() {
		var (
			summary        domain.OrderSummary
			createdAt      int64
			businessDesign int
		)
		if err := rows.Scan(
			&createdAt,
			&summary.PlayerName,
			&summary.TeamName,
			&summary.Email,
			&summary.ShirtSize,
			&summary.PlayerLines,
			&businessDesign,
			&summary.BusinessLines,
			&summary.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		summary.CreatedAt = time.UnixMilli(createdAt).UTC()
		summary.BusinessDesign = businessDesign != 0
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order summaries: %w", err)
	}
	return summaries, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
