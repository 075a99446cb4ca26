// Package repository implements Postgres data access for every entity.
// Repositories are injected into services; nothing in the application reads
// or writes rows directly.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// recordMetrics records operation duration and count for database operations
func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

// nilIfEmpty returns nil if string is empty, otherwise returns pointer to string
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
