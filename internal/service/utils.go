package service

import (
	"errors"
	"strings"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// asDomainError keeps typed errors and files everything else under storage.
func asDomainError(op string, err error) *domain.Error {
	if de, ok := domain.AsError(err); ok {
		return de
	}
	return domain.StorageError(op, err)
}

// trimmedOrNil returns nil for absent or blank text.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
