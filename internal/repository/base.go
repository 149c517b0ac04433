// Package repository provides the storage layer for the engine: the
// relationship, engagement, moderation and content stores, plus the
// cascade coordinator. All uniqueness-constrained inserts are single
// atomic insert-if-absent statements; an exists-check followed by an
// insert would race under concurrent identical requests.
package repository

import (
	"errors"
	"net"
	"strings"

	"snipshare/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// classifyError maps raw storage errors onto the engine taxonomy.
// Unique violations become duplicate edges; connection-class failures
// become retryable storage-unavailable errors.
func classifyError(err error, kind string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return models.NewDuplicateEdgeError(kind)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01":
			return models.NewStorageUnavailableError(err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return models.NewStorageUnavailableError(err)
	}
	if errors.Is(err, gorm.ErrInvalidDB) {
		return models.NewStorageUnavailableError(err)
	}

	return models.NewInternalError(err)
}

// notFoundOr translates gorm's record-not-found into the taxonomy.
func notFoundOr(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return classifyError(err, resource)
}
