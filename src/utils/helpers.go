package utils

import (
	"deskpool/src/config"
	"deskpool/src/types"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsISODate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsISODate(s string) bool {
	if !isoDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(config.DATE_FORMAT, s)
	return err == nil
}

// NormalizeCoord maps legacy percent coordinates (0..100) onto the
// canonical 0..1 fraction. Values already in 0..1 pass through.
func NormalizeCoord(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// DedupeSeatIDs collapses duplicates while preserving first-seen order.
func DedupeSeatIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// HTTPStatus maps an engine error kind to the transport status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrPoolNotConfigured):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNoSupervisor), errors.Is(err, types.ErrSeatNotEnabled):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
