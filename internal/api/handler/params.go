package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/middleware"
	"github.com/vfg2006/bizhub-api/pkg/utils"
)

const defaultPageSize = 20

// callerOwnerID resolve o identificador de escopo do chamador a partir das
// claims do token. Requisições sem claims caem no sentinela de owner padrão.
func callerOwnerID(r *http.Request) string {
	claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims.OwnerID()
}

func callerClaims(r *http.Request) *domain.Claims {
	claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims
}

// parsePagination lê limit/offset da query string, com página padrão de 20
func parsePagination(r *http.Request) (uint64, uint64) {
	limit := uint64(defaultPageSize)
	offset := uint64(0)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			offset = parsed
		}
	}

	return limit, offset
}

// parseDateRange lê start_date/end_date (YYYY-MM-DD) da query string,
// ignorando valores malformados
func parseDateRange(r *http.Request) (*time.Time, *time.Time) {
	var startDate, endDate *time.Time

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if parsed, err := utils.ParseDate(raw); err == nil {
			startDate = parsed
		}
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if parsed, err := utils.ParseDate(raw); err == nil {
			endDate = parsed
		}
	}

	return startDate, endDate
}
