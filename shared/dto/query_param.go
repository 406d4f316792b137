package dto

import (
	"net/http"
	"strconv"
	"strings"

	"furk/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Invalid or non-positive values are ignored. With applyDefaults set, missing
// page and limit fall back to the configured defaults; list endpoints always
// set it so an unpaginated request cannot dump a table.
func (q *QueryParams) FromRequest(r *http.Request, applyDefaults bool) {
	queryParams := r.URL.Query()

	if page, err := strconv.Atoi(queryParams.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(queryParams.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = limit
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir))
	if sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if applyDefaults {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}
