package handling

import (
	"fmt"
	"net/http"
	"strings"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"time"
)

// ParseOrderFilters reads from, to, id and status from the query string. Dates accept
// RFC 3339 or YYYY-MM-DD; a date-only "to" covers the whole day.
func ParseOrderFilters(r *http.Request) (structs.OrderFilters, error) {
	query := r.URL.Query()

	from, to, err := parseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return structs.OrderFilters{}, err
	}

	return structs.OrderFilters{
		From:   from,
		To:     to,
		ID:     strings.TrimSpace(query.Get("id")),
		Status: strings.TrimSpace(query.Get("status")),
	}, nil
}

// ParseStatsFilters reads from, to, status and category from the query string
func ParseStatsFilters(r *http.Request) (structs.StatsFilters, error) {
	query := r.URL.Query()

	from, to, err := parseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return structs.StatsFilters{}, err
	}

	return structs.StatsFilters{
		From:     from,
		To:       to,
		Status:   strings.TrimSpace(query.Get("status")),
		Category: strings.TrimSpace(query.Get("category")),
	}, nil
}

func parseRange(fromRaw, toRaw string) (from, to *time.Time, err error) {
	if from, err = lib.ParseTimeBound(fromRaw, false); err != nil {
		return nil, nil, fmt.Errorf("%w: from: %v", lib.ErrInvalidInput, err)
	}
	if to, err = lib.ParseTimeBound(toRaw, true); err != nil {
		return nil, nil, fmt.Errorf("%w: to: %v", lib.ErrInvalidInput, err)
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: from is after to", lib.ErrInvalidInput)
	}
	return from, to, nil
}
