package handlers

import (
	"errors"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/services"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func queryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// queryDate returns fallback when the parameter is absent.
func queryDate(r *http.Request, name string, fallback domain.Date) (domain.Date, error) {
	v := queryString(r, name)
	if v == "" {
		return fallback, nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%s must be a YYYY-MM-DD date", name)
	}
	return d, nil
}

func queryPeriod(r *http.Request) (services.Period, error) {
	from, err := queryDate(r, "from", domain.Date{})
	if err != nil {
		return services.Period{}, err
	}
	to, err := queryDate(r, "to", domain.Date{})
	if err != nil {
		return services.Period{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return services.Period{}, errors.New("from must not be after to")
	}
	return services.Period{From: from, To: to}, nil
}

func queryInt(r *http.Request, name string, fallback, lo, hi int) (int, error) {
	v := queryString(r, name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return n, nil
}
