package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/server/models"
)

// maxRangeDays caps analytics ranges; the orders chart holds one point per day.
const maxRangeDays = 3660

// parseIDs reads wb_lk_ids ("1,2,3"). Blank yields no ids.
func parseIDs(q url.Values) ([]int64, error) {
	raw := strings.TrimSpace(q.Get(common.AccountsParam))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: bad %s value %q", common.ErrValidation, common.AccountsParam, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseRange reads date_from and date_to. A missing bound falls back to the
// default trailing window ending today.
func (h *Handler) parseRange(q url.Values) (daterange.Range, error) {
	rng := daterange.Default(daterange.Today(h.now()))
	if s := q.Get("date_from"); s != "" {
		d, err := daterange.Parse(s)
		if err != nil {
			return daterange.Range{}, err
		}
		rng.From = d
	}
	if s := q.Get("date_to"); s != "" {
		d, err := daterange.Parse(s)
		if err != nil {
			return daterange.Range{}, err
		}
		rng.To = d
	}
	rng, err := daterange.NewRange(rng.From, rng.To)
	if err != nil {
		return daterange.Range{}, err
	}
	if rng.Days() > maxRangeDays {
		return daterange.Range{}, fmt.Errorf("%w: range %s exceeds %d days", common.ErrValidation, rng, maxRangeDays)
	}
	return rng, nil
}

func (h *Handler) ordersChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := parseIDs(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rng, err := h.parseRange(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	chart, err := h.analytics.OrdersChart(r.Context(), UserID(r.Context()), ids, rng)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := parseIDs(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rng, err := h.parseRange(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	list, err := h.analytics.Products(r.Context(), UserID(r.Context()), ids, rng)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Product{"products": list})
}

// stocks reports the current total; the date range is accepted but stock
// is a snapshot.
func (h *Handler) stocks(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	total, err := h.analytics.Stocks(r.Context(), UserID(r.Context()), ids)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_stocks": total})
}
