package httpadapter

import (
	"net/http"
	"strings"

	"mesa-boost/internal/core/domain"
)

const maxRankLimit = 500

// handleRank returns profiles ordered for a listing surface. candidates is
// an optional comma separated baseline order supplied by the caller.
func (h *Handler) handleRank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(r, "limit")
	if err != nil || limit > maxRankLimit {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid limit"})
		return
	}
	lc := domain.ListingContext{
		Category: q.Get("category"),
		Region:   q.Get("region"),
		Limit:    limit,
	}
	if c := q.Get("candidates"); c != "" {
		for _, id := range strings.Split(c, ",") {
			if id = strings.TrimSpace(id); id != "" {
				lc.Candidates = append(lc.Candidates, id)
			}
		}
	}

	ranked, err := h.ranking.RankForListing(r.Context(), lc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}
