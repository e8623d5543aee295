package httpadapter

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// limiterCapacity bounds how many profiles have a live bucket and how many
// admitted idempotency keys are remembered. An evicted profile starts again
// with a full burst.
const limiterCapacity = 10000

// profileLimiter is a token bucket per profile for write endpoints. A
// purchase key that was let through once is not charged again, so a retry
// reaches the stored outcome instead of a 429.
type profileLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	buckets  *lru.Cache
	admitted *lru.Cache
}

// newProfileLimiter returns nil when rps is not positive, which disables
// limiting.
func newProfileLimiter(rps float64, burst int) *profileLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	buckets, err := lru.New(limiterCapacity)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	admitted, err := lru.New(limiterCapacity)
	if err != nil {
		panic(err)
	}
	return &profileLimiter{limit: rate.Limit(rps), burst: burst, buckets: buckets, admitted: admitted}
}

// allowKey is allow for a purchase carrying an idempotency key.
func (l *profileLimiter) allowKey(profileID, key string) bool {
	if l == nil {
		return true
	}
	id := profileID + "\x00" + key
	if l.admitted.Contains(id) {
		return true
	}
	if !l.allow(profileID) {
		return false
	}
	l.admitted.Add(id, struct{}{})
	return true
}

func (l *profileLimiter) allow(profileID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	var lim *rate.Limiter
	if v, ok := l.buckets.Get(profileID); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.buckets.Add(profileID, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}

// limitProfile applies the limiter to routes carrying {profileID}.
func (h *Handler) limitProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(chi.URLParam(r, "profileID")) {
			writeJSON(w, http.StatusTooManyRequests, errorResp{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
