package httpapi

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Per-client limits. The API fronts a static content site, so bursts from
// a page load are fine but sustained hammering is not.
const (
	requestsPerSecond = 20
	burstSize         = 40
)

// rateLimit returns middleware enforcing a per-client token bucket keyed
// by remote address. RealIP middleware must run first so the key is the
// client, not a proxy.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(addr string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[addr]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[addr] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(r.RemoteAddr).Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
