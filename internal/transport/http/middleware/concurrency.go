package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "kind-link-bridge/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests so the single SQLite writer is not
// buried under a queue it cannot drain.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !sem.TryAcquire(1) {
			abort(c, resp.KindTooManyRequests, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
