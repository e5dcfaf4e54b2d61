package middleware

import (
	"github.com/gin-gonic/gin"

	resp "kind-link-bridge/internal/transport/http/response"
)

// RecoverJSON is the gin.RecoveryFunc paired with ginzap's recovery logger:
// the panic is logged there, the client sees a plain InternalError.
func RecoverJSON(c *gin.Context, _ any) {
	abort(c, resp.KindInternal, "")
}
