package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "kind-link-bridge/internal/transport/http/middleware"
	resp "kind-link-bridge/internal/transport/http/response"
)

type Binder string

const (
	BindJSON Binder = "json" // request body
	BindURI  Binder = "uri"  // path params, e.g. /dashboard/:user_id
	BindNone Binder = "none"
)

// Owned is implemented by inputs that act on one user's rows.
type Owned interface{ OwnerID() int64 }

// Action is one route: bind I, run Handler, render O or a mapped error.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Owner requires the bearer token's uid to equal the input's OwnerID when
	// the EZ was built with requireToken.
	Owner   bool
	Handler func(c *gin.Context, in *I) (O, error)
}

type EZ struct {
	g            gin.IRoutes
	log          *zap.Logger
	requireToken bool
}

func New(g gin.IRoutes, l *zap.Logger, requireToken bool) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l, requireToken: requireToken}
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		default:
		}
		if bindErr != nil {
			e.fail(c, BadRequest(bindErr.Error()))
			return
		}

		if a.Owner && e.requireToken {
			if err := checkOwner(c, &in); err != nil {
				e.fail(c, err)
				return
			}
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func checkOwner(c *gin.Context, in any) error {
	uid, ok := c.Get(mdw.KeyUserID)
	if !ok {
		return Unauthorized("missing token")
	}
	o, ok := in.(Owned)
	if !ok || o.OwnerID() != uid.(int64) {
		return Forbidden("token does not match user_id")
	}
	return nil
}

func (e EZ) fail(c *gin.Context, err error) {
	kind, msg := Classify(err)
	_ = c.Error(err)
	if kind == resp.KindInternal {
		e.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(resp.Status(kind), resp.Error(kind, msg))
}
