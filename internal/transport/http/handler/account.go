package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kind-link-bridge/internal/core/auth"
	"kind-link-bridge/internal/domain"
	"kind-link-bridge/internal/service"
	"kind-link-bridge/internal/transport/http/ez"
)

type AccountHandler struct {
	svc *service.AccountService
	jwt *auth.JWTer
}

// NewAccountHandler serves /signup and /login. With a nil j no token is
// attached to the response.
func NewAccountHandler(svc *service.AccountService, j *auth.JWTer) *AccountHandler {
	return &AccountHandler{svc: svc, jwt: j}
}

type signupIn struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userOut struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

// Priority mounts the public routes first.
func (h *AccountHandler) Priority() int { return 10 }

func (h *AccountHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[signupIn, userOut]{
		Method: http.MethodPost,
		Path:   "/signup",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *signupIn) (userOut, error) {
			u, err := h.svc.Signup(c.Request.Context(), in.Username, in.Email, in.Password)
			if err != nil {
				return userOut{}, err
			}
			return h.withToken(u)
		},
	})

	ez.RegisterAction(e, ez.Action[loginIn, userOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (userOut, error) {
			u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return userOut{}, err
			}
			return h.withToken(u)
		},
	})
}

func (h *AccountHandler) withToken(u *domain.User) (userOut, error) {
	out := userOut{ID: u.ID, Username: u.Username, Email: u.Email}
	if h.jwt == nil {
		return out, nil
	}
	tok, err := h.jwt.Issue(u.ID)
	if err != nil {
		return userOut{}, ez.Internal("issue token", err)
	}
	out.Token = tok
	return out, nil
}
