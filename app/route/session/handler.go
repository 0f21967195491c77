package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/auth"
	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/store"
)

type HandlerGroup struct {
	store    *store.File
	secret   []byte
	tokenTTL time.Duration
}

func NewHandlerGroup(store *store.File, secret []byte, tokenTTL time.Duration) *HandlerGroup {
	return &HandlerGroup{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Mount registers the unauthenticated session routes.
func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Post("/api/login", hg.handleLogin)
}

// MountProtected registers the routes that require a valid token.
func (hg *HandlerGroup) MountProtected(r chi.Router) {
	r.Post("/api/change-password", hg.handleChangePassword)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginRequest satisfies [render.Binder]
func (req *loginRequest) Bind(*http.Request) error {
	if req.Username == "" || req.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

func (hg *HandlerGroup) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := &loginRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusBadRequest, err)
		return
	}

	var user *domain.User
	if err := hg.store.View(func(st *store.State) error {
		user = st.User
		return nil
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}

	if user == nil || user.Username != req.Username ||
		!auth.CheckPassword(user.PasswordHash, req.Password) {
		apiError(w, r, http.StatusUnauthorized, errors.New("wrong username or password"))
		return
	}

	token, err := auth.GenerateToken(user.Username, hg.secret, hg.tokenTTL)
	if err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, map[string]string{"token": token})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// changePasswordRequest satisfies [render.Binder]
func (req *changePasswordRequest) Bind(*http.Request) error {
	if req.OldPassword == "" {
		return errors.New("old password is required")
	}
	if len(req.NewPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	return nil
}

func (hg *HandlerGroup) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	req := &changePasswordRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusBadRequest, err)
		return
	}

	err := hg.store.Update(func(st *store.State) error {
		if st.User == nil || !auth.CheckPassword(st.User.PasswordHash, req.OldPassword) {
			return errWrongPassword
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		st.User.PasswordHash = hash
		return nil
	})
	if err != nil {
		if errors.Is(err, errWrongPassword) {
			apiError(w, r, http.StatusBadRequest, err)
		} else {
			apiError(w, r, http.StatusInternalServerError, err)
		}
		return
	}
	render.JSON(w, r, map[string]string{"message": "password changed"})
}

var errWrongPassword = errors.New("the old password is not correct")

func apiError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
