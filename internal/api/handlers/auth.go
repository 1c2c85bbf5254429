package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/middleware"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResp struct {
	User   models.User    `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("username", req.Username),
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		writeErr(w, errs)
		return
	}

	u, pair, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sessionResp{User: u, Tokens: pair})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	u, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResp{User: u, Tokens: pair})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		badBody(w)
		return
	}
	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// Me returns the session bootstrap: the user, their workspaces, pending
// invitations and the screen the client should open.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.FromCtx(r.Context())
	view, err := h.users.Me(r.Context(), user.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}
