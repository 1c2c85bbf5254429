package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/middleware"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type WorkspaceHandler struct {
	ws  *services.WorkspaceService
	mem *middleware.Memberships
}

func NewWorkspaceHandler(ws *services.WorkspaceService, mem *middleware.Memberships) *WorkspaceHandler {
	return &WorkspaceHandler{ws: ws, mem: mem}
}

type createWorkspaceReq struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("name", req.Name),
		validate.Required("currency", req.Currency),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		writeErr(w, errs)
		return
	}

	user := middleware.FromCtx(r.Context())
	ws, err := h.ws.Create(r.Context(), user.UserID, req.Name, req.Currency)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ws)
}

func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.FromCtx(r.Context())
	list, err := h.ws.ListMine(r.Context(), user.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.ws.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ws)
}

type inviteReq struct {
	Email string `json:"email"`
}

func (h *WorkspaceHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if e := validate.Required("email", req.Email); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	user := middleware.FromCtx(r.Context())
	inv, err := h.ws.Invite(r.Context(), chi.URLParam(r, "workspaceID"), user.UserID, req.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, inv)
}

// ListInvitations shows every invitation of the workspace, any status.
func (h *WorkspaceHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	list, err := h.ws.WorkspaceInvitations(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// MyInvitations shows the caller's still-acceptable invitations.
func (h *WorkspaceHandler) MyInvitations(w http.ResponseWriter, r *http.Request) {
	user := middleware.FromCtx(r.Context())
	list, err := h.ws.MyInvitations(r.Context(), user.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *WorkspaceHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := middleware.FromCtx(r.Context())
	ws, err := h.ws.Accept(r.Context(), chi.URLParam(r, "token"), user.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.mem.Invalidate(ws.ID, user.UserID)
	httpx.WriteJSON(w, http.StatusOK, ws)
}

func (h *WorkspaceHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	err := h.ws.Revoke(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "invitationID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.NoContent(w)
}
