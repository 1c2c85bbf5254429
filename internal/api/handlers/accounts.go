package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type AccountHandler struct {
	acc *services.AccountService
}

func NewAccountHandler(acc *services.AccountService) *AccountHandler {
	return &AccountHandler{acc: acc}
}

type createAccountReq struct {
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if e := validate.Required("name", req.Name); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	a, err := h.acc.Create(r.Context(), chi.URLParam(r, "workspaceID"), req.Name, req.Currency, req.OpeningBalance)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	list, err := h.acc.List(r.Context(), chi.URLParam(r, "workspaceID"), includeArchived)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.acc.Get(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "accountID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *AccountHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if e := validate.Required("name", req.Name); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	a, err := h.acc.Rename(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "accountID"), req.Name)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

// Archive retires the account. Its history stays readable but no new
// transactions may touch it.
func (h *AccountHandler) Archive(w http.ResponseWriter, r *http.Request) {
	err := h.acc.Archive(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "accountID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.NoContent(w)
}
