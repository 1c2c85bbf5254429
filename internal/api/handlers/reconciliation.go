package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/middleware"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type ReconciliationHandler struct {
	rec *services.ReconciliationService
}

func NewReconciliationHandler(rec *services.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{rec: rec}
}

// View compares the account's calculated balance against the recorded
// actual one, optionally as of a past moment.
func (h *ReconciliationHandler) View(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "as_of must be RFC3339", nil)
			return
		}
		asOf = t
	}
	view, err := h.rec.View(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "accountID"), asOf)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

type recordBalanceReq struct {
	NewBalance *decimal.Decimal `json:"new_balance"`
	Note       string           `json:"note"`
}

type recordBalanceResp struct {
	Account models.Account            `json:"account"`
	Event   models.BalanceUpdateEvent `json:"event"`
}

// Record stores what the user counted on the real account. Zero and
// negative balances are legitimate, so only a missing value is rejected.
func (h *ReconciliationHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordBalanceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if req.NewBalance == nil {
		writeErr(w, validate.Errs{{Field: "new_balance", Msg: "required"}})
		return
	}
	user := middleware.FromCtx(r.Context())
	account, ev, err := h.rec.RecordActualBalance(r.Context(),
		chi.URLParam(r, "workspaceID"), chi.URLParam(r, "accountID"),
		*req.NewBalance, user.UserID, req.Note)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, recordBalanceResp{Account: account, Event: ev})
}

// History lists balance updates newest first, annotated with the time
// since the previous update of the same account.
func (h *ReconciliationHandler) History(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, r.URL.Query().Get("account_id"))
}

// AccountHistory is History pinned to the account in the path.
func (h *ReconciliationHandler) AccountHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, chi.URLParam(r, "accountID"))
}

func (h *ReconciliationHandler) history(w http.ResponseWriter, r *http.Request, accountID string) {
	q := r.URL.Query()
	f := models.BalanceUpdateFilter{
		WorkspaceID: chi.URLParam(r, "workspaceID"),
		AccountID:   accountID,
	}
	var err error
	if f.From, err = parseTime(q.Get("from")); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "from must be RFC3339", nil)
		return
	}
	if f.To, err = parseTime(q.Get("to")); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "to must be RFC3339", nil)
		return
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	list, err := h.rec.History(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
