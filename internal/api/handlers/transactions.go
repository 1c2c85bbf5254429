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
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type TransactionHandler struct {
	txs *services.TransactionService
}

func NewTransactionHandler(txs *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txs: txs}
}

type transactionReq struct {
	AccountID  string          `json:"account_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
	CategoryID *string         `json:"category_id"`
	Note       string          `json:"note"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("account_id", req.AccountID),
		validate.Required("type", req.Type),
		validate.Positive("amount", req.Amount),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		writeErr(w, errs)
		return
	}

	tx, err := h.txs.Create(r.Context(), chi.URLParam(r, "workspaceID"), services.TransactionInput{
		AccountID:  req.AccountID,
		Type:       models.TransactionType(req.Type),
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.txs.Get(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "transactionID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tx)
}

// List filters by account, category, type, time window and note text.
// Unknown filters are ignored; malformed timestamps are a client error.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.TransactionFilter{
		WorkspaceID: chi.URLParam(r, "workspaceID"),
		AccountID:   q.Get("account_id"),
		CategoryID:  q.Get("category_id"),
		Type:        models.TransactionType(q.Get("type")),
		Query:       q.Get("q"),
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
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	list, err := h.txs.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req transactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	tx, err := h.txs.Update(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "transactionID"), services.TransactionUpdate{
		Type:       models.TransactionType(req.Type),
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tx)
}

// Delete soft deletes the transaction; deleting one transfer leg
// removes both.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.txs.Delete(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "transactionID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.NoContent(w)
}

type transferReq struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Note          string          `json:"note"`
}

type transferResp struct {
	Outgoing models.Transaction `json:"outgoing"`
	Incoming models.Transaction `json:"incoming"`
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("from_account_id", req.FromAccountID),
		validate.Required("to_account_id", req.ToAccountID),
		validate.Positive("amount", req.Amount),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		writeErr(w, errs)
		return
	}

	out, in, err := h.txs.Transfer(r.Context(), chi.URLParam(r, "workspaceID"), services.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		OccurredAt:    req.OccurredAt,
		Note:          req.Note,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, transferResp{Outgoing: out, Incoming: in})
}

func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
