package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type RecurringHandler struct {
	recs *services.RecurringService
}

func NewRecurringHandler(recs *services.RecurringService) *RecurringHandler {
	return &RecurringHandler{recs: recs}
}

type createRecurringReq struct {
	AccountID  string          `json:"account_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *string         `json:"category_id"`
	Note       string          `json:"note"`
	Frequency  string          `json:"frequency"`
	NextRunAt  time.Time       `json:"next_run_at"`
}

func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecurringReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("account_id", req.AccountID),
		validate.Required("type", req.Type),
		validate.Required("frequency", req.Frequency),
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

	rec, err := h.recs.Create(r.Context(), chi.URLParam(r, "workspaceID"), services.RecurringInput{
		AccountID:  req.AccountID,
		Type:       models.TransactionType(req.Type),
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Frequency:  models.Frequency(req.Frequency),
		NextRunAt:  req.NextRunAt,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rec)
}

func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.recs.List(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *RecurringHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recs.Get(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "recurringID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

type updateRecurringReq struct {
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *string         `json:"category_id"`
	Note       string          `json:"note"`
	Frequency  string          `json:"frequency"`
	NextRunAt  time.Time       `json:"next_run_at"`
	Active     bool            `json:"active"`
}

func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRecurringReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	rec, err := h.recs.Update(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "recurringID"), services.RecurringUpdate{
		Type:       models.TransactionType(req.Type),
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Frequency:  models.Frequency(req.Frequency),
		NextRunAt:  req.NextRunAt,
		Active:     req.Active,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.recs.Delete(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "recurringID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.NoContent(w)
}
