package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type CategoryHandler struct {
	cats *services.CategoryService
}

func NewCategoryHandler(cats *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{cats: cats}
}

type categoryReq struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if e := validate.Required("name", req.Name); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	c, err := h.cats.Create(r.Context(), chi.URLParam(r, "workspaceID"), req.Name)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.cats.List(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody(w)
		return
	}
	if e := validate.Required("name", req.Name); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	c, err := h.cats.Rename(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "categoryID"), req.Name)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// Delete removes the category; its transactions become uncategorized.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.cats.Delete(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "categoryID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.NoContent(w)
}
