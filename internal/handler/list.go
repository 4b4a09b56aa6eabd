package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type ListHandler struct {
	uc     usecase.ListUseCase
	logger *slog.Logger
}

func NewListHandler(uc usecase.ListUseCase, logger *slog.Logger) *ListHandler {
	return &ListHandler{uc: uc, logger: logger}
}

func (h *ListHandler) Routes(r chi.Router) {
	r.Get("/lists/{id}", h.Get)
	r.Get("/lists/{id}/items", h.Items)
	r.Get("/users/{id}/lists", h.ByUser)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.logger))
		r.Get("/users/me/lists/shared", h.SharedWithMe)
		r.Post("/lists", h.Create)
		r.Put("/lists/{id}", h.Update)
		r.Delete("/lists/{id}", h.Delete)
		r.Post("/lists/{id}/items", h.AddItem)
		r.Delete("/lists/{id}/items/{itemId}", h.RemoveItem)
		r.Post("/lists/{id}/shares", h.Share)
		r.Delete("/lists/{id}/shares/{userId}", h.Unshare)
	})
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.ListInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	list, err := h.uc.Create(r.Context(), CallerFrom(r.Context()), in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, list, h.logger)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	list, err := h.uc.Get(r.Context(), CallerFrom(r.Context()), id)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, list, h.logger)
}

func (h *ListHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	lists, err := h.uc.ByUser(r.Context(), CallerFrom(r.Context()), id, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, lists, h.logger)
}

func (h *ListHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	lists, err := h.uc.SharedWithMe(r.Context(), CallerFrom(r.Context()), page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, lists, h.logger)
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.ListInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	list, err := h.uc.Update(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, list, h.logger)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Delete(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	items, err := h.uc.Items(r.Context(), CallerFrom(r.Context()), id)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, items, h.logger)
}

func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.ListItemInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	item, err := h.uc.AddItem(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, item, h.logger)
}

func (h *ListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.RemoveItem(r.Context(), CallerFrom(r.Context()), id, itemID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.ShareInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	share, err := h.uc.Share(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, share, h.logger)
}

func (h *ListHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Unshare(r.Context(), CallerFrom(r.Context()), id, userID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
