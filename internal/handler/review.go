package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type ReviewHandler struct {
	uc     usecase.ReviewUseCase
	logger *slog.Logger
}

func NewReviewHandler(uc usecase.ReviewUseCase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

func (h *ReviewHandler) Routes(r chi.Router) {
	r.Get("/reviews/{kind}/{itemId}", h.ListByItem)
	r.Get("/users/{id}/reviews/{kind}", h.ListByUser)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.logger))
		r.Post("/reviews/{kind}/{itemId}", h.Create)
		r.Put("/reviews/{kind}/{itemId}", h.Update)
		r.Delete("/reviews/{kind}/{itemId}", h.Delete)

		r.Post("/reviews/{kind}/{itemId}/reviews/{reviewId}/upvote", h.vote(true))
		r.Delete("/reviews/{kind}/{itemId}/reviews/{reviewId}/upvote", h.unvote(true))
		r.Post("/reviews/{kind}/{itemId}/reviews/{reviewId}/downvote", h.vote(false))
		r.Delete("/reviews/{kind}/{itemId}/reviews/{reviewId}/downvote", h.unvote(false))
	})
}

func (h *ReviewHandler) ListByItem(w http.ResponseWriter, r *http.Request) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	reviews, err := h.uc.ListByItem(r.Context(), CallerFrom(r.Context()), kind, itemID, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews, h.logger)
}

func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	kind, userID, err := kindAndID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	reviews, err := h.uc.ListByUser(r.Context(), CallerFrom(r.Context()), kind, userID, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews, h.logger)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusCreated, h.uc.Create)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusOK, h.uc.Update)
}

type reviewWriter func(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, in usecase.ReviewInput) (*mapper.ReviewView, error)

func (h *ReviewHandler) write(w http.ResponseWriter, r *http.Request, code int, fn reviewWriter) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	review, err := fn(r.Context(), CallerFrom(r.Context()), kind, itemID, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, code, review, h.logger)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Delete(r.Context(), CallerFrom(r.Context()), kind, itemID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) vote(up bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, itemID, reviewID, err := voteTarget(r)
		if err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		if err := h.uc.Vote(r.Context(), CallerFrom(r.Context()), kind, itemID, reviewID, up); err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		respondWithMessage(w, http.StatusCreated, "vote recorded", h.logger)
	}
}

func (h *ReviewHandler) unvote(up bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, itemID, reviewID, err := voteTarget(r)
		if err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		if err := h.uc.Unvote(r.Context(), CallerFrom(r.Context()), kind, itemID, reviewID, up); err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func voteTarget(r *http.Request) (domain.Kind, int, int, error) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		return "", 0, 0, err
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		return "", 0, 0, err
	}
	return kind, itemID, reviewID, nil
}
