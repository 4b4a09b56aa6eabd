package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type ForumHandler struct {
	uc     usecase.ForumUseCase
	logger *slog.Logger
}

func NewForumHandler(uc usecase.ForumUseCase, logger *slog.Logger) *ForumHandler {
	return &ForumHandler{uc: uc, logger: logger}
}

func (h *ForumHandler) Routes(r chi.Router) {
	r.Route("/forum", func(r chi.Router) {
		r.Get("/categories", h.Categories)
		r.Get("/categories/{id}/topics", h.Topics)
		r.Get("/topics/{id}", h.Topic)
		r.Get("/topics/{id}/posts", h.Posts)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.logger))
			r.Post("/categories/{id}/topics", h.CreateTopic)
			r.Put("/topics/{id}", h.UpdateTopic)
			r.Delete("/topics/{id}", h.DeleteTopic)
			r.Post("/topics/{id}/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(h.logger))
			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/{id}", h.UpdateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)
			r.Post("/topics/{id}/pin", h.toggle(h.uc.TogglePin))
			r.Post("/topics/{id}/lock", h.toggle(h.uc.ToggleLock))
		})
	})
}

func (h *ForumHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.Categories(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, categories, h.logger)
}

func (h *ForumHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	category, err := h.uc.CreateCategory(r.Context(), CallerFrom(r.Context()), in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, category, h.logger)
}

func (h *ForumHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	category, err := h.uc.UpdateCategory(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, category, h.logger)
}

func (h *ForumHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.DeleteCategory(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ForumHandler) Topics(w http.ResponseWriter, r *http.Request) {
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
	topics, err := h.uc.Topics(r.Context(), id, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, topics, h.logger)
}

func (h *ForumHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.TopicInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	topic, err := h.uc.CreateTopic(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, topic, h.logger)
}

func (h *ForumHandler) Topic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	topic, err := h.uc.Topic(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, topic, h.logger)
}

func (h *ForumHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.TopicInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	topic, err := h.uc.UpdateTopic(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, topic, h.logger)
}

func (h *ForumHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.DeleteTopic(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ForumHandler) toggle(fn func(ctx context.Context, caller *domain.Caller, id int) (*domain.ForumTopic, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		topic, err := fn(r.Context(), CallerFrom(r.Context()), id)
		if err != nil {
			respondWithAppError(w, r, err, h.logger)
			return
		}
		respondWithJSON(w, http.StatusOK, topic, h.logger)
	}
}

func (h *ForumHandler) Posts(w http.ResponseWriter, r *http.Request) {
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
	posts, err := h.uc.Posts(r.Context(), id, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, posts, h.logger)
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.PostInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	post, err := h.uc.CreatePost(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, post, h.logger)
}

func (h *ForumHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.PostInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	post, err := h.uc.UpdatePost(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, post, h.logger)
}

func (h *ForumHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.DeletePost(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
