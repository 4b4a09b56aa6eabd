package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

// UserHandler serves profiles, follows, messages and notifications.
type UserHandler struct {
	users  usecase.UserUseCase
	social usecase.SocialUseCase
	logger *slog.Logger
}

func NewUserHandler(users usecase.UserUseCase, social usecase.SocialUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, social: social, logger: logger}
}

func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/users", h.Search)
	r.Get("/users/{id}/followers", h.Followers)
	r.Get("/users/{id}/following", h.Following)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.logger))
		r.Get("/users/me", h.Me)
		r.Put("/users/me", h.UpdateMe)
		r.Put("/users/me/avatar", h.Avatar)
		r.Get("/users/me/follow-requests", h.FollowRequests)
		r.Post("/users/me/follow-requests/{followerId}/accept", h.Accept)
		r.Post("/users/me/follow-requests/{followerId}/reject", h.Reject)
		r.Get("/users/me/inbox", h.Inbox)
		r.Get("/users/me/notifications", h.Notifications)
		r.Put("/users/me/notifications/{id}/read", h.MarkNotificationRead)

		r.Post("/users/{id}/follow", h.Follow)
		r.Delete("/users/{id}/follow", h.Unfollow)
		r.Post("/users/{id}/messages", h.SendMessage)
		r.Get("/users/{id}/messages", h.Conversation)
		r.Put("/messages/{id}/read", h.MarkMessageRead)
	})

	r.Get("/users/{id}", h.Profile)
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	users, err := h.users.Search(r.Context(), r.URL.Query().Get("userName"), page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	profile, err := h.users.Profile(r.Context(), CallerFrom(r.Context()), id)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profile, h.logger)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.users.Me(r.Context(), CallerFrom(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, account, h.logger)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in usecase.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	account, err := h.users.UpdateMe(r.Context(), CallerFrom(r.Context()), in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, account, h.logger)
}

func (h *UserHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	file, closer, err := readUpload(w, r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	defer closer.Close()

	account, err := h.users.SetAvatar(r.Context(), CallerFrom(r.Context()), file)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, account, h.logger)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.Follow(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusCreated, "follow request sent", h.logger)
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.Unfollow(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) FollowRequests(w http.ResponseWriter, r *http.Request) {
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	users, err := h.social.FollowRequests(r.Context(), CallerFrom(r.Context()), page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

func (h *UserHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "followerId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.Accept(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "follow request accepted", h.logger)
}

func (h *UserHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "followerId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.Reject(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "follow request rejected", h.logger)
}

func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.edges(w, r, h.social.Followers)
}

func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.edges(w, r, h.social.Following)
}

func (h *UserHandler) edges(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, userID int, page listquery.Page) (*usecase.UserPage, error)) {
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
	users, err := list(r.Context(), id, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

func (h *UserHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	var in usecase.MessageInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	msg, err := h.social.SendMessage(r.Context(), CallerFrom(r.Context()), id, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg, h.logger)
}

func (h *UserHandler) Conversation(w http.ResponseWriter, r *http.Request) {
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
	messages, err := h.social.Conversation(r.Context(), CallerFrom(r.Context()), id, page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, messages, h.logger)
}

func (h *UserHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	messages, err := h.social.Inbox(r.Context(), CallerFrom(r.Context()), page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, messages, h.logger)
}

func (h *UserHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.MarkMessageRead(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	page, err := pageOf(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	notes, err := h.social.Notifications(r.Context(), CallerFrom(r.Context()), page)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, notes, h.logger)
}

func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.social.MarkNotificationRead(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
