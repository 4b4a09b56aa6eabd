package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type AuthHandler struct {
	uc     usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type tokenRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) Routes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/activate", h.Activate)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in usecase.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Signup(r.Context(), in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusCreated, usecase.SignupMessage, h.logger)
}

func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Activate(r.Context(), req.Token); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "account activated", h.logger)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	token, err := h.uc.Login(r.Context(), in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, token, h.logger)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.ForgotPassword(r.Context(), req.Email); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "if the account exists, a reset link has been sent", h.logger)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "password updated", h.logger)
}
