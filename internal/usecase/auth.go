package usecase

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

const (
	MinPasswordLength = 6
	SignupMessage     = "User registered successfully, check your email"
)

type SignupInput struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUseCase owns accounts, their tokens and the access tokens they log in with.
type AuthUseCase interface {
	Signup(ctx context.Context, in SignupInput) error
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, in LoginInput) (*auth.AccessToken, error)
	// ForgotPassword never reports whether the email is known.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	// Authenticate resolves a bearer token to the caller it was issued for.
	Authenticate(ctx context.Context, token string) (*domain.Caller, error)
}
