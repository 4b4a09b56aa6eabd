package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

type AuthConfig struct {
	ActivationTTL time.Duration
	ResetTTL      time.Duration
}

type authUseCase struct {
	users     ports.UserStorage
	tokens    *auth.TokenManager
	publisher ports.MailPublisher
	cfg       AuthConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthUseCase(
	users ports.UserStorage,
	tokens *auth.TokenManager,
	publisher ports.MailPublisher,
	cfg AuthConfig,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		users:     users,
		tokens:    tokens,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *authUseCase) Signup(ctx context.Context, in SignupInput) error {
	start := time.Now()

	user := &domain.User{
		UserName:  in.UserName,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      domain.RoleUser,
	}
	user.Normalize()

	if user.UserName == "" {
		return apperrors.BadRequest("userName is required")
	}
	if !strings.Contains(user.Email, "@") {
		return apperrors.BadRequest("email is invalid")
	}
	if len(in.Password) < MinPasswordLength {
		return apperrors.BadRequest(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	exists, err := uc.users.ExistsByEmailOrUserName(ctx, user.Email, user.UserName)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return apperrors.Conflict("User with this email or username already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeInternal, "failed to hash password", err)
	}
	user.PasswordHash = hash

	token := &domain.UserToken{
		Token:     auth.NewOpaqueToken(),
		Type:      domain.TokenActivation,
		ExpiresAt: uc.now().Add(uc.cfg.ActivationTTL),
	}
	if err := uc.users.CreateWithToken(ctx, user, token); err != nil {
		if apperrors.IsConflict(err) {
			return apperrors.Conflict("User with this email or username already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}

	uc.sendMail(ctx, payloads.MailPayload{
		Template: payloads.MailActivation,
		To:       user.Email,
		UserName: user.UserName,
		Subject:  "Activate your account",
		Data:     map[string]string{"token": token.Token},
	})

	uc.logger.Info("user signed up",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (uc *authUseCase) Activate(ctx context.Context, token string) error {
	t, err := uc.usableToken(ctx, token, domain.TokenActivation)
	if err != nil {
		return err
	}
	return uc.users.Activate(ctx, t, uc.now())
}

func (uc *authUseCase) Login(ctx context.Context, in LoginInput) (*auth.AccessToken, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if !user.Active {
		return nil, apperrors.Unauthorized("account is not activated")
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeInternal, "failed to issue access token", err)
	}
	uc.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

func (uc *authUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.Active {
		uc.logger.Debug("password reset requested for unknown or inactive account")
		return nil
	}

	token := &domain.UserToken{
		UserID:    user.ID,
		Token:     auth.NewOpaqueToken(),
		Type:      domain.TokenPasswordReset,
		ExpiresAt: uc.now().Add(uc.cfg.ResetTTL),
	}
	if err := uc.users.CreateToken(ctx, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	uc.sendMail(ctx, payloads.MailPayload{
		Template: payloads.MailPasswordReset,
		To:       user.Email,
		UserName: user.UserName,
		Subject:  "Reset your password",
		Data:     map[string]string{"token": token.Token},
	})
	return nil
}

func (uc *authUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.BadRequest(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	t, err := uc.usableToken(ctx, token, domain.TokenPasswordReset)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeInternal, "failed to hash password", err)
	}
	if err := uc.users.ResetPassword(ctx, t, hash, uc.now()); err != nil {
		return err
	}
	uc.logger.Info("password reset", "user_id", t.UserID)
	return nil
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*domain.Caller, error) {
	caller, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	user, err := uc.users.Get(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", caller.UserID, err)
	}
	if user == nil || !user.Active {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	// the stored role wins over the claim so demotions apply at once
	caller.Role = user.Role
	return caller, nil
}

func (uc *authUseCase) usableToken(ctx context.Context, token, tokenType string) (*domain.UserToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.BadRequest("token is required")
	}
	t, err := uc.users.FindToken(ctx, token, tokenType)
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	if t == nil || !t.Usable(uc.now()) {
		return nil, apperrors.BadRequest("invalid or expired token")
	}
	return t, nil
}

// sendMail does not fail the request: the account or token already exists.
func (uc *authUseCase) sendMail(ctx context.Context, payload payloads.MailPayload) {
	if err := uc.publisher.PublishMail(ctx, payload); err != nil {
		uc.logger.Error("failed to publish mail", "template", payload.Template, "error", err)
	}
}
